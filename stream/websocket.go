package stream

import (
	"net/http"
	"strings"
	"time"

	Logger "github.com/Sameena10-06/community-chat-hub/utils/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin browsers are expected; access control happens at the JWT
	// middleware, not at the websocket handshake.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// parseFilter parses the optional "col=eq.value" subscription filter into a
// column/value pair. Returns ok=false on an empty or malformed filter, in
// which case the subscription is unfiltered.
func parseFilter(filter string) (col string, val string, ok bool) {
	if filter == "" {
		return "", "", false
	}
	parts := strings.SplitN(filter, "=eq.", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// RealtimeHandler upgrades the request to a websocket and forwards every
// change event of the requested table, optionally narrowed by a single
// equality filter on a scope key. The client is expected to re-run its list
// query on each event; the event payload itself carries no row data.
//
// GET /realtime?table=<table>[&filter=<col>=eq.<value>]
func RealtimeHandler(feed *ChangeFeed) gin.HandlerFunc {
	return func(c *gin.Context) {
		table := c.Query("table")
		if table == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "table is required"})
			return
		}
		col, val, filtered := parseFilter(c.Query("filter"))

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			Logger.Log.Warnln("websocket upgrade failed: ", err)
			return
		}
		defer conn.Close()

		ctx := c.Request.Context()
		events, err := feed.Subscribe(ctx, table)
		if err != nil {
			Logger.Log.Errorln("cannot subscribe to table ", table, ": ", err)
			return
		}

		// Reader goroutine only consumes control frames so that client
		// disconnects are noticed.
		done := make(chan struct{})
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case ev, open := <-events:
				if !open {
					return
				}
				if filtered && ev.Keys[col] != val {
					continue
				}
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(ev); err != nil {
					return
				}
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}
}
