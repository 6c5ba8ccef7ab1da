package stream

import (
	"context"
	"encoding/json"

	"github.com/Sameena10-06/community-chat-hub/model"
	Logger "github.com/Sameena10-06/community-chat-hub/utils/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const topicPrefix = "table_changes_"

/*

ChangeFeed is the in-process change-feed broadcast. Every mutation handler
publishes a ChangeEvent for the table it touched; realtime subscribers (one
per websocket connection) receive the events for their table and re-run
their list query. The bus is a golang channel implementation for now, but
could be substituted with a Kafka-based one when the service grows past a
single instance.
*/
type ChangeFeed struct {
	bus *gochannel.GoChannel
}

func NewChangeFeed() *ChangeFeed {
	return &ChangeFeed{
		bus: gochannel.NewGoChannel(
			gochannel.Config{
				OutputChannelBuffer: 100,
			},
			watermill.NewStdLogger(false, false),
		),
	}
}

// Publish broadcasts a change event to every subscriber of the event's
// table. Publishing never blocks the mutation path; a failure here is logged
// and swallowed because the store write already succeeded and subscribers
// converge on their next re-query anyway.
func (f *ChangeFeed) Publish(ev model.ChangeEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		Logger.Log.Errorln("cannot marshal change event: ", err)
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	if err := f.bus.Publish(topicPrefix+ev.Table, msg); err != nil {
		Logger.Log.Errorln("cannot publish change event: ", err)
	}
}

// Subscribe returns a channel of change events for one table. The
// subscription terminates when ctx is cancelled; the returned channel is
// closed at that point.
func (f *ChangeFeed) Subscribe(ctx context.Context, table string) (<-chan model.ChangeEvent, error) {
	messages, err := f.bus.Subscribe(ctx, topicPrefix+table)
	if err != nil {
		return nil, err
	}

	out := make(chan model.ChangeEvent, 1)
	go func() {
		defer close(out)
		for msg := range messages {
			var ev model.ChangeEvent
			if err := json.Unmarshal(msg.Payload, &ev); err != nil {
				Logger.Log.Errorln("cannot unmarshal change event: ", err)
				msg.Ack()
				continue
			}
			msg.Ack()

			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// Close tears the underlying bus down, terminating every subscription.
func (f *ChangeFeed) Close() error {
	return f.bus.Close()
}
