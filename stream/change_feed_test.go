package stream

import (
	"context"
	"testing"
	"time"

	"github.com/Sameena10-06/community-chat-hub/model"
	"github.com/stretchr/testify/require"
)

func TestChangeFeedDeliversToTableSubscribers(t *testing.T) {
	feed := NewChangeFeed()
	defer feed.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := feed.Subscribe(ctx, "notifications")
	require.NoError(t, err)

	other, err := feed.Subscribe(ctx, "group_messages")
	require.NoError(t, err)

	feed.Publish(model.ChangeEvent{
		Table:  "notifications",
		Action: model.ChangeActionInsert,
		RowID:  "n-1",
	})

	select {
	case ev := <-events:
		require.Equal(t, "notifications", ev.Table)
		require.Equal(t, model.ChangeActionInsert, ev.Action)
		require.Equal(t, "n-1", ev.RowID)
	case <-time.After(time.Second):
		t.Fatal("no event delivered to notifications subscriber")
	}

	select {
	case ev := <-other:
		t.Fatalf("group_messages subscriber received foreign event: %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestChangeFeedCarriesScopeKeys(t *testing.T) {
	feed := NewChangeFeed()
	defer feed.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := feed.Subscribe(ctx, "group_messages")
	require.NoError(t, err)

	feed.Publish(model.ChangeEvent{
		Table:  "group_messages",
		Action: model.ChangeActionDelete,
		RowID:  "m-1",
		Keys:   map[string]string{"group_id": "g-1"},
	})

	select {
	case ev := <-events:
		require.Equal(t, "g-1", ev.Keys["group_id"])
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestSubscribeTerminatesOnContextCancel(t *testing.T) {
	feed := NewChangeFeed()
	defer feed.Close()

	ctx, cancel := context.WithCancel(context.Background())
	events, err := feed.Subscribe(ctx, "messages")
	require.NoError(t, err)

	cancel()

	select {
	case _, open := <-events:
		require.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("subscription channel not closed after cancel")
	}
}

func TestParseFilter(t *testing.T) {
	col, val, ok := parseFilter("group_id=eq.g-42")
	require.True(t, ok)
	require.Equal(t, "group_id", col)
	require.Equal(t, "g-42", val)

	_, _, ok = parseFilter("")
	require.False(t, ok)

	_, _, ok = parseFilter("garbage")
	require.False(t, ok)
}
