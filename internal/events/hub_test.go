package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDeliversToAllSubscribers(t *testing.T) {
	hub := NewHub()

	first := hub.Subscribe(TeamKey("team-1"))
	defer first.Close()
	second := hub.Subscribe(TeamKey("team-1"))
	defer second.Close()

	hub.Publish(TeamKey("team-1"), "state-1")

	assert.Equal(t, "state-1", receive(t, first))
	assert.Equal(t, "state-1", receive(t, second))
}

func TestHubIsolatesKeys(t *testing.T) {
	hub := NewHub()

	sub := hub.Subscribe(TeamKey("team-1"))
	defer sub.Close()

	hub.Publish(TeamKey("team-2"), "other")
	hub.Publish(SlotsKey, "slots")

	select {
	case state := <-sub.C():
		t.Fatalf("unexpected delivery: %v", state)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubCoalescesSlowSubscriber(t *testing.T) {
	hub := NewHub()

	sub := hub.Subscribe(SlotsKey)
	defer sub.Close()

	hub.Publish(SlotsKey, "v1")
	hub.Publish(SlotsKey, "v2")
	hub.Publish(SlotsKey, "v3")

	// A subscriber that never consumed v1 must observe the latest
	// state, never an intermediate one.
	assert.Equal(t, "v3", receive(t, sub))
}

func TestHubPublishAfterClose(t *testing.T) {
	hub := NewHub()

	sub := hub.Subscribe(TeamKey("team-1"))
	sub.Close()
	sub.Close() // idempotent

	hub.Publish(TeamKey("team-1"), "state")

	select {
	case state := <-sub.C():
		t.Fatalf("delivery after close: %v", state)
	case <-time.After(50 * time.Millisecond):
	}
}

func receive(t *testing.T, sub *Subscription) any {
	t.Helper()
	select {
	case state := <-sub.C():
		return state
	case <-time.After(time.Second):
		require.Fail(t, "timed out waiting for state")
		return nil
	}
}
