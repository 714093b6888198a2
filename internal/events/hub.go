package events

import (
	"fmt"
	"sync"
)

// Keys identify logical document streams. Subscribers receive committed
// state for a single key, mirroring single-document change subscriptions.
func TeamKey(teamID string) string   { return fmt.Sprintf("team/%s", teamID) }
func ScoresKey(teamID string) string { return fmt.Sprintf("scores/%s", teamID) }

// SlotsKey is the shared stream for the whole slot inventory.
const SlotsKey = "slots"

// Hub fans committed state out to per-key subscribers. Delivery is
// at-least-once in commit order with coalescing: a slow subscriber
// always observes the latest state, intermediate commits may be
// skipped.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscription]struct{}
}

// Subscription is a single subscriber attachment to one key
type Subscription struct {
	hub  *Hub
	key  string
	ch   chan any
	once sync.Once
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[*Subscription]struct{}),
	}
}

// Subscribe attaches a subscriber to a key. The caller must Close the
// subscription when done.
func (h *Hub) Subscribe(key string) *Subscription {
	sub := &Subscription{
		hub: h,
		key: key,
		ch:  make(chan any, 1),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[key] == nil {
		h.subs[key] = make(map[*Subscription]struct{})
	}
	h.subs[key][sub] = struct{}{}

	return sub
}

// Publish delivers committed state to every subscriber of the key.
// Never blocks: a subscriber that has not consumed the previous state
// has it replaced with the newer one.
func (h *Hub) Publish(key string, state any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs[key] {
		select {
		case sub.ch <- state:
		default:
			// Coalesce: drop the stale state, keep the latest
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- state:
			default:
			}
		}
	}
}

// C returns the channel delivering committed state
func (s *Subscription) C() <-chan any {
	return s.ch
}

// Close detaches the subscription from the hub
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		defer s.hub.mu.Unlock()

		if subs := s.hub.subs[s.key]; subs != nil {
			delete(subs, s)
			if len(subs) == 0 {
				delete(s.hub.subs, s.key)
			}
		}
	})
}
