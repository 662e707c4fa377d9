// Package ws pushes order status changes to tracking clients over
// WebSocket. The Hub fans committed snapshots out to per-order
// subscriptions; Session owns one client connection and drains one
// subscription into it.
package ws

import (
	"sync"

	"gatebite/internal/core/domain/model/order"
)

// subscriptionBuffer is how many snapshots a subscription may lag behind
// before the hub drops it. A tracking client that cannot drain 16 updates
// is stuck and will reconnect through the usual retry path.
const subscriptionBuffer = 16

// Subscription is one tracking client's view of one order's status stream.
// Updates are consumed from Updates; the channel closes when the hub drops
// the subscription or Unsubscribe is called.
type Subscription struct {
	orderID string
	updates chan order.Snapshot
	closing sync.Once
}

// Updates returns the stream of snapshots for the subscribed order. The
// channel is closed when the subscription ends.
func (s *Subscription) Updates() <-chan order.Snapshot {
	return s.updates
}

// OrderID returns the identifier of the order this subscription follows.
func (s *Subscription) OrderID() string {
	return s.orderID
}

func (s *Subscription) close() {
	s.closing.Do(func() {
		close(s.updates)
	})
}

// Hub routes committed order snapshots to the subscriptions interested in
// them. It implements ports.StatusPublisher so command handlers can hand
// it snapshots without knowing about WebSockets.
//
// Publish never blocks on a slow consumer: a subscription whose buffer is
// full is dropped and its channel closed, which the owning session sees
// as a normal disconnect.
type Hub struct {
	mu          sync.Mutex
	subscribers map[string]map[*Subscription]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[*Subscription]struct{}),
	}
}

// Subscribe registers interest in the order the snapshot belongs to. The
// snapshot itself is queued as the first update, so the subscriber starts
// from a known state and no update committed after the caller read it can
// slip past unobserved.
func (h *Hub) Subscribe(current order.Snapshot) *Subscription {
	sub := &Subscription{
		orderID: current.ID,
		updates: make(chan order.Snapshot, subscriptionBuffer),
	}
	sub.updates <- current

	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.subscribers[sub.orderID]
	if !ok {
		subs = make(map[*Subscription]struct{})
		h.subscribers[sub.orderID] = subs
	}
	subs[sub] = struct{}{}

	return sub
}

// Unsubscribe removes the subscription and closes its channel. Safe to
// call more than once and safe to call for a subscription the hub already
// dropped.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	h.removeLocked(sub)
	h.mu.Unlock()

	sub.close()
}

// Publish delivers a snapshot to every subscription of its order.
// Subscriptions that cannot accept the snapshot are dropped.
func (h *Hub) Publish(snapshot order.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subscribers[snapshot.ID] {
		select {
		case sub.updates <- snapshot:
		default:
			h.removeLocked(sub)
			sub.close()
		}
	}
}

// SubscriberCount reports how many subscriptions follow the given order.
func (h *Hub) SubscriberCount(orderID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.subscribers[orderID])
}

func (h *Hub) removeLocked(sub *Subscription) {
	subs, ok := h.subscribers[sub.orderID]
	if !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.subscribers, sub.orderID)
	}
}
