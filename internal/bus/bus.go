// Package bus is the in-process notification bus the session manager
// listens on for the asynchronous launch signals: push-token arrival,
// install-attribution arrival and deep-link delivery.
package bus

import "sync"

// Topic names and payload keys match the notification names the mobile
// app posted, so handler code reads the same on both sides.
const (
	TopicPushToken   = "apnstoken_push"
	TopicAttribution = "conversion_data"
	TopicDeepLink    = "share_deeplink"

	KeyPushToken = "apnstoken"
	KeyDeepLink  = "deeplink"
)

// Payload is the key/value mapping delivered with an event. Attribution
// events carry the attribution data itself; an empty payload signals that
// attribution failed upstream.
type Payload map[string]string

// Handler receives one published event
type Handler func(Payload)

// Bus fans published events out to all handlers subscribed to the topic.
// Delivery is synchronous and in subscription order.
type Bus struct {
	mu   sync.RWMutex
	subs map[string][]Handler
}

// New creates an empty bus
func New() *Bus {
	return &Bus{subs: make(map[string][]Handler)}
}

// Subscribe registers a handler for a topic
func (b *Bus) Subscribe(topic string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[topic] = append(b.subs[topic], h)
}

// Publish delivers the payload to every handler subscribed to the topic.
// Publishing to a topic nobody listens on is a no-op.
func (b *Bus) Publish(topic string, p Payload) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.subs[topic]))
	copy(handlers, b.subs[topic])
	b.mu.RUnlock()

	for _, h := range handlers {
		h(p)
	}
}
