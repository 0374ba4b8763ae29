package server

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/lacquerai/heartbeat/internal/heartbeat"
)

// subscriberBuffer is how many beats a slow stream may lag before it is
// dropped.
const subscriberBuffer = 16

type subscriber struct {
	send chan []byte
}

// Hub fans beats out to websocket subscribers. Publish never blocks.
type Hub struct {
	subscribers map[*subscriber]struct{}
	mu          sync.Mutex
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[*subscriber]struct{}),
	}
}

// subscribe registers a new subscriber.
func (h *Hub) subscribe() *subscriber {
	sub := &subscriber{send: make(chan []byte, subscriberBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers[sub] = struct{}{}
	return sub
}

// unsubscribe removes sub and closes its channel. Safe to call twice.
func (h *Hub) unsubscribe(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(sub)
}

// Publish sends b to every subscriber, dropping those whose buffer is full.
func (h *Hub) Publish(b heartbeat.Beat) {
	data, err := json.Marshal(b)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode beat")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subscribers {
		select {
		case sub.send <- data:
		default:
			log.Warn().Uint64("sequence", b.Sequence).Msg("Dropping slow beat subscriber")
			h.remove(sub)
		}
	}
}

// Count returns the number of subscribers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Close unsubscribes everyone.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subscribers {
		h.remove(sub)
	}
}

func (h *Hub) remove(sub *subscriber) {
	if _, ok := h.subscribers[sub]; !ok {
		return
	}
	delete(h.subscribers, sub)
	close(sub.send)
}
