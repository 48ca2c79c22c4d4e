package transport

import (
	"encoding/json"
	"log/slog"
	"sync"

	"example.com/dice-duel/internal/game"
)

// Hub tracks live connections and fans events out to them. It implements
// game.Publisher for single-process deployments.
type Hub struct {
	mu    sync.Mutex
	conns map[string]*ClientConn
	log   *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		conns: make(map[string]*ClientConn),
		log:   log,
	}
}

func (h *Hub) Publish(ev game.Event) {
	b, err := encodeEvent(ev)
	if err != nil {
		h.log.Error("encode event", "event", ev.Type, "err", err)
		return
	}
	h.broadcast(b)
}

// broadcast queues msg on every connection. A connection whose queue is full
// is evicted rather than skipped, so every live session sees every event.
func (h *Hub) broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, cc := range h.conns {
		if cc.enqueue(msg) {
			continue
		}
		h.log.Warn("evicting slow client", "session", id)
		delete(h.conns, id)
		cc.close()
	}
}

// SendTo queues env for a single session; unknown sessions are ignored.
func (h *Hub) SendTo(sessionID string, env Envelope) {
	b, err := json.Marshal(env)
	if err != nil {
		h.log.Error("encode envelope", "type", env.Type, "err", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	cc, ok := h.conns[sessionID]
	if !ok {
		return
	}
	if !cc.enqueue(b) {
		h.log.Warn("evicting slow client", "session", sessionID)
		delete(h.conns, sessionID)
		cc.close()
	}
}

func (h *Hub) register(cc *ClientConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[cc.id] = cc
}

func (h *Hub) unregister(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cc, ok := h.conns[sessionID]; ok {
		delete(h.conns, sessionID)
		cc.close()
	}
}

// CloseAll drops every connection; used on shutdown since hijacked
// connections outlive http.Server.Shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, cc := range h.conns {
		delete(h.conns, id)
		cc.close()
	}
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
