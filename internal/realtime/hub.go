// Package realtime is the best-effort notification relay for project chat.
// Every connected client receives every notification; recipients are expected
// to discard notifications for projects they are not watching and to recover
// missed ones with a normal fetch. The relay makes no delivery, ordering or
// retry promises.
package realtime

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// EventNewMessage is the only outbound notification type on the relay.
const EventNewMessage = "new-message"

// inboundTypeMessage is the only inbound frame type clients may send.
const inboundTypeMessage = "message"

// envelope is the inbound wire shape: {"type":"message","projectId":…,"message":…}
type envelope struct {
	Type      string          `json:"type"`
	ProjectID uint64          `json:"projectId"`
	Message   json.RawMessage `json:"message"`
}

// notification is the outbound wire shape: {"type":"new-message","projectId":…,"message":…}
type notification struct {
	Type      string      `json:"type"`
	ProjectID uint64      `json:"projectId"`
	Message   interface{} `json:"message"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The browser client connects from whatever host serves the frontend
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub owns the registry of connected relay clients. Connect and disconnect
// mutate the registry under the lock; fan-out iterates a snapshot so a client
// dropping mid-broadcast never blocks or fails the others.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	log     zerolog.Logger
}

// NewHub creates an empty relay hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		log:     log,
	}
}

// HandleConnection upgrades an HTTP request to a relay connection and runs it
// until the peer goes away.
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := &client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendQueueSize),
	}

	h.register(c)
	h.log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("relay client connected")

	go c.writePump()
	go c.readPump()
}

// NotifyNewMessage fans a stored message out to every connected client. Used
// by the HTTP send path, which has no relay connection of its own to exclude.
func (h *Hub) NotifyNewMessage(projectID uint64, message interface{}) {
	payload, err := json.Marshal(notification{
		Type:      EventNewMessage,
		ProjectID: projectID,
		Message:   message,
	})
	if err != nil {
		h.log.Error().Err(err).Uint64("project_id", projectID).Msg("failed to encode notification")
		return
	}
	h.broadcast(nil, payload)
}

// ClientCount returns the number of currently connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// broadcast queues payload for every client except origin. Queueing happens
// under the read lock: send channels are only closed under the write lock, so
// a concurrent disconnect cannot close a channel mid-send. A client whose
// queue is full is dropped rather than allowed to stall the fan-out.
func (h *Hub) broadcast(origin *client, payload []byte) {
	var slow []*client

	h.mu.RLock()
	for c := range h.clients {
		if c == origin {
			continue
		}
		select {
		case c.send <- payload:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.log.Warn().Str("remote", c.conn.RemoteAddr().String()).Msg("relay client too slow, dropping")
		h.unregister(c)
	}
}

// handleInbound relays a client-sent frame to all other clients. Malformed
// frames are logged and skipped; the connection stays up.
func (h *Hub) handleInbound(origin *client, raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		h.log.Warn().Err(err).Msg("discarding malformed relay frame")
		return
	}

	if env.Type != inboundTypeMessage || env.ProjectID == 0 {
		return
	}

	payload, err := json.Marshal(notification{
		Type:      EventNewMessage,
		ProjectID: env.ProjectID,
		Message:   env.Message,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("failed to encode relayed frame")
		return
	}

	h.broadcast(origin, payload)
}
