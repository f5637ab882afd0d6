package preview

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/raykavin/gochartjs/pkg/logger"
)

// Message is pushed to every connected page when a document changes
type Message struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// hub tracks live-reload websocket clients and fans out messages to them
type hub struct {
	sync.RWMutex
	clients   map[*websocket.Conn]struct{}
	upgrader  websocket.Upgrader
	broadcast chan Message
	done      chan struct{}
	closeOnce sync.Once
	log       logger.Logger
}

func newHub(log logger.Logger) *hub {
	h := &hub{
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		broadcast: make(chan Message, 100),
		done:      make(chan struct{}),
		log:       log,
	}

	go h.run()

	return h
}

// run writes queued messages to all clients until the hub is closed
func (h *hub) run() {
	for {
		select {
		case <-h.done:
			return
		case msg := <-h.broadcast:
			h.RLock()
			for conn := range h.clients {
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteJSON(msg); err != nil {
					h.log.WithError(err).Warn("failed to notify websocket client")
					// the read loop removes the client once the connection fails
					conn.Close()
				}
			}
			h.RUnlock()
		}
	}
}

// publish queues msg without blocking; it is dropped when the queue is full.
func (h *hub) publish(msg Message) {
	select {
	case h.broadcast <- msg:
	default:
		h.log.WithField("name", msg.Name).Warn("websocket queue full, dropping update")
	}
}

// serve upgrades the request and keeps the client registered until it leaves
func (h *hub) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Error("failed to upgrade connection to websocket")
		return
	}

	h.Lock()
	h.clients[conn] = struct{}{}
	count := len(h.clients)
	h.Unlock()

	h.log.WithField("clients", count).Debug("websocket client connected")

	go h.handleClient(conn)
}

// handleClient drains client frames so pings and close frames are processed
func (h *hub) handleClient(conn *websocket.Conn) {
	defer func() {
		h.Lock()
		delete(h.clients, conn)
		count := len(h.clients)
		h.Unlock()

		conn.Close()
		h.log.WithField("clients", count).Debug("websocket client disconnected")
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// count returns the number of connected clients
func (h *hub) count() int {
	h.RLock()
	defer h.RUnlock()
	return len(h.clients)
}

// close stops the broadcaster and disconnects every client.
func (h *hub) close() {
	h.closeOnce.Do(func() {
		close(h.done)

		h.RLock()
		for conn := range h.clients {
			conn.Close()
		}
		h.RUnlock()
	})
}
