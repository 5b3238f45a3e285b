package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/mauv0809/matchday/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// SnapshotFunc returns the messages a viewer needs right after connecting.
type SnapshotFunc func(ctx context.Context) []Envelope

// Hub maintains the set of connected viewers and broadcasts messages to them.
// The client set is owned by the goroutine running Run.
type Hub struct {
	clients    map[*client]struct{}
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}
	count      atomic.Int64
	onConnect  SnapshotFunc
	metrics    metrics.Metrics
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	addr string
	send chan []byte
}

var _ Publisher = (*Hub)(nil)

// NewHub creates a hub. Call Run to start delivering messages.
func NewHub(m metrics.Metrics) *Hub {
	return &Hub{
		clients:    make(map[*client]struct{}),
		broadcast:  make(chan []byte, sendBuffer),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		metrics:    m,
	}
}

// OnConnect installs the hook used to greet new viewers with the current state.
// It must be called before Run. The hook runs on the Run goroutine, so anything
// published while it runs reaches the new viewer after the snapshot.
func (h *Hub) OnConnect(fn SnapshotFunc) {
	h.onConnect = fn
}

// Run delivers messages until ctx is cancelled, then disconnects every viewer.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		for c := range h.clients {
			h.remove(c)
		}
		log.Info("Websocket hub stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			if !h.greet(ctx, c) {
				log.Warn("Snapshot does not fit the viewer queue, dropping viewer", "remote", c.addr)
				h.remove(c)
				continue
			}
			h.setCount()
			log.Debug("Viewer connected", "viewers", len(h.clients))
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.remove(c)
				log.Debug("Viewer disconnected", "viewers", len(h.clients))
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					log.Warn("Dropping slow viewer", "remote", c.addr)
					h.remove(c)
				}
			}
		}
	}
}

// greet queues the onConnect snapshot for c. It reports false when the
// snapshot does not fit in the send buffer.
func (h *Hub) greet(ctx context.Context, c *client) bool {
	if h.onConnect == nil {
		return true
	}
	for _, env := range h.onConnect(ctx) {
		msg, err := json.Marshal(env)
		if err != nil {
			log.Error("Failed to encode snapshot message", "error", err, "type", env.Type)
			continue
		}
		select {
		case c.send <- msg:
		default:
			return false
		}
	}
	return true
}

func (h *Hub) remove(c *client) {
	delete(h.clients, c)
	close(c.send)
	h.setCount()
}

func (h *Hub) setCount() {
	h.metrics.SetViewers(len(h.clients))
	h.count.Store(int64(len(h.clients)))
}

// ClientCount returns the number of connected viewers.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Publish queues an envelope for every connected viewer. It never blocks: when
// the queue is full the message is dropped.
func (h *Hub) Publish(eventType EventType, data any) error {
	msg, err := json.Marshal(Envelope{Type: eventType, Data: data})
	if err != nil {
		return fmt.Errorf("failed to encode %s message: %w", eventType, err)
	}
	select {
	case h.broadcast <- msg:
		h.metrics.IncMessagesPublished(string(eventType))
		return nil
	default:
		h.metrics.IncMessagesDropped()
		log.Warn("Broadcast queue full, dropping message", "type", eventType)
		return nil
	}
}

// ServeHTTP upgrades the request to a websocket and registers the viewer. Run
// queues the snapshot before any later broadcast.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("Failed to upgrade websocket connection", "error", err)
		return
	}
	c := &client{hub: h, conn: conn, addr: conn.RemoteAddr().String(), send: make(chan []byte, sendBuffer)}

	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// readPump drains the connection so control frames are processed. Viewers do
// not send anything meaningful.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn("Websocket read error", "error", err)
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Debug("Failed to write websocket message", "error", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
