package broadcast

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/mauv0809/stumps/internal/metrics"
)

const (
	clientSendBuf  = 64
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

var pong = []byte(`{"type":"pong"}`)

type viewer struct {
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	topics map[string]struct{}
}

// Hub fans events out to websocket viewers subscribed by topic. Slow viewers
// lose messages rather than block the publisher.
type Hub struct {
	mu       sync.RWMutex
	viewers  map[*viewer]struct{}
	upgrader websocket.Upgrader
	metrics  metrics.Metrics
}

var (
	_ Publisher = (*Hub)(nil)
	_ Deliverer = (*Hub)(nil)
)

// NewHub creates a Hub. A nil allowOrigin accepts every origin.
func NewHub(m metrics.Metrics, allowOrigin func(r *http.Request) bool) *Hub {
	if allowOrigin == nil {
		allowOrigin = func(*http.Request) bool { return true }
	}
	return &Hub{
		viewers:  make(map[*viewer]struct{}),
		upgrader: websocket.Upgrader{CheckOrigin: allowOrigin},
		metrics:  m,
	}
}

// Publish encodes the event and delivers it to local viewers of topic.
func (h *Hub) Publish(topic string, event Event) error {
	data, err := encode(topic, event)
	if err != nil {
		return err
	}
	h.Deliver(topic, data)
	return nil
}

// Deliver enqueues data for every viewer subscribed to topic.
func (h *Hub) Deliver(topic string, data []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for v := range h.viewers {
		if _, ok := v.topics[topic]; !ok {
			continue
		}
		select {
		case v.send <- data:
			delivered++
		default:
			log.Warn("Dropping message for slow viewer", "topic", topic)
		}
	}
	return delivered
}

// Viewers returns the number of connected viewers.
func (h *Hub) Viewers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers)
}

// HandleWS upgrades the request and subscribes the viewer to the topics given
// in ?topic= (repeatable or comma separated).
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	topics := parseTopics(r.URL.Query()["topic"])
	if len(topics) == 0 {
		http.Error(w, "missing ?topic= query param", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("Websocket upgrade failed", "error", err)
		return
	}

	v := &viewer{
		conn:   conn,
		send:   make(chan []byte, clientSendBuf),
		done:   make(chan struct{}),
		topics: topics,
	}
	h.mu.Lock()
	h.viewers[v] = struct{}{}
	n := len(h.viewers)
	h.mu.Unlock()
	h.reportViewers(n)
	log.Debug("Viewer connected", "topics", r.URL.Query()["topic"], "viewers", n)

	go h.writePump(v)
	go h.readPump(v)
}

// writePump owns the connection: it is the only writer and closes the
// connection when the viewer goes away.
func (h *Hub) writePump(v *viewer) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		h.remove(v)
		v.conn.Close()
	}()

	for {
		select {
		case msg := <-v.send:
			v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := v.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Debug("Viewer write failed", "error", err)
				return
			}
		case <-v.done:
			return
		case <-ticker.C:
			v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := v.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) readPump(v *viewer) {
	defer close(v.done)

	v.conn.SetReadLimit(maxMessageSize)
	v.conn.SetReadDeadline(time.Now().Add(pongWait))
	v.conn.SetPongHandler(func(string) error {
		v.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg ClientMessage
		if err := v.conn.ReadJSON(&msg); err != nil {
			return
		}
		switch msg.Type {
		case "subscribe":
			if msg.Topic != "" {
				h.mu.Lock()
				v.topics[msg.Topic] = struct{}{}
				h.mu.Unlock()
			}
		case "unsubscribe":
			h.mu.Lock()
			delete(v.topics, msg.Topic)
			h.mu.Unlock()
		case "ping":
			select {
			case v.send <- pong:
			default:
			}
		}
	}
}

func (h *Hub) remove(v *viewer) {
	h.mu.Lock()
	delete(h.viewers, v)
	n := len(h.viewers)
	h.mu.Unlock()
	h.reportViewers(n)
	log.Debug("Viewer disconnected", "viewers", n)
}

func (h *Hub) reportViewers(n int) {
	if h.metrics != nil {
		h.metrics.SetConnectedViewers(n)
	}
}

func parseTopics(values []string) map[string]struct{} {
	topics := make(map[string]struct{})
	for _, value := range values {
		for _, topic := range strings.Split(value, ",") {
			if topic = strings.TrimSpace(topic); topic != "" {
				topics[topic] = struct{}{}
			}
		}
	}
	return topics
}
