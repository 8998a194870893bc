// Package live pushes dashboard events to connected pages over websockets.
package live

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/yanqian/trafficai/internal/domain/dashboard"
)

// Event types sent to the page.
const (
	EventState        = "state"
	EventFrame        = "frame"
	EventNotification = "notification"
	EventSpeechStart  = "speech.start"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 32
)

// ErrNoListeners is returned when a speech session is requested with no page connected.
var ErrNoListeners = errors.New("no page connected to run speech recognition")

// Event is the envelope of every websocket message.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// SpeechSession is the payload of a speech.start event.
type SpeechSession struct {
	SessionID string `json:"sessionId"`
	Locale    string `json:"locale"`
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

// Hub fans events out to every connected page. It doubles as the notifier,
// the speech recognizer and a frame sink for the controller.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu       sync.RWMutex
	clients  map[string]*client
	greeting func() []Event

	historyMu sync.Mutex
	history   []dashboard.Notification
	capacity  int
}

// NewHub builds a hub that keeps the last historySize notifications.
func NewHub(allowedOrigins []string, historySize int, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	if historySize <= 0 {
		historySize = 50
	}
	return &Hub{
		upgrader: websocket.Upgrader{CheckOrigin: originChecker(allowedOrigins)},
		logger:   logger.With("component", "live.hub"),
		clients:  make(map[string]*client),
		capacity: historySize,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, origin := range allowed {
		if origin == "*" {
			return func(*http.Request) bool { return true }
		}
		set[origin] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(set) == 0 {
			return true
		}
		if set[origin] {
			return true
		}
		return origin == "http://"+r.Host || origin == "https://"+r.Host
	}
}

// OnConnect sets the events sent to every page right after it connects.
func (h *Hub) OnConnect(fn func() []Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.greeting = fn
}

// ServeHTTP upgrades the request and registers the page.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	c := &client{id: uuid.NewString(), conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	h.clients[c.id] = c
	greeting := h.greeting
	h.mu.Unlock()
	h.logger.Info("page connected", "client_id", c.id, "remote_addr", r.RemoteAddr)

	go h.writePump(c)
	if greeting != nil {
		for _, evt := range greeting() {
			h.sendTo(c, evt)
		}
	}
	go h.readPump(c)
}

func (h *Hub) readPump(c *client) {
	defer h.unregister(c)
	c.conn.SetReadLimit(4096)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("websocket read failed", "client_id", c.id, "error", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.logger.Warn("websocket write failed", "client_id", c.id, "error", err)
				h.unregister(c)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.unregister(c)
				return
			}
		}
	}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c.id]
	delete(h.clients, c.id)
	h.mu.Unlock()
	if ok {
		c.close()
		h.logger.Info("page disconnected", "client_id", c.id)
	}
}

func (h *Hub) sendTo(c *client, evt Event) {
	payload, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("encode event failed", "type", evt.Type, "error", err)
		return
	}
	h.enqueue(c, payload)
}

func (h *Hub) enqueue(c *client, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c.id]; !ok {
		return
	}
	select {
	case c.send <- payload:
	default:
		h.logger.Warn("dropping slow page", "client_id", c.id)
		go h.unregister(c)
	}
}

// Broadcast sends evt to every connected page and reports how many were addressed.
func (h *Hub) Broadcast(evt Event) int {
	payload, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("encode event failed", "type", evt.Type, "error", err)
		return 0
	}
	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()
	for _, c := range targets {
		h.enqueue(c, payload)
	}
	return len(targets)
}

// Clients returns the number of connected pages.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Notify records n and shows it on every page.
func (h *Hub) Notify(_ context.Context, n dashboard.Notification) {
	h.historyMu.Lock()
	h.history = append(h.history, n)
	if over := len(h.history) - h.capacity; over > 0 {
		h.history = append([]dashboard.Notification(nil), h.history[over:]...)
	}
	h.historyMu.Unlock()
	h.Broadcast(Event{Type: EventNotification, Data: n})
}

// Recent returns up to limit notifications, newest last.
func (h *Hub) Recent(limit int) []dashboard.Notification {
	h.historyMu.Lock()
	defer h.historyMu.Unlock()
	start := 0
	if limit > 0 && len(h.history) > limit {
		start = len(h.history) - limit
	}
	return append([]dashboard.Notification(nil), h.history[start:]...)
}

// Start asks the connected pages to open a recognition session.
func (h *Hub) Start(ctx context.Context, lang string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	session := SpeechSession{SessionID: uuid.NewString(), Locale: lang}
	if h.Broadcast(Event{Type: EventSpeechStart, Data: session}) == 0 {
		return ErrNoListeners
	}
	h.logger.Info("speech session requested", "session_id", session.SessionID, "locale", lang)
	return nil
}

// PublishFrame pushes a rendered map frame to every page.
func (h *Hub) PublishFrame(_ context.Context, frame dashboard.MapFrame) error {
	h.Broadcast(Event{Type: EventFrame, Data: frame})
	return nil
}

// Close disconnects every page.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[string]*client)
	h.mu.Unlock()
	for _, c := range clients {
		c.close()
	}
}

var (
	_ dashboard.Notifier         = (*Hub)(nil)
	_ dashboard.SpeechRecognizer = (*Hub)(nil)
	_ dashboard.FrameSink        = (*Hub)(nil)
)
