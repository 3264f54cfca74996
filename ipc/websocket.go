package ipc

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	writeWait  = 10 * time.Second
)

// isLocalOrigin accepts non-browser clients (no Origin header) and pages
// served from localhost.
func isLocalOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		slog.Warn("rejecting websocket with malformed origin", "origin", origin)
		return false
	}
	host := u.Hostname()
	if host == "localhost" || host == "127.0.0.1" || host == "::1" || strings.EqualFold(u.Host, r.Host) {
		return true
	}
	slog.Warn("rejected websocket connection", "origin", origin)
	return false
}

var upgrader = websocket.Upgrader{
	CheckOrigin:     isLocalOrigin,
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// WebSocketTransport carries one envelope per JSON text message.
type WebSocketTransport struct {
	conn *websocket.Conn
	mu   sync.Mutex
	done chan struct{}
	once sync.Once
}

// Upgrade turns an HTTP request into a websocket transport and starts the
// keepalive pinger.
func Upgrade(w http.ResponseWriter, r *http.Request) (*WebSocketTransport, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("upgrade websocket: %w", err)
	}
	return NewWebSocketTransport(conn), nil
}

func NewWebSocketTransport(conn *websocket.Conn) *WebSocketTransport {
	t := &WebSocketTransport{conn: conn, done: make(chan struct{})}
	conn.SetReadLimit(MaxFrameSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	go t.keepAlive()
	return t
}

func (t *WebSocketTransport) keepAlive() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			if err := t.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				slog.Debug("websocket ping failed", "error", err)
				return
			}
		}
	}
}

func (t *WebSocketTransport) Read() (Envelope, error) {
	var env Envelope
	if err := t.conn.ReadJSON(&env); err != nil {
		if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
			slog.Warn("websocket closed unexpectedly", "error", err)
		}
		return Envelope{}, fmt.Errorf("read websocket: %w", err)
	}
	return env, nil
}

func (t *WebSocketTransport) Write(env Envelope) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := t.conn.WriteJSON(env); err != nil {
		return fmt.Errorf("write websocket: %w", err)
	}
	return nil
}

func (t *WebSocketTransport) Close() error {
	t.once.Do(func() { close(t.done) })
	t.mu.Lock()
	t.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
	t.mu.Unlock()
	return t.conn.Close()
}
