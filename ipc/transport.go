package ipc

import (
	"net"
	"sync"
)

// Transport moves whole envelopes. Read is called from a single goroutine;
// Write may be called concurrently.
type Transport interface {
	Read() (Envelope, error)
	Write(env Envelope) error
	Close() error
}

// StreamTransport frames envelopes over a byte stream such as a unix socket.
type StreamTransport struct {
	conn net.Conn
	mu   sync.Mutex
}

func NewStreamTransport(conn net.Conn) *StreamTransport {
	return &StreamTransport{conn: conn}
}

func (t *StreamTransport) Read() (Envelope, error) {
	return ReadEnvelope(t.conn)
}

func (t *StreamTransport) Write(env Envelope) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return WriteEnvelope(t.conn, env)
}

func (t *StreamTransport) Close() error {
	return t.conn.Close()
}
