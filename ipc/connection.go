package ipc

import "log/slog"

// Handler processes a received envelope. Return nil to send no reply.
type Handler func(env Envelope) (*Envelope, error)

// Connection represents one orchestration-server session talking to the sidecar.
// Each team gets its own connection, identified after the hello handshake.
type Connection struct {
	transport Transport
	handlers  map[string]Handler
	Team      int
}

func NewConnection(transport Transport, handlers map[string]Handler) *Connection {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	return &Connection{
		transport: transport,
		handlers:  handlers,
	}
}

func (c *Connection) RegisterHandler(msgType string, handler Handler) {
	c.handlers[msgType] = handler
}

func (c *Connection) Send(msgType string, data any) error {
	env, err := NewEnvelope(msgType, data)
	if err != nil {
		return err
	}
	return c.transport.Write(env)
}

// ReadLoop blocks until the connection closes or errors. It owns the transport
// lifetime so callers don't need to track cleanup.
func (c *Connection) ReadLoop() {
	defer c.transport.Close()

	for {
		env, err := c.transport.Read()
		if err != nil {
			slog.Info("connection read ended", "team", c.Team, "error", err)
			return
		}

		handler, ok := c.handlers[env.Type]
		if !ok {
			slog.Warn("no handler for message type", "type", env.Type)
			continue
		}

		resp, err := handler(env)
		if err != nil {
			slog.Error("handler error", "type", env.Type, "error", err)
			continue
		}

		if resp != nil {
			if err := c.transport.Write(*resp); err != nil {
				slog.Error("failed to send response", "type", resp.Type, "error", err)
				return
			}
			slog.Debug("sent response", "type", resp.Type, "team", c.Team)
		}
	}
}
