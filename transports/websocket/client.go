// Package wsock implements a transport over gorilla/websocket: one
// tesseract frame (codec marker + envelope) per websocket message, one
// request in flight per connection at a time.
package wsock

import (
	"context"
	"time"

	"github.com/gorilla/websocket"

	"tesseract/errs"
	"tesseract/protocol"
	"tesseract/transport"
)

// Transport is the client side of a websocket binding.
type Transport struct {
	id     string
	url    string
	dialer websocket.Dialer
}

// NewTransport builds a client transport identified by id, dialing url
// (ws:// or wss://) on each Connect.
func NewTransport(id, url string) *Transport {
	return &Transport{id: id, url: url, dialer: websocket.Dialer{HandshakeTimeout: 5 * time.Second}}
}

func (t *Transport) ID() string { return t.id }

// Status probes reachability by opening and immediately closing a
// handshake.
func (t *Transport) Status(ctx context.Context, p protocol.Protocol) transport.Status {
	conn, _, err := t.dialer.DialContext(ctx, t.url, nil)
	if err != nil {
		return transport.StatusError(errs.New(errs.KindWeird, "websocket dial failed", err))
	}
	_ = conn.Close()
	return transport.StatusReady()
}

func (t *Transport) Connect(p protocol.Protocol) transport.Connection {
	return &connection{dialer: t.dialer, url: t.url}
}

// connection dials lazily on first Send and keeps the socket open for the
// lifetime of the CachedConnection holding it.
type connection struct {
	dialer websocket.Dialer
	url    string
	conn   *websocket.Conn
}

func (c *connection) Send(ctx context.Context, data []byte) error {
	if c.conn == nil {
		conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
		if err != nil {
			return errs.New(errs.KindWeird, "websocket dial failed", err)
		}
		c.conn = conn
	}
	if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		return errs.New(errs.KindWeird, "websocket write failed", err)
	}
	return nil
}

func (c *connection) Receive(ctx context.Context) ([]byte, error) {
	if c.conn == nil {
		return nil, errs.Described(errs.KindWeird, "websocket receive before send")
	}
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return nil, errs.New(errs.KindWeird, "websocket read failed", err)
	}
	return data, nil
}
