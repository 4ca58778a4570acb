package tcp

import (
	"context"
	"net"
	"time"

	"github.com/pkg/errors"

	"tesseract/errs"
	"tesseract/protocol"
	"tesseract/transport"
)

// Transport is the client side of a TCP binding: one address, dialed fresh
// for each Connect call (CachedConnection decides when that happens).
type Transport struct {
	id      string
	address string
	dialer  net.Dialer
}

// NewTransport builds a client TCP transport identified by id, dialing
// address on each Connect.
func NewTransport(id, address string) *Transport {
	return &Transport{id: id, address: address}
}

func (t *Transport) ID() string { return t.id }

// Status does a short reachability probe: dial and immediately close. A
// failed dial surfaces as Status.Err, not a Go error return, per spec
// §4.1's "probing never itself fails".
func (t *Transport) Status(ctx context.Context, p protocol.Protocol) transport.Status {
	dialCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	conn, err := t.dialer.DialContext(dialCtx, "tcp", t.address)
	if err != nil {
		wrapped := errors.Wrap(err, "tcp dial failed")
		return transport.StatusError(errs.New(errs.KindWeird, wrapped.Error(), wrapped))
	}
	_ = conn.Close()
	return transport.StatusReady()
}

func (t *Transport) Connect(p protocol.Protocol) transport.Connection {
	return &connection{address: t.address}
}

// connection dials lazily on first Send and keeps the socket open for later
// exchanges; each Send writes one frame and each Receive reads one frame
// back, one exchange at a time on the connection.
type connection struct {
	address string
	conn    net.Conn
}

func (c *connection) Send(ctx context.Context, data []byte) error {
	if c.conn == nil {
		var d net.Dialer
		conn, err := d.DialContext(ctx, "tcp", c.address)
		if err != nil {
			wrapped := errors.Wrap(err, "tcp dial failed")
			return errs.New(errs.KindWeird, wrapped.Error(), wrapped)
		}
		c.conn = conn
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = c.conn.SetWriteDeadline(deadline)
	}
	if err := writeFrame(c.conn, data); err != nil {
		wrapped := errors.Wrap(err, "tcp write failed")
		return errs.New(errs.KindWeird, wrapped.Error(), wrapped)
	}
	return nil
}

func (c *connection) Receive(ctx context.Context) ([]byte, error) {
	if c.conn == nil {
		return nil, errs.Described(errs.KindWeird, "tcp receive before send")
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = c.conn.SetReadDeadline(deadline)
	}
	body, err := readFrame(c.conn)
	if err != nil {
		wrapped := errors.Wrap(err, "tcp read failed")
		return nil, errs.New(errs.KindWeird, wrapped.Error(), wrapped)
	}
	return body, nil
}
