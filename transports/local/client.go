package local

import (
	"container/list"
	"context"
	"sync"

	"tesseract/errs"
	"tesseract/protocol"
	"tesseract/transport"
)

// ID is this transport's identifier, reported by both the client and
// service sides (spec §4.1 "id (string): its identity").
const ID = "plt"

// connection implements transport.Connection over a Link: Send does the
// full round trip immediately and queues the reply, Receive dequeues it.
// This mirrors the original's ClientLocalConnection, which does the same
// thing because a mock in-process transport has no separate wire to wait
// on — the "response" is already known the moment Send returns.
type connection struct {
	link *Link

	mu        sync.Mutex
	responses list.List
}

func newConnection(link *Link) *connection {
	return &connection{link: link}
}

func (c *connection) Send(ctx context.Context, data []byte) error {
	reply := c.link.SendReceive(ctx, data)
	c.mu.Lock()
	c.responses.PushBack(reply)
	c.mu.Unlock()
	return nil
}

func (c *connection) Receive(ctx context.Context) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	front := c.responses.Front()
	if front == nil {
		return nil, errs.Kinded(errs.KindWeird)
	}
	c.responses.Remove(front)
	return front.Value.([]byte), nil
}

// Transport is the client-side handle for an in-process Link.
type Transport struct {
	link *Link
}

// NewTransport builds a client Transport bound to link.
func NewTransport(link *Link) *Transport {
	return &Transport{link: link}
}

func (t *Transport) ID() string { return ID }

func (t *Transport) Status(ctx context.Context, p protocol.Protocol) transport.Status {
	if t.link.Ready() {
		return transport.StatusReady()
	}
	return transport.StatusUnavailable("the link has no bound service")
}

func (t *Transport) Connect(p protocol.Protocol) transport.Connection {
	return newConnection(t.link)
}
