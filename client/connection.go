// Package client implements the dApp side of Tesseract: a connection cache
// and request queue sitting on top of a user-selected Transport, and the
// generic Service stub used by every protocol's client adapter.
package client

import (
	"context"
	"sync"

	"tesseract/transport"
)

// ConnSource produces the next connection attempt. It is called once each
// time CachedConnection needs a fresh connection; the source itself decides
// whether to re-run transport selection (spec §4.5 — "repeat on next
// demand"). It never runs out: a failed attempt is just one more call to
// the source on the following miss.
type ConnSource func(ctx context.Context) (transport.Connection, error)

// CachedConnection lazily materializes the current connection from a
// ConnSource; only the first unconsumed success is kept (spec §4.4).
type CachedConnection struct {
	mu     sync.Mutex
	cached transport.Connection
	source ConnSource
}

// NewCachedConnection wraps a ConnSource.
func NewCachedConnection(source ConnSource) *CachedConnection {
	return &CachedConnection{source: source}
}

func (c *CachedConnection) connection(ctx context.Context) (transport.Connection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil {
		return c.cached, nil
	}
	conn, err := c.source(ctx)
	if err != nil {
		return nil, err
	}
	c.cached = conn
	return conn, nil
}

func (c *CachedConnection) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = nil
}

// Send implements transport.Connection. A send error clears the cache so
// the next call reselects a transport (spec §4.4, §7).
func (c *CachedConnection) Send(ctx context.Context, request []byte) error {
	conn, err := c.connection(ctx)
	if err != nil {
		return err
	}
	if err := conn.Send(ctx, request); err != nil {
		c.clear()
		return err
	}
	return nil
}

// Receive implements transport.Connection. A receive error clears the
// cache, same as Send (spec §4.4, §7).
func (c *CachedConnection) Receive(ctx context.Context) ([]byte, error) {
	conn, err := c.connection(ctx)
	if err != nil {
		return nil, err
	}
	data, err := conn.Receive(ctx)
	if err != nil {
		c.clear()
		return nil, err
	}
	return data, nil
}

// ServiceConnection is what a client Service stub talks to: one
// request/response round trip at a time (spec §4.2 step 3).
type ServiceConnection interface {
	Request(ctx context.Context, req []byte) ([]byte, error)
}

// QueuedConnection serializes (send, receive) pairs across concurrent
// callers so the underlying channel never interleaves requests (spec §4.3).
// The mutex plays the role of the original's async mutex: Go goroutines
// blocking on sync.Mutex.Lock yield to the scheduler exactly like an
// awaited async lock would, so this is not "blocking I/O inside a critical
// section" in the sense spec §5 warns about — no I/O happens while waiting
// for the lock itself.
type QueuedConnection struct {
	mu   sync.Mutex
	conn *CachedConnection
}

// NewQueuedConnection wraps a CachedConnection.
func NewQueuedConnection(conn *CachedConnection) *QueuedConnection {
	return &QueuedConnection{conn: conn}
}

// Request sends req and waits for the matching reply, holding the mutex for
// the whole round trip so two concurrent callers can never interleave
// (spec §4.3, §5, §8 — "never sendA,sendB,...").  Cancelling ctx before the
// lock is acquired is safe: nothing has been sent. If ctx is already
// cancelled once Send returns, Request drops the cached handle and returns
// ctx's error without receiving; a Receive error drops it the same way
// inside CachedConnection (spec §4.3 "must poison the connection").
func (q *QueuedConnection) Request(ctx context.Context, req []byte) ([]byte, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.conn.Send(ctx, req); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		q.conn.clear()
		return nil, err
	}
	return q.conn.Receive(ctx)
}
