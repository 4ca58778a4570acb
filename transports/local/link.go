// Package local implements an in-process transport: client and service
// share a Link directly, with no network in between. Every integration
// test in this module runs over it.
package local

import (
	"context"
	"sync"
)

// Processor is the minimal surface a Link needs from the service side —
// satisfied by *server.Processor without this package importing server,
// which would otherwise create a client/server/local import cycle.
type Processor interface {
	Process(ctx context.Context, frame []byte) []byte
}

// Link is the synchronous rendezvous point between one client transport
// and one bound service transport: a mutex guarding an optional Processor.
// Holders of the mutex must never block on anything other than the
// Processor call itself — there is no goroutine boundary to cross here,
// request and reply happen in the calling goroutine.
type Link struct {
	mu        sync.Mutex
	processor Processor
}

// NewLink builds an unconnected Link; SetProcessor must be called (by
// binding a ServerTransport to it) before any client call will succeed.
func NewLink() *Link {
	return &Link{}
}

// SetProcessor attaches the service side. Safe to call again to rebind.
func (l *Link) SetProcessor(p Processor) {
	l.mu.Lock()
	l.processor = p
	l.mu.Unlock()
}

// Ready reports whether a processor is currently attached.
func (l *Link) Ready() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.processor != nil
}

// SendReceive hands data to the attached processor and returns its reply.
// Calling it before a processor is attached is a programming error — the
// client transport's Status should have reported Unavailable — so it
// panics rather than returning a recoverable error.
func (l *Link) SendReceive(ctx context.Context, data []byte) []byte {
	l.mu.Lock()
	processor := l.processor
	l.mu.Unlock()

	if processor == nil {
		panic("tesseract: local link has no bound service")
	}
	return processor.Process(ctx, data)
}
