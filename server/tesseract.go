package server

import (
	"context"

	"go.uber.org/zap"

	"tesseract/codec"
	"tesseract/middleware"
	"tesseract/protocol"
)

// Tesseract is the service-side (wallet) builder: register one Executor
// per protocol, then bind one or more transports against the resulting
// Processor (spec §2, §5).
type Tesseract struct {
	processor  *Processor
	transports []BoundTransport
	logger     *zap.SugaredLogger
}

// New builds an empty service-side Tesseract.
func New() *Tesseract {
	return &Tesseract{processor: NewProcessor(), logger: zap.NewNop().Sugar()}
}

// WithLogger installs a logger; a nil logger is ignored, preserving the
// no-op default rather than a nil dereference at request time.
func (t *Tesseract) WithLogger(logger *zap.SugaredLogger) *Tesseract {
	if logger != nil {
		t.logger = logger
	}
	return t
}

// Service registers the Executor that will handle every request for the
// given protocol id, optionally wrapped in an onion of middleware (applied
// outermost-first, same order as middleware.Chain). Panics on a duplicate
// registration for the same protocol (spec §3 invariant 4) — this is a
// startup-time configuration error, not a request-time one.
func (t *Tesseract) Service(p protocol.Protocol, executor Executor, mw ...middleware.Middleware) *Tesseract {
	if len(mw) > 0 {
		executor = wrappedExecutor(middleware.Chain(mw...)(executor.Call))
	}
	t.processor.AddExecutor(p.ID(), executor)
	t.logger.Infow("registered executor", "protocol", p.ID())
	return t
}

// wrappedExecutor adapts a middleware.HandlerFunc (the result of applying
// a Chain to an Executor.Call) back into an Executor so the wrapped chain
// can be registered the same way as any other executor.
type wrappedExecutor middleware.HandlerFunc

func (f wrappedExecutor) Call(ctx context.Context, c codec.Codec, id uint32, method string, payload []byte) []byte {
	return f(ctx, c, id, method, payload)
}

// Transport binds a ServerTransport against the accumulated Processor.
// Transports can be bound in any order relative to Service calls as long
// as every Service call needed by incoming traffic precedes its first
// inbound frame — the Processor snapshot AddExecutor publishes is picked
// up by every bound transport as of its next Process call.
func (t *Tesseract) Transport(st ServerTransport) *Tesseract {
	bound := st.Bind(t.processor)
	t.transports = append(t.transports, bound)
	return t
}

// Close shuts down every bound transport. Errors from individual
// transports are collected but do not stop the remaining ones from
// closing — a dead transport shouldn't leak the rest.
func (t *Tesseract) Close() error {
	var first error
	for _, bound := range t.transports {
		if err := bound.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
