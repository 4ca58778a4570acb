// Package middleware implements an onion-model chain around a
// server.Executor, the same shape the wallet side's Executor.Call already
// has: cross-cutting concerns (logging, rate limiting, timeouts) wrap the
// business dispatch without the executor itself knowing they exist.
//
// Onion model execution order:
//
//	Chain(A, B, C)(executor)  →  A(B(C(executor)))
//
//	Request:   A.before → B.before → C.before → executor
//	Response:  executor → C.after → B.after → A.after
package middleware

import (
	"context"

	"tesseract/codec"
)

// HandlerFunc matches server.Executor.Call's signature so any Middleware
// can wrap an Executor (or another HandlerFunc) interchangeably.
type HandlerFunc func(ctx context.Context, c codec.Codec, id uint32, method string, payload []byte) []byte

// Middleware takes a handler and returns a new handler that wraps it.
type Middleware func(next HandlerFunc) HandlerFunc

// Chain composes multiple middlewares into one, outermost-first.
//
//	chain := Chain(Logging(logger), Timeout(time.Second), RateLimit(10, 20))
//	handler := chain(executor.Call)
//	// Execution: Logging → Timeout → RateLimit → executor.Call → RateLimit → Timeout → Logging
func Chain(middlewares ...Middleware) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}
