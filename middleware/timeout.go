package middleware

import (
	"context"
	"time"

	"tesseract/codec"
	"tesseract/errs"
)

// Timeout bounds how long the wrapped handler may run. The handler's
// goroutine is not cancelled when the timeout fires — it keeps running in
// the background, same as the teacher's TimeOutMiddleware; callers that
// need real cancellation must check ctx.Done() themselves inside the
// handler (the built-in Executors pass the ctx they are given on to their
// Handler and do not check it themselves).
func Timeout(timeout time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, c codec.Codec, id uint32, method string, payload []byte) []byte {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			done := make(chan []byte, 1)
			go func() {
				done <- next(ctx, c, id, method, payload)
			}()

			select {
			case reply := <-done:
				return reply
			case <-ctx.Done():
				return errorFrame(c, id, errs.Described(errs.KindCancelled, "request timed out"))
			}
		}
	}
}
