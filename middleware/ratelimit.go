package middleware

import (
	"context"

	"golang.org/x/time/rate"

	"tesseract/codec"
	"tesseract/envelope"
	"tesseract/errs"
)

// RateLimit enforces a token-bucket limit (r tokens/sec, up to burst) shared
// across every call that passes through this middleware instance. The
// limiter is built once, in the outer closure — building it per-request
// would hand every call a fresh full bucket and defeat the limit entirely.
func RateLimit(r float64, burst int) Middleware {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, c codec.Codec, id uint32, method string, payload []byte) []byte {
			if !limiter.Allow() {
				return errorFrame(c, id, errs.Described(errs.KindCancelled, "rate limit exceeded"))
			}
			return next(ctx, c, id, method, payload)
		}
	}
}

func errorFrame(c codec.Codec, id uint32, err *errs.Error) []byte {
	env := envelope.ResponseEnvelope[envelope.Ignored]{ID: &id, Response: envelope.Err[envelope.Ignored](err)}
	data, serr := codec.Serialize(c, env, true)
	if serr != nil {
		return append([]byte(codec.MarkerJSON), []byte(`{"response":{"status":"error","kind":"weird"}}`)...)
	}
	return data
}
