package middleware

import (
	"context"
	"time"

	"go.uber.org/zap"

	"tesseract/codec"
	"tesseract/envelope"
)

// Logging records the method and duration of each call, and whether the
// reply came back as an error envelope, via the given logger.
func Logging(logger *zap.SugaredLogger) Middleware {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, c codec.Codec, id uint32, method string, payload []byte) []byte {
			start := time.Now()
			reply := next(ctx, c, id, method, payload)
			isError := true
			if rc, body, err := codec.ReadMarker(reply); err == nil {
				var env envelope.ResponseEnvelope[envelope.Ignored]
				if codec.Deserialize(rc, body, &env) == nil {
					isError = !env.Response.IsOK()
				}
			}
			logger.Infow("call", "method", method, "id", id, "duration", time.Since(start), "error", isError)
			return reply
		}
	}
}
