package client

import (
	"context"
	"errors"
	"time"

	"github.com/Rican7/retry/backoff"

	"tesseract/errs"
)

// CallWithRetry wraps Call with automatic retries when the delegate
// declines to pick a transport (errs.KindCancelled) — spec §7 says that
// decision is the caller's to make ("the caller decides to retry"); this
// is that decision, offered as opt-in sugar rather than baked into Call
// itself. Any other error kind is returned immediately, unretried. The
// inter-attempt delay comes from Rican7/retry's linear backoff algorithm.
func CallWithRetry[Req any, Res any](ctx context.Context, s *Service, method string, req Req, maxAttempts uint, baseDelay time.Duration) (Res, error) {
	delay := backoff.Linear(baseDelay)

	var result Res
	var err error
	for attempt := uint(1); attempt <= maxAttempts; attempt++ {
		result, err = Call[Req, Res](ctx, s, method, req)
		if err == nil {
			return result, nil
		}

		var tErr *errs.Error
		if !errors.As(err, &tErr) || tErr.Kind != errs.KindCancelled {
			return result, err
		}
		if attempt == maxAttempts {
			return result, err
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(delay(attempt)):
		}
	}
	return result, err
}
