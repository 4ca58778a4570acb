package client

import (
	"context"

	"tesseract/transport"
)

// Delegate chooses among ready transports, possibly awaiting a human
// decision. Returning ok=false means "cancelled" (spec §4.6).
type Delegate interface {
	SelectTransport(ctx context.Context, statuses map[string]transport.Status) (id string, ok bool)
}

// DelegateFunc adapts a plain function to Delegate.
type DelegateFunc func(ctx context.Context, statuses map[string]transport.Status) (string, bool)

func (f DelegateFunc) SelectTransport(ctx context.Context, statuses map[string]transport.Status) (string, bool) {
	return f(ctx, statuses)
}

// SingleTransportDelegate returns the single ready transport when exactly
// one is ready, else it declines (spec §4.6).
type SingleTransportDelegate struct{}

func (SingleTransportDelegate) SelectTransport(_ context.Context, statuses map[string]transport.Status) (string, bool) {
	var found string
	count := 0
	for id, st := range statuses {
		if st.Ready {
			found = id
			count++
		}
	}
	if count == 1 {
		return found, true
	}
	return "", false
}
