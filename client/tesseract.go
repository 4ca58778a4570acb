package client

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tesseract/codec"
	"tesseract/errs"
	"tesseract/protocol"
	"tesseract/transport"
)

// Tesseract is the client-side root: a builder that owns the transport
// selection delegate, the default codec, and the set of transports, and a
// factory for per-protocol Service stubs (spec §2, §4.5, §6).
type Tesseract struct {
	delegate   Delegate
	codec      codec.Codec
	transports []transport.Transport
	logger     *zap.SugaredLogger
}

// New builds a client root around delegate, defaulting to codec.Default.
func New(delegate Delegate) *Tesseract {
	return &Tesseract{
		delegate: delegate,
		codec:    codec.Default,
		logger:   zap.NewNop().Sugar(),
	}
}

// WithCodec overrides the default codec used for outgoing requests.
func (t *Tesseract) WithCodec(c codec.Codec) *Tesseract {
	t.codec = c
	return t
}

// WithLogger attaches a structured logger; nil-safe (defaults to a no-op).
func (t *Tesseract) WithLogger(logger *zap.SugaredLogger) *Tesseract {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	t.logger = logger
	return t
}

// WithTransport registers a transport, appended to the ordered list probed
// on every connection attempt (spec §4.5).
func (t *Tesseract) WithTransport(tr transport.Transport) *Tesseract {
	t.transports = append(t.transports, tr)
	return t
}

// statusAll probes every registered transport concurrently and gathers the
// results into an {transport-id -> Status} map (spec §4.5 step 1). Fan-out
// uses errgroup so a single transport's probe failing to run (e.g. a
// context cancellation) doesn't leave partial, racy writes to the map.
func (t *Tesseract) statusAll(ctx context.Context, p protocol.Protocol) map[string]transport.Status {
	statuses := make(map[string]transport.Status, len(t.transports))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, tr := range t.transports {
		tr := tr
		g.Go(func() error {
			st := tr.Status(gctx, p)
			mu.Lock()
			statuses[tr.ID()] = st
			mu.Unlock()
			return nil
		})
	}
	// Status probes never return an error themselves (Status.Err covers
	// that case), so g.Wait can't fail; it only blocks for completion.
	_ = g.Wait()
	return statuses
}

// connSource builds the ConnSource fed to CachedConnection: each call is
// one iteration of the selection loop in spec §4.5 — probe every
// transport, ask the delegate, connect or report Cancelled, and let the
// next miss re-run the whole thing so a transport that becomes available
// later can be picked later.
func (t *Tesseract) connSource(p protocol.Protocol) ConnSource {
	return func(ctx context.Context) (transport.Connection, error) {
		statuses := t.statusAll(ctx, p)

		id, ok := t.delegate.SelectTransport(ctx, statuses)
		if !ok {
			return nil, errs.Kinded(errs.KindCancelled)
		}

		for _, tr := range t.transports {
			if tr.ID() == id {
				return tr.Connect(p), nil
			}
		}
		// The delegate contract requires picking an id present in the
		// statuses map it was handed; anything else is a programming
		// error in the delegate, not a recoverable runtime condition
		// (spec §4.5 step 2, §7 "Unrecoverable/fatal").
		panic(fmt.Sprintf("tesseract: delegate selected unknown transport %q", id))
	}
}

// connCached builds the CachedConnection for a protocol.
func (t *Tesseract) connCached(p protocol.Protocol) *CachedConnection {
	return NewCachedConnection(t.connSource(p))
}

// connService builds the ServiceConnection (QueuedConnection) for a protocol.
func (t *Tesseract) connService(p protocol.Protocol) ServiceConnection {
	return NewQueuedConnection(t.connCached(p))
}

// NewServiceFor creates the generic per-protocol Service stub; a protocol
// package's concrete client wraps this with typed methods (spec §4.2, §9).
func NewServiceFor(t *Tesseract, p protocol.Protocol) *Service {
	return newService(p, t.codec, t.connService(p))
}
