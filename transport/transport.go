// Package transport defines the client-side transport contract: a named
// endpoint that reports its availability for a protocol and can open a
// Connection bound to that protocol (spec §3, §4.7).
package transport

import (
	"context"

	"tesseract/errs"
	"tesseract/protocol"
)

// Status is reported per (transport, protocol) pair (spec §3).
type Status struct {
	Ready       bool
	Unavailable string // reason, set only when !Ready and Err == nil
	Err         *errs.Error
}

// StatusReady is the Ready status.
func StatusReady() Status { return Status{Ready: true} }

// StatusUnavailable builds an Unavailable(reason) status.
func StatusUnavailable(reason string) Status { return Status{Unavailable: reason} }

// StatusError builds an Error(err) status.
func StatusError(err *errs.Error) Status { return Status{Err: err} }

// Connection is a duplex byte-message channel bound to one protocol. It is
// single-user: callers must not issue overlapping Send/Receive pairs (that
// guarantee is provided by client.QueuedConnection, not by Connection
// itself) (spec §3 invariant 3).
type Connection interface {
	Send(ctx context.Context, request []byte) error
	Receive(ctx context.Context) ([]byte, error)
}

// Transport is a named endpoint capable of reporting availability for a
// protocol and opening a Connection bound to it (spec §4.7).
type Transport interface {
	// ID is a stable identifier, unique per Tesseract client instance.
	ID() string
	// Status may probe the remote side; it is awaitable and may be slow.
	Status(ctx context.Context, p protocol.Protocol) Status
	// Connect is synchronous; the returned Connection may lazily dial on
	// first Send.
	Connect(p protocol.Protocol) Connection
}
