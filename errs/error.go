// Package errs defines the wire-visible error taxonomy shared by every
// Tesseract client and service. An Error round-trips through the envelope
// codec; any in-process causal chain is kept out of the wire shape and is
// reachable only via Unwrap.
package errs

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Kind is the wire-visible error taxonomy (spec §7).
type Kind string

const (
	// KindCancelled means the client-side delegate declined to pick a transport.
	KindCancelled Kind = "cancelled"
	// KindSerialization means a codec or framing failure.
	KindSerialization Kind = "serialization"
	// KindWeird is the catch-all for protocol-level surprises.
	KindWeird Kind = "weird"
)

// Error is the wire-visible error envelope payload. Kind and Description
// are marshaled; cause never is.
type Error struct {
	Kind        Kind   `json:"kind" cbor:"kind"`
	Description string `json:"description,omitempty" cbor:"description,omitempty"`

	cause error
}

// New builds an Error with a description and an underlying cause that is
// never serialized, only reachable through Unwrap/Is for local diagnostics.
func New(kind Kind, description string, cause error) *Error {
	return &Error{Kind: kind, Description: description, cause: cause}
}

// Described builds an Error with a description and no cause.
func Described(kind Kind, description string) *Error {
	return &Error{Kind: kind, Description: description}
}

// Kinded builds a bare Error carrying only a kind.
func Kinded(kind Kind) *Error {
	return &Error{Kind: kind}
}

// Nested wraps an arbitrary cause as a Weird error with no description.
func Nested(cause error) *Error {
	return &Error{Kind: KindWeird, cause: cause}
}

func (e *Error) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("tesseract error: %s", e.Kind)
	}
	return fmt.Sprintf("tesseract error: %s: %s", e.Kind, e.Description)
}

// Unwrap exposes the local-only cause chain; it is never part of the wire shape.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports kind-equality, so errors.Is(err, errs.Kinded(errs.KindWeird)) works
// regardless of description or cause.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// wireError is the on-wire shape; kept separate so MarshalJSON/UnmarshalJSON
// can't recurse into themselves.
type wireError struct {
	Kind        Kind   `json:"kind" cbor:"kind"`
	Description string `json:"description,omitempty" cbor:"description,omitempty"`
}

// MarshalJSON drops the unexported cause, which is the whole point.
func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireError{Kind: e.Kind, Description: e.Description})
}

func (e *Error) UnmarshalJSON(data []byte) error {
	var w wireError
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	e.Kind = w.Kind
	e.Description = w.Description
	e.cause = nil
	return nil
}

// MarshalCBOR mirrors MarshalJSON for the CBOR codec.
func (e *Error) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(wireError{Kind: e.Kind, Description: e.Description})
}

// UnmarshalCBOR mirrors UnmarshalJSON for the CBOR codec.
func (e *Error) UnmarshalCBOR(data []byte) error {
	var w wireError
	if err := cbor.Unmarshal(data, &w); err != nil {
		return err
	}
	e.Kind = w.Kind
	e.Description = w.Description
	e.cause = nil
	return nil
}

// AsError adapts a plain Go error into a wire-visible *Error, leaving it
// untouched if it already is one.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	if te, ok := err.(*Error); ok {
		return te
	}
	return New(KindWeird, err.Error(), err)
}
