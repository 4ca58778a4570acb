// Package envelope defines the request/response frames exchanged between
// a Tesseract client and service (spec §3, §6).
package envelope

import (
	"encoding/json"

	"github.com/fxamacker/cbor/v2"

	"tesseract/errs"
)

// RequestEnvelope carries one typed call. ID is assigned by the client
// stub, monotonically increasing from 1, per Service instance (spec §3).
type RequestEnvelope[Req any] struct {
	Protocol string `json:"protocol" cbor:"protocol"`
	Method   string `json:"method" cbor:"method"`
	ID       uint32 `json:"id" cbor:"id"`
	Request  Req    `json:"request" cbor:"request"`
}

// ResponseEnvelope carries one typed reply. ID echoes the request id; it
// may be absent only when the service failed before it could parse the id
// (spec §3).
type ResponseEnvelope[Res any] struct {
	ID       *uint32      `json:"id,omitempty" cbor:"id,omitempty"`
	Response Response[Res] `json:"response" cbor:"response"`
}

// Response is the tagged union {status:"ok", ...} | {status:"error", ...}
// (spec §3, §6). Exactly one of Result/Err is meaningful, selected by IsOK.
type Response[Res any] struct {
	ok     bool
	result Res
	err    *errs.Error
}

// OK builds a successful Response.
func OK[Res any](result Res) Response[Res] {
	return Response[Res]{ok: true, result: result}
}

// Err builds a failed Response.
func Err[Res any](err *errs.Error) Response[Res] {
	return Response[Res]{ok: false, err: err}
}

// FromResult converts a (value, error) pair into a Response, the way every
// executor and client stub bridges Go's idiomatic return shape to the wire
// tagged union.
func FromResult[Res any](result Res, err error) Response[Res] {
	if err == nil {
		return OK(result)
	}
	return Err[Res](errs.AsError(err))
}

// IntoResult converts a Response back into Go's idiomatic (value, error).
func (r Response[Res]) IntoResult() (Res, error) {
	if r.ok {
		return r.result, nil
	}
	var zero Res
	return zero, r.err
}

// IsOK reports whether the response is the ok variant.
func (r Response[Res]) IsOK() bool { return r.ok }

type wireResponse[Res any] struct {
	Status string      `json:"status" cbor:"status"`
	Result *Res        `json:"result,omitempty" cbor:"result,omitempty"`
	Kind   errs.Kind   `json:"kind,omitempty" cbor:"kind,omitempty"`
	Desc   string      `json:"description,omitempty" cbor:"description,omitempty"`
}

func (r Response[Res]) marshalable() wireResponse[Res] {
	if r.ok {
		res := r.result
		return wireResponse[Res]{Status: "ok", Result: &res}
	}
	kind := errs.KindWeird
	desc := ""
	if r.err != nil {
		kind = r.err.Kind
		desc = r.err.Description
	}
	return wireResponse[Res]{Status: "error", Kind: kind, Desc: desc}
}

func (r *Response[Res]) fromWire(w wireResponse[Res]) error {
	switch w.Status {
	case "ok":
		r.ok = true
		if w.Result != nil {
			r.result = *w.Result
		}
		r.err = nil
		return nil
	case "error":
		r.ok = false
		r.err = &errs.Error{Kind: w.Kind, Description: w.Desc}
		return nil
	default:
		return errs.Described(errs.KindSerialization, "unknown response status: "+w.Status)
	}
}

// MarshalJSON implements the {"status": "ok"|"error", ...} tagging (spec §6).
func (r Response[Res]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.marshalable())
}

func (r *Response[Res]) UnmarshalJSON(data []byte) error {
	var w wireResponse[Res]
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	return r.fromWire(w)
}

// MarshalCBOR mirrors MarshalJSON for the CBOR codec.
func (r Response[Res]) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(r.marshalable())
}

func (r *Response[Res]) UnmarshalCBOR(data []byte) error {
	var w wireResponse[Res]
	if err := cbor.Unmarshal(data, &w); err != nil {
		return err
	}
	return r.fromWire(w)
}

// Ignored is used by the service-side Processor to recover protocol/method/id
// from a request without needing to know the concrete request payload type
// (spec §4.8 step 2 — the Go analog of the original's serde IgnoredAny).
type Ignored struct{}

func (Ignored) UnmarshalJSON([]byte) error { return nil }
func (Ignored) MarshalJSON() ([]byte, error) { return []byte("null"), nil }
func (Ignored) UnmarshalCBOR([]byte) error { return nil }
func (Ignored) MarshalCBOR() ([]byte, error) { return cbor.Marshal(nil) }
