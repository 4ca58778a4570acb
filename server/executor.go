// Package server implements the wallet side of Tesseract: a Processor that
// demultiplexes incoming frames by protocol id onto a registered Executor,
// and the transport binding that feeds it (spec §2, §4.8, §4.9, §4.10).
package server

import (
	"context"

	"tesseract/codec"
)

// Executor is the per-protocol service-side router: given a codec, the
// request id the Processor already recovered, a method name, and the raw
// request payload, it produces reply bytes (spec §4.9). Implementations
// pattern-match method names and dispatch to a user-provided handler, the
// way each built-in protocol package does (protocols/test,
// protocols/substrate).
//
// id is a parameter here rather than something each Executor re-parses
// from payload: the Processor already decoded the generic envelope once
// to find the target protocol, so it hands the id down instead of making
// every Executor pay for a second decode just to recover it.
type Executor interface {
	Call(ctx context.Context, c codec.Codec, id uint32, method string, payload []byte) []byte
}
