package server

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"tesseract/codec"
	"tesseract/envelope"
	"tesseract/errs"
)

// Processor demultiplexes incoming frames by protocol id onto a registered
// Executor (spec §2, §4.8). The executor map is populated once at build
// time (spec §5 "effectively immutable after build"); registration uses a
// plain mutex since it is a startup-time step, and reads in the hot path
// take no lock at all — Process loads an atomic snapshot published after
// each registration.
type Processor struct {
	mu        sync.Mutex
	executors map[string]Executor
	snapshot  atomicMap
}

type atomicMap struct {
	v atomic.Value
}

func (a *atomicMap) store(m map[string]Executor) {
	a.v.Store(m)
}

func (a *atomicMap) load() map[string]Executor {
	m, _ := a.v.Load().(map[string]Executor)
	return m
}

// NewProcessor builds an empty Processor.
func NewProcessor() *Processor {
	return &Processor{executors: make(map[string]Executor)}
}

// AddExecutor registers an executor for a protocol id. Registering two
// executors for the same protocol id is a configuration error and aborts
// the program (spec §3 invariant 4, §7 "Unrecoverable/fatal"): registration
// is a startup-time step, not a request-time one. Each registration
// publishes a fresh snapshot that an already bound transport picks up on
// its next Process call.
func (p *Processor) AddExecutor(protocolID string, executor Executor) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.executors[protocolID]; exists {
		panic(fmt.Sprintf("tesseract: executor already registered for protocol %q", protocolID))
	}
	p.executors[protocolID] = executor

	next := make(map[string]Executor, len(p.executors))
	for k, v := range p.executors {
		next[k] = v
	}
	p.snapshot.store(next)
}

// Process implements spec §4.8:
//  1. read the codec marker; a failure produces an error reply encoded
//     with the default codec
//  2. deserialize the generic envelope to recover protocol/method/id; a
//     failure produces an error reply (with id if it was recoverable)
//  3. look up the executor by protocol; an unknown protocol produces an
//     error reply carrying id (this resolves spec §9 Open Question 1 in
//     favor of an error envelope, never a panic, on attacker-controlled
//     input)
//  4. invoke executor.Call, returning its bytes verbatim
func (p *Processor) Process(ctx context.Context, frame []byte) []byte {
	c, payload, err := codec.ReadMarker(frame)
	if err != nil {
		return errorReplyNoID(codec.Default, errs.AsError(err))
	}

	var header envelope.RequestEnvelope[envelope.Ignored]
	if err := codec.Deserialize(c, payload, &header); err != nil {
		var partial struct {
			ID *uint32 `json:"id" cbor:"id"`
		}
		if c.Decode(payload, &partial) == nil && partial.ID != nil {
			return errorReply[envelope.Ignored](c, *partial.ID, errs.AsError(err))
		}
		return errorReplyNoID(c, errs.AsError(err))
	}

	executors := p.snapshot.load()
	executor, ok := executors[header.Protocol]
	if !ok {
		return errorReply[envelope.Ignored](c, header.ID, errs.Described(errs.KindWeird, "unknown protocol: "+header.Protocol))
	}

	return executor.Call(ctx, c, header.ID, header.Method, payload)
}

// errorReplyNoID builds an error reply with the id absent, for failures
// that happen before the request id could even be parsed (spec §3
// "id may be absent only ... error-only frame", §7 "otherwise an error
// envelope with absent id is emitted").
func errorReplyNoID(c codec.Codec, err *errs.Error) []byte {
	env := envelope.ResponseEnvelope[envelope.Ignored]{Response: envelope.Err[envelope.Ignored](err)}
	data, serr := codec.Serialize(c, env, true)
	if serr != nil {
		return append([]byte(codec.MarkerJSON), []byte(`{"response":{"status":"error","kind":"serialization"}}`)...)
	}
	return data
}
