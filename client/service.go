package client

import (
	"context"
	"fmt"
	"sync/atomic"

	"tesseract/codec"
	"tesseract/envelope"
	"tesseract/errs"
	"tesseract/protocol"
)

// Service is the per-protocol client stub state: a Protocol value, a
// codec, an atomic request-id counter starting at 1, and one
// QueuedConnection (spec §2, §4.2).
type Service struct {
	protocol protocol.Protocol
	codec    codec.Codec
	conn     ServiceConnection
	nextID   uint32
}

func newService(p protocol.Protocol, c codec.Codec, conn ServiceConnection) *Service {
	return &Service{protocol: p, codec: c, conn: conn, nextID: 0}
}

// Protocol returns the stub's bound protocol.
func (s *Service) Protocol() protocol.Protocol { return s.protocol }

func (s *Service) nextRequestID() uint32 {
	return atomic.AddUint32(&s.nextID, 1)
}

// Call performs one typed round trip (spec §4.2).
//
//  1. assign an id
//  2. build and serialize the request envelope, marked with the codec
//  3. send it and wait for the reply over the Service's QueuedConnection
//  4. read the reply's codec marker and deserialize the response envelope
//  5. match the reply id against the request id
//  6. map ok -> value, error -> err
//
// Req/Res can't be additional type parameters on a Service method (Go
// methods may not introduce their own type parameters), so Call is a
// free function taking the Service as its first argument — the idiomatic
// Go shape for a generic operation over a non-generic receiver.
func Call[Req any, Res any](ctx context.Context, s *Service, method string, req Req) (Res, error) {
	var zero Res

	id := s.nextRequestID()
	request := envelope.RequestEnvelope[Req]{
		Protocol: s.protocol.ID(),
		Method:   method,
		ID:       id,
		Request:  req,
	}

	requestData, err := codec.Serialize(s.codec, request, true)
	if err != nil {
		return zero, err
	}

	responseData, err := s.conn.Request(ctx, requestData)
	if err != nil {
		return zero, err
	}

	replyCodec, payload, err := codec.ReadMarker(responseData)
	if err != nil {
		return zero, err
	}

	var response envelope.ResponseEnvelope[Res]
	if err := codec.Deserialize(replyCodec, payload, &response); err != nil {
		return zero, err
	}

	if response.ID == nil {
		result, rerr := response.Response.IntoResult()
		if rerr == nil {
			return zero, errs.Described(errs.KindSerialization,
				"response arrived without a matching id but containing a response body")
		}
		_ = result
		return zero, rerr
	}

	if *response.ID != id {
		return zero, errs.Described(errs.KindWeird,
			fmt.Sprintf("ResponseID and RequestID don't match: %d and %d", *response.ID, id))
	}

	return response.Response.IntoResult()
}
