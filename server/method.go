package server

import (
	"context"

	"tesseract/codec"
	"tesseract/envelope"
	"tesseract/errs"
)

// HandleMethod implements the per-method pattern from spec §4.9:
//  1. deserialize RequestEnvelope[Req] from payload using c
//  2. invoke handler with the concrete request
//  3. wrap the handler's (Res, error) as a Response
//  4. serialize ResponseEnvelope{id, response} with the same codec, marked
//
// id is passed in already recovered (the Processor parses it once, generically,
// before dispatching to an Executor) so a Req-specific decode failure can
// still produce an error envelope carrying the right id (spec §4.9 step 1,
// "on failure, build an error envelope {id: id-if-recoverable, ...}").
func HandleMethod[Req any, Res any](ctx context.Context, c codec.Codec, id uint32, payload []byte, handler func(context.Context, Req) (Res, error)) []byte {
	var request envelope.RequestEnvelope[Req]
	if err := codec.Deserialize(c, payload, &request); err != nil {
		return errorReply[Res](c, id, errs.AsError(err))
	}

	result, err := handler(ctx, request.Request)
	response := envelope.FromResult(result, err)

	out := envelope.ResponseEnvelope[Res]{ID: &id, Response: response}
	data, err := codec.Serialize(c, out, true)
	if err != nil {
		return errorReply[Res](c, id, errs.AsError(err))
	}
	return data
}

// UnknownMethod builds the error envelope for an executor that doesn't
// recognize the requested method (spec §4.9 "Unknown method").
func UnknownMethod(c codec.Codec, id uint32, method string) []byte {
	return errorReply[envelope.Ignored](c, id, errs.Described(errs.KindWeird, "unknown method: "+method))
}

func errorReply[Res any](c codec.Codec, id uint32, err *errs.Error) []byte {
	env := envelope.ResponseEnvelope[Res]{ID: &id, Response: envelope.Err[Res](err)}
	data, serr := codec.Serialize(c, env, true)
	if serr != nil {
		// Even the error envelope failed to encode; none of our codecs
		// can actually fail on this shape, so this is a last-resort,
		// hand-built JSON frame rather than a panic from deep inside a
		// request handler.
		return append([]byte(codec.MarkerJSON), []byte(`{"response":{"status":"error","kind":"weird"}}`)...)
	}
	return data
}
