package server_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"tesseract/codec"
	"tesseract/envelope"
	"tesseract/errs"
	"tesseract/server"
)

type req struct {
	N int `json:"n" cbor:"n"`
}

type res struct {
	Doubled int `json:"doubled" cbor:"doubled"`
}

func TestHandleMethodSuccess(t *testing.T) {
	c := codec.JSONCodec{}
	request := envelope.RequestEnvelope[req]{Protocol: "p", Method: "double", ID: 9, Request: req{N: 21}}
	payload, err := codec.Serialize(c, request, true)
	require.NoError(t, err)
	_, body, err := codec.ReadMarker(payload)
	require.NoError(t, err)

	reply := server.HandleMethod(context.Background(), c, 9, body, func(ctx context.Context, r req) (res, error) {
		return res{Doubled: r.N * 2}, nil
	})

	replyCodec, replyBody, err := codec.ReadMarker(reply)
	require.NoError(t, err)
	var out envelope.ResponseEnvelope[res]
	require.NoError(t, codec.Deserialize(replyCodec, replyBody, &out))
	require.Equal(t, uint32(9), *out.ID)
	result, rerr := out.Response.IntoResult()
	require.NoError(t, rerr)
	require.Equal(t, 42, result.Doubled)
}

func TestHandleMethodHandlerError(t *testing.T) {
	c := codec.JSONCodec{}
	request := envelope.RequestEnvelope[req]{Protocol: "p", Method: "double", ID: 1, Request: req{N: 1}}
	payload, err := codec.Serialize(c, request, true)
	require.NoError(t, err)
	_, body, err := codec.ReadMarker(payload)
	require.NoError(t, err)

	reply := server.HandleMethod(context.Background(), c, 1, body, func(ctx context.Context, r req) (res, error) {
		return res{}, errs.Described(errs.KindWeird, "nope")
	})

	replyCodec, replyBody, err := codec.ReadMarker(reply)
	require.NoError(t, err)
	var out envelope.ResponseEnvelope[res]
	require.NoError(t, codec.Deserialize(replyCodec, replyBody, &out))
	_, rerr := out.Response.IntoResult()
	require.Error(t, rerr)
}

func TestHandleMethodBadPayload(t *testing.T) {
	c := codec.JSONCodec{}

	reply := server.HandleMethod(context.Background(), c, 2, []byte("not json"), func(ctx context.Context, r req) (res, error) {
		return res{}, nil
	})

	replyCodec, replyBody, err := codec.ReadMarker(reply)
	require.NoError(t, err)
	var out envelope.ResponseEnvelope[res]
	require.NoError(t, codec.Deserialize(replyCodec, replyBody, &out))
	require.Equal(t, uint32(2), *out.ID)
	_, rerr := out.Response.IntoResult()
	require.Error(t, rerr)
	require.True(t, errors.As(rerr, new(*errs.Error)))
}

func TestUnknownMethod(t *testing.T) {
	reply := server.UnknownMethod(codec.JSONCodec{}, 4, "whatever")

	replyCodec, replyBody, err := codec.ReadMarker(reply)
	require.NoError(t, err)
	var out envelope.ResponseEnvelope[envelope.Ignored]
	require.NoError(t, codec.Deserialize(replyCodec, replyBody, &out))
	_, rerr := out.Response.IntoResult()
	require.Error(t, rerr)
}
