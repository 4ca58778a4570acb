package envelope_test

import (
	"encoding/json"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"

	"tesseract/envelope"
	"tesseract/errs"
)

type payload struct {
	Value int `json:"value" cbor:"value"`
}

func TestResponseOKJSONRoundTrip(t *testing.T) {
	resp := envelope.OK(payload{Value: 42})

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	require.JSONEq(t, `{"status":"ok","result":{"value":42}}`, string(data))

	var decoded envelope.Response[payload]
	require.NoError(t, json.Unmarshal(data, &decoded))
	result, rerr := decoded.IntoResult()
	require.NoError(t, rerr)
	require.Equal(t, 42, result.Value)
}

func TestResponseErrorJSONRoundTrip(t *testing.T) {
	resp := envelope.Err[payload](errs.Described(errs.KindWeird, "nope"))

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded envelope.Response[payload]
	require.NoError(t, json.Unmarshal(data, &decoded))
	_, rerr := decoded.IntoResult()
	require.Error(t, rerr)

	var tErr *errs.Error
	require.ErrorAs(t, rerr, &tErr)
	require.Equal(t, errs.KindWeird, tErr.Kind)
}

func TestResponseCBORRoundTrip(t *testing.T) {
	resp := envelope.OK(payload{Value: 7})

	data, err := cbor.Marshal(resp)
	require.NoError(t, err)

	var decoded envelope.Response[payload]
	require.NoError(t, cbor.Unmarshal(data, &decoded))
	result, rerr := decoded.IntoResult()
	require.NoError(t, rerr)
	require.Equal(t, 7, result.Value)
}

func TestRequestEnvelopeRoundTrip(t *testing.T) {
	req := envelope.RequestEnvelope[payload]{
		Protocol: "test",
		Method:   "do_thing",
		ID:       3,
		Request:  payload{Value: 9},
	}

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var decoded envelope.RequestEnvelope[payload]
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, req, decoded)
}

func TestResponseEnvelopeAbsentID(t *testing.T) {
	env := envelope.ResponseEnvelope[envelope.Ignored]{
		Response: envelope.Err[envelope.Ignored](errs.Described(errs.KindSerialization, "bad frame")),
	}

	data, err := json.Marshal(env)
	require.NoError(t, err)

	var decoded envelope.ResponseEnvelope[envelope.Ignored]
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Nil(t, decoded.ID)
}
