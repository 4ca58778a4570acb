package wsock_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"tesseract/codec"
	"tesseract/envelope"
	"tesseract/protocol"
	"tesseract/server"
	wsock "tesseract/transports/websocket"
)

type echoExecutor struct{}

func (echoExecutor) Call(ctx context.Context, c codec.Codec, id uint32, method string, payload []byte) []byte {
	env := envelope.ResponseEnvelope[string]{ID: &id, Response: envelope.OK("echo:" + method)}
	data, _ := codec.Serialize(c, env, true)
	return data
}

func TestWebsocketRoundTrip(t *testing.T) {
	p := server.NewProcessor()
	p.AddExecutor("test", echoExecutor{})

	st := wsock.NewServerTransport()
	bound := st.Bind(p)
	defer bound.Close()

	srv := httptest.NewServer(st)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/"

	client := wsock.NewTransport("ws-a", url)
	ctx := context.Background()
	require.True(t, client.Status(ctx, protocol.Named("test")).Ready)

	conn := client.Connect(protocol.Named("test"))

	req := envelope.RequestEnvelope[envelope.Ignored]{Protocol: "test", Method: "ping", ID: 1}
	body, err := codec.Serialize(codec.JSONCodec{}, req, true)
	require.NoError(t, err)

	require.NoError(t, conn.Send(ctx, body))
	reply, err := conn.Receive(ctx)
	require.NoError(t, err)

	_, payload, err := codec.ReadMarker(reply)
	require.NoError(t, err)
	var out envelope.ResponseEnvelope[string]
	require.NoError(t, codec.Deserialize(codec.JSONCodec{}, payload, &out))
	result, rerr := out.Response.IntoResult()
	require.NoError(t, rerr)
	require.Equal(t, "echo:ping", result)
}
