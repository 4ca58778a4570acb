package tcp_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tesseract/codec"
	"tesseract/envelope"
	"tesseract/protocol"
	"tesseract/server"
	"tesseract/transports/tcp"
)

type echoExecutor struct{}

func (echoExecutor) Call(ctx context.Context, c codec.Codec, id uint32, method string, payload []byte) []byte {
	env := envelope.ResponseEnvelope[string]{ID: &id, Response: envelope.OK("echo:" + method)}
	data, _ := codec.Serialize(c, env, true)
	return data
}

func freeAddress(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestTCPRoundTrip(t *testing.T) {
	addr := freeAddress(t)

	p := server.NewProcessor()
	p.AddExecutor("test", echoExecutor{})
	bound := tcp.NewServerTransport(addr).Bind(p)
	defer bound.Close()

	// give the listener a moment to come up
	time.Sleep(20 * time.Millisecond)

	client := tcp.NewTransport("tcp-a", addr)
	ctx := context.Background()
	require.Eventually(t, func() bool {
		return client.Status(ctx, protocol.Named("test")).Ready
	}, time.Second, 10*time.Millisecond)

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

func TestTCPStatusErrorWhenNothingListening(t *testing.T) {
	client := tcp.NewTransport("tcp-a", "127.0.0.1:1")
	status := client.Status(context.Background(), protocol.Named("test"))
	require.False(t, status.Ready)
}
