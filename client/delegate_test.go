package client_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tesseract/client"
	"tesseract/transport"
)

func TestSingleTransportDelegatePicksTheOnlyReadyOne(t *testing.T) {
	statuses := map[string]transport.Status{
		"a": transport.StatusReady(),
		"b": transport.StatusUnavailable("offline"),
	}

	id, ok := client.SingleTransportDelegate{}.SelectTransport(context.Background(), statuses)
	require.True(t, ok)
	require.Equal(t, "a", id)
}

func TestSingleTransportDelegateDeclinesOnAmbiguity(t *testing.T) {
	statuses := map[string]transport.Status{
		"a": transport.StatusReady(),
		"b": transport.StatusReady(),
	}

	_, ok := client.SingleTransportDelegate{}.SelectTransport(context.Background(), statuses)
	require.False(t, ok)
}

func TestSingleTransportDelegateDeclinesOnNoneReady(t *testing.T) {
	statuses := map[string]transport.Status{
		"a": transport.StatusUnavailable("offline"),
	}

	_, ok := client.SingleTransportDelegate{}.SelectTransport(context.Background(), statuses)
	require.False(t, ok)
}

func TestDelegateFuncAdapts(t *testing.T) {
	var seen map[string]transport.Status
	d := client.DelegateFunc(func(ctx context.Context, statuses map[string]transport.Status) (string, bool) {
		seen = statuses
		return "x", true
	})

	id, ok := d.SelectTransport(context.Background(), map[string]transport.Status{"x": transport.StatusReady()})
	require.True(t, ok)
	require.Equal(t, "x", id)
	require.NotNil(t, seen)
}
