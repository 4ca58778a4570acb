package test_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"tesseract/client"
	"tesseract/errs"
	"tesseract/protocols/test"
	"tesseract/server"
	"tesseract/transports/local"
)

type echoWallet struct{}

func (echoWallet) SignTransaction(ctx context.Context, transaction string) (string, error) {
	return "signed:" + transaction, nil
}

type refusingWallet struct{}

func (refusingWallet) SignTransaction(ctx context.Context, transaction string) (string, error) {
	return "", errs.Described(errs.KindWeird, "refused to sign")
}

func harness(t *testing.T, handler test.Handler) *test.Client {
	t.Helper()

	link := local.NewLink()
	svc := server.New().
		Service(test.Protocol, test.NewExecutor(handler)).
		Transport(local.NewServerTransport(link))
	t.Cleanup(func() { _ = svc.Close() })

	root := client.New(client.SingleTransportDelegate{}).WithTransport(local.NewTransport(link))
	stub := client.NewServiceFor(root, test.Protocol)
	return test.NewClient(stub)
}

func TestSignTransactionRoundTrip(t *testing.T) {
	c := harness(t, echoWallet{})

	signed, err := c.SignTransaction(context.Background(), "deadbeef")
	require.NoError(t, err)
	require.Equal(t, "signed:deadbeef", signed)
}

func TestSignTransactionPropagatesError(t *testing.T) {
	c := harness(t, refusingWallet{})

	_, err := c.SignTransaction(context.Background(), "deadbeef")
	require.Error(t, err)

	var tErr *errs.Error
	require.ErrorAs(t, err, &tErr)
	require.Equal(t, errs.KindWeird, tErr.Kind)
}

func TestConcurrentCallsDoNotInterleave(t *testing.T) {
	c := harness(t, echoWallet{})

	const n = 50
	results := make(chan [2]string, n)
	for i := 0; i < n; i++ {
		go func(i int) {
			tx := fmt.Sprintf("tx-%d", i)
			signed, err := c.SignTransaction(context.Background(), tx)
			require.NoError(t, err)
			results <- [2]string{tx, signed}
		}(i)
	}
	for i := 0; i < n; i++ {
		r := <-results
		require.Equal(t, "signed:"+r[0], r[1])
	}
}
