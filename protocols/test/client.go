package test

import (
	"context"

	"tesseract/client"
)

// Client wraps a client.Service bound to the test protocol with a typed
// method, the way generated protocol stubs would in a larger system —
// here written by hand since there is exactly one method.
type Client struct {
	service *client.Service
}

// NewClient adapts a generic protocol service stub to the typed Client.
func NewClient(service *client.Service) *Client {
	return &Client{service: service}
}

// SignTransaction asks the wallet to sign an opaque transaction blob.
func (c *Client) SignTransaction(ctx context.Context, transaction string) (string, error) {
	response, err := client.Call[SignTransactionRequest, SignTransactionResponse](
		ctx, c.service, "sign_transaction", SignTransactionRequest{Transaction: transaction},
	)
	if err != nil {
		return "", err
	}
	return response.Signed, nil
}
