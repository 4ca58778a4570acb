package substrate

import (
	"context"

	"tesseract/client"
)

// Client wraps a client.Service bound to the substrate-v1 protocol with
// typed methods.
type Client struct {
	service *client.Service
}

// NewClient adapts a generic protocol service stub to the typed Client.
func NewClient(service *client.Service) *Client {
	return &Client{service: service}
}

// GetAccount fetches an account of the given type from the wallet.
func (c *Client) GetAccount(ctx context.Context, accountType AccountType) (GetAccountResponse, error) {
	return client.Call[GetAccountRequest, GetAccountResponse](
		ctx, c.service, MethodGetAccount, GetAccountRequest{AccountType: accountType},
	)
}

// SignTransaction asks the wallet to sign a SCALE-encoded extrinsic using
// the account at accountPath, returning the raw signature bytes.
func (c *Client) SignTransaction(ctx context.Context, accountType AccountType, accountPath string, extrinsicData, extrinsicMetadata, extrinsicTypes []byte) ([]byte, error) {
	response, err := client.Call[SignTransactionRequest, SignTransactionResponse](
		ctx, c.service, MethodSignTransaction, SignTransactionRequest{
			AccountType:       accountType,
			AccountPath:       accountPath,
			ExtrinsicData:     extrinsicData,
			ExtrinsicMetadata: extrinsicMetadata,
			ExtrinsicTypes:    extrinsicTypes,
		},
	)
	if err != nil {
		return nil, err
	}
	return response.Signature, nil
}
