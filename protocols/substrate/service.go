package substrate

import (
	"context"

	"tesseract/codec"
	"tesseract/server"
)

// Handler is what a wallet implements to serve the substrate-v1 protocol.
type Handler interface {
	GetAccount(ctx context.Context, accountType AccountType) (GetAccountResponse, error)
	SignTransaction(ctx context.Context, accountType AccountType, accountPath string, extrinsicData, extrinsicMetadata, extrinsicTypes []byte) ([]byte, error)
}

// Executor dispatches substrate-v1 methods to a Handler.
type Executor struct {
	handler Handler
}

// NewExecutor builds an Executor serving handler.
func NewExecutor(handler Handler) *Executor {
	return &Executor{handler: handler}
}

func (e *Executor) Call(ctx context.Context, c codec.Codec, id uint32, method string, payload []byte) []byte {
	switch method {
	case MethodGetAccount:
		return server.HandleMethod(ctx, c, id, payload, func(ctx context.Context, req GetAccountRequest) (GetAccountResponse, error) {
			return e.handler.GetAccount(ctx, req.AccountType)
		})
	case MethodSignTransaction:
		return server.HandleMethod(ctx, c, id, payload, func(ctx context.Context, req SignTransactionRequest) (SignTransactionResponse, error) {
			signature, err := e.handler.SignTransaction(ctx, req.AccountType, req.AccountPath, req.ExtrinsicData, req.ExtrinsicMetadata, req.ExtrinsicTypes)
			if err != nil {
				return SignTransactionResponse{}, err
			}
			return SignTransactionResponse{Signature: signature}, nil
		})
	default:
		return server.UnknownMethod(c, id, method)
	}
}
