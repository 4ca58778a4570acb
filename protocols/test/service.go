package test

import (
	"context"

	"tesseract/codec"
	"tesseract/server"
)

// Handler is what a wallet implements to serve the test protocol.
type Handler interface {
	SignTransaction(ctx context.Context, transaction string) (string, error)
}

// Executor dispatches test protocol methods to a Handler, pattern-matching
// the method name the way every built-in protocol executor does (spec
// §4.9) rather than using reflection over the handler's methods.
type Executor struct {
	handler Handler
}

// NewExecutor builds an Executor serving handler.
func NewExecutor(handler Handler) *Executor {
	return &Executor{handler: handler}
}

func (e *Executor) Call(ctx context.Context, c codec.Codec, id uint32, method string, payload []byte) []byte {
	switch method {
	case "sign_transaction":
		return server.HandleMethod(ctx, c, id, payload, func(ctx context.Context, req SignTransactionRequest) (SignTransactionResponse, error) {
			signed, err := e.handler.SignTransaction(ctx, req.Transaction)
			if err != nil {
				return SignTransactionResponse{}, err
			}
			return SignTransactionResponse{Signed: signed}, nil
		})
	default:
		return server.UnknownMethod(c, id, method)
	}
}
