// Package test implements the "test" protocol: a single sign_transaction
// method, used throughout this module as the minimal end-to-end fixture
// for client/service/transport wiring.
package test

import "tesseract/protocol"

// ID is this protocol's wire identifier.
const ID = "test"

// Protocol is the "test" protocol value.
var Protocol protocol.Protocol = protocol.Named(ID)

// SignTransactionRequest carries an opaque transaction blob to be signed.
type SignTransactionRequest struct {
	Transaction string `json:"transaction" cbor:"transaction"`
}

// SignTransactionResponse carries the signed result back.
type SignTransactionResponse struct {
	Signed string `json:"signed" cbor:"signed"`
}
