// Package substrate implements the "substrate-v1" protocol: fetching an
// account's public key and signing an extrinsic against it.
package substrate

import "tesseract/protocol"

// ID is this protocol's wire identifier.
const ID = "substrate-v1"

// Protocol is the "substrate-v1" protocol value.
var Protocol protocol.Protocol = protocol.Named(ID)

// AccountType identifies the key scheme an account uses. Values match the
// wire encoding used by every wallet speaking this protocol.
type AccountType uint8

const (
	AccountTypeEd25519 AccountType = 1
	AccountTypeSr25519 AccountType = 2
	AccountTypeEcdsa   AccountType = 3
)

const (
	MethodGetAccount     = "get_account"
	MethodSignTransaction = "sign_transaction"
)

// GetAccountRequest asks for an account of the given type.
type GetAccountRequest struct {
	AccountType AccountType `json:"account_type" cbor:"account_type"`
}

// GetAccountResponse carries the account's public key (32 or 33 bytes
// depending on AccountType) and the derivation path or id that identifies
// it for later signing requests.
type GetAccountResponse struct {
	PublicKey []byte `json:"public_key" cbor:"public_key"`
	Path      string `json:"path" cbor:"path"`
}

// SignTransactionRequest asks the wallet to sign a SCALE-encoded extrinsic.
// ExtrinsicData is the extrinsic itself (with Extra); ExtrinsicMetadata and
// ExtrinsicTypes are the runtime metadata (V14) needed to decode and
// display it to the user before they approve the signature.
type SignTransactionRequest struct {
	AccountType        AccountType `json:"account_type" cbor:"account_type"`
	AccountPath        string      `json:"account_path" cbor:"account_path"`
	ExtrinsicData      []byte      `json:"extrinsic_data" cbor:"extrinsic_data"`
	ExtrinsicMetadata  []byte      `json:"extrinsic_metadata" cbor:"extrinsic_metadata"`
	ExtrinsicTypes     []byte      `json:"extrinsic_types" cbor:"extrinsic_types"`
}

// SignTransactionResponse carries the signature (64 or 65 bytes depending
// on AccountType).
type SignTransactionResponse struct {
	Signature []byte `json:"signature" cbor:"signature"`
}
