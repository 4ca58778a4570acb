package substrate_test

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"tesseract/errs"
	"tesseract/protocols/substrate"
)

// walletFixture is a minimal test wallet: it knows one account per
// supported AccountType at a single fixed derivation path, and rejects
// anything else, mirroring the reference wallet's account-type gating and
// fixed "//1" path. Sr25519 itself has no representation anywhere in this
// module's dependency stack, so Ed25519 stands in for it (see
// SPEC_FULL.md §D.4); Ecdsa is backed by btcec, the secp256k1
// implementation already present in the retrieval pack.
type walletFixture struct {
	ed25519Public  ed25519.PublicKey
	ed25519Private ed25519.PrivateKey
	ecdsaPrivate   *btcec.PrivateKey
}

const fixturePath = "//1"

func newWalletFixture() *walletFixture {
	public, private, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	ecdsaKey, err := btcec.NewPrivateKey()
	if err != nil {
		panic(err)
	}
	return &walletFixture{ed25519Public: public, ed25519Private: private, ecdsaPrivate: ecdsaKey}
}

func (w *walletFixture) GetAccount(ctx context.Context, accountType substrate.AccountType) (substrate.GetAccountResponse, error) {
	switch accountType {
	case substrate.AccountTypeSr25519:
		return substrate.GetAccountResponse{PublicKey: w.ed25519Public, Path: fixturePath}, nil
	case substrate.AccountTypeEcdsa:
		return substrate.GetAccountResponse{PublicKey: w.ecdsaPrivate.PubKey().SerializeCompressed(), Path: fixturePath}, nil
	default:
		return substrate.GetAccountResponse{}, errs.Described(errs.KindWeird, "unsupported signature type")
	}
}

func (w *walletFixture) SignTransaction(ctx context.Context, accountType substrate.AccountType, accountPath string, extrinsicData, extrinsicMetadata, extrinsicTypes []byte) ([]byte, error) {
	if accountPath != fixturePath {
		return nil, errs.Described(errs.KindWeird, "unknown account")
	}
	switch accountType {
	case substrate.AccountTypeSr25519:
		return ed25519.Sign(w.ed25519Private, extrinsicData), nil
	case substrate.AccountTypeEcdsa:
		digest := sha256.Sum256(extrinsicData)
		sig := ecdsa.Sign(w.ecdsaPrivate, digest[:])
		return sig.Serialize(), nil
	default:
		return nil, errs.Described(errs.KindWeird, "unsupported signature type")
	}
}
