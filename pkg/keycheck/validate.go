package keycheck

import (
	qerrors "github.com/sara-star-quant/quantum-keycheck/internal/errors"
	"github.com/sara-star-quant/quantum-keycheck/pkg/crypto"
	"github.com/sara-star-quant/quantum-keycheck/pkg/kem"
)

// Validate reports whether pk and sk form a key pair under p.
//
// It encapsulates against pk, decapsulates the ciphertext with sk and
// compares the two shared secrets in constant time. The result is nil for a
// pair, ErrKeyMismatch when the secrets differ, and a *ProviderError when
// either step fails. pk and sk are only read.
//
// Validate holds no state and is safe for concurrent use with independent
// inputs.
func Validate(p kem.Provider, pk, sk []byte) error {
	if p == nil {
		return qerrors.NewProviderError("", OpEncapsulate, ErrNilProvider)
	}

	ss1, ct, err := p.Encapsulate(pk)
	if err != nil {
		return qerrors.NewProviderError(p.Name(), OpEncapsulate, err)
	}
	defer crypto.ZeroizeMultiple(ss1, ct)

	ss2, err := p.Decapsulate(ct, sk)
	if err != nil {
		return qerrors.NewProviderError(p.Name(), OpDecapsulate, err)
	}
	defer crypto.Zeroize(ss2)

	if !crypto.ConstantTimeCompare(ss1, ss2) {
		return ErrKeyMismatch
	}
	return nil
}
