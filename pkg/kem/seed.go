package kem

import (
	"fmt"

	"filippo.io/mlkem768"

	"github.com/sara-star-quant/quantum-keycheck/internal/constants"
	qerrors "github.com/sara-star-quant/quantum-keycheck/internal/errors"
)

// SeedProvider implements ML-KEM-768 over filippo.io/mlkem768. Secret keys
// are the 64-byte "d || z" seed from which the decapsulation key is expanded,
// the form FIPS 203 recommends for storage.
type SeedProvider struct{}

// NewSeedProvider returns the ML-KEM-768 seed-form provider.
func NewSeedProvider() *SeedProvider { return &SeedProvider{} }

// Name returns the registered scheme name.
func (*SeedProvider) Name() string { return constants.SchemeMLKEM768Seed }

// Encapsulate encapsulates a fresh shared secret against the encoded
// encapsulation key. The key's coefficients are checked to be reduced.
func (*SeedProvider) Encapsulate(pk []byte) (ss, ct []byte, err error) {
	if err := qerrors.CheckSize(qerrors.ErrInvalidPublicKey, pk, mlkem768.EncapsulationKeySize); err != nil {
		return nil, nil, err
	}
	ct, ss, err = mlkem768.Encapsulate(pk)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", qerrors.ErrInvalidPublicKey, err)
	}
	return ss, ct, nil
}

// Decapsulate expands the seed and recovers the shared secret in ct.
func (*SeedProvider) Decapsulate(ct, sk []byte) ([]byte, error) {
	if err := qerrors.CheckSize(qerrors.ErrInvalidSecretKey, sk, mlkem768.SeedSize); err != nil {
		return nil, err
	}
	if err := qerrors.CheckSize(qerrors.ErrInvalidCiphertext, ct, mlkem768.CiphertextSize); err != nil {
		return nil, err
	}

	dk, err := mlkem768.NewKeyFromSeed(sk)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", qerrors.ErrInvalidSecretKey, err)
	}
	return mlkem768.Decapsulate(dk, ct)
}

// GenerateKeyPair generates a fresh decapsulation key and returns the
// encapsulation key with the seed.
func (*SeedProvider) GenerateKeyPair() (pk, sk []byte, err error) {
	dk, err := mlkem768.GenerateKey()
	if err != nil {
		return nil, nil, err
	}
	return dk.EncapsulationKey(), dk.Bytes(), nil
}

// SeedSize returns the seed length DeriveKeyPair expects.
func (*SeedProvider) SeedSize() int { return mlkem768.SeedSize }

// DeriveKeyPair treats seed as the secret key itself.
func (*SeedProvider) DeriveKeyPair(seed []byte) (pk, sk []byte, err error) {
	if err := qerrors.CheckSize(qerrors.ErrInvalidSeed, seed, mlkem768.SeedSize); err != nil {
		return nil, nil, err
	}
	dk, err := mlkem768.NewKeyFromSeed(seed)
	if err != nil {
		return nil, nil, err
	}
	return dk.EncapsulationKey(), dk.Bytes(), nil
}

// Info reports the scheme's encoded sizes.
func (p *SeedProvider) Info() Info {
	return Info{
		Name:             p.Name(),
		PublicKeySize:    mlkem768.EncapsulationKeySize,
		SecretKeySize:    mlkem768.SeedSize,
		CiphertextSize:   mlkem768.CiphertextSize,
		SharedSecretSize: mlkem768.SharedKeySize,
		FIPSApproved:     true,
	}
}
