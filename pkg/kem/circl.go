package kem

import (
	"fmt"
	"strings"

	circlkem "github.com/cloudflare/circl/kem"

	qerrors "github.com/sara-star-quant/quantum-keycheck/internal/errors"
)

// CirclProvider adapts a circl kem.Scheme to Provider, Generator and Deriver.
// It is stateless and safe for concurrent use.
type CirclProvider struct {
	name   string
	scheme circlkem.Scheme
}

// NewCirclProvider wraps scheme. If name is empty the scheme's own name is used.
func NewCirclProvider(name string, scheme circlkem.Scheme) *CirclProvider {
	if name == "" {
		name = scheme.Name()
	}
	return &CirclProvider{name: name, scheme: scheme}
}

// Name returns the registered scheme name.
func (p *CirclProvider) Name() string { return p.name }

// Scheme returns the underlying circl scheme.
func (p *CirclProvider) Scheme() circlkem.Scheme { return p.scheme }

// Encapsulate unpacks pk and encapsulates a fresh shared secret against it.
func (p *CirclProvider) Encapsulate(pk []byte) (ss, ct []byte, err error) {
	if err := qerrors.CheckSize(qerrors.ErrInvalidPublicKey, pk, p.scheme.PublicKeySize()); err != nil {
		return nil, nil, err
	}

	pub, err := p.scheme.UnmarshalBinaryPublicKey(pk)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", qerrors.ErrInvalidPublicKey, err)
	}

	// circl orders the results (ct, ss); Provider orders them (ss, ct).
	ct, ss, err = p.scheme.Encapsulate(pub)
	if err != nil {
		return nil, nil, err
	}
	return ss, ct, nil
}

// Decapsulate unpacks sk and recovers the shared secret encapsulated in ct.
//
// Kyber and ML-KEM use implicit rejection: a ciphertext that does not
// re-encrypt under sk yields a pseudorandom secret rather than an error, so a
// mismatched pair surfaces as differing secrets, not as a failure here.
func (p *CirclProvider) Decapsulate(ct, sk []byte) ([]byte, error) {
	if err := qerrors.CheckSize(qerrors.ErrInvalidSecretKey, sk, p.scheme.PrivateKeySize()); err != nil {
		return nil, err
	}
	if err := qerrors.CheckSize(qerrors.ErrInvalidCiphertext, ct, p.scheme.CiphertextSize()); err != nil {
		return nil, err
	}

	priv, err := p.scheme.UnmarshalBinaryPrivateKey(sk)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", qerrors.ErrInvalidSecretKey, err)
	}
	return p.scheme.Decapsulate(priv, ct)
}

// GenerateKeyPair generates a fresh key pair using the system CSPRNG.
func (p *CirclProvider) GenerateKeyPair() (pk, sk []byte, err error) {
	pub, priv, err := p.scheme.GenerateKeyPair()
	if err != nil {
		return nil, nil, err
	}
	return marshalPair(pub, priv)
}

// SeedSize returns the seed length DeriveKeyPair expects.
func (p *CirclProvider) SeedSize() int { return p.scheme.SeedSize() }

// DeriveKeyPair derives a key pair deterministically from seed.
func (p *CirclProvider) DeriveKeyPair(seed []byte) (pk, sk []byte, err error) {
	// circl panics on a wrong-sized seed.
	if err := qerrors.CheckSize(qerrors.ErrInvalidSeed, seed, p.scheme.SeedSize()); err != nil {
		return nil, nil, err
	}
	pub, priv := p.scheme.DeriveKeyPair(seed)
	return marshalPair(pub, priv)
}

// Info reports the scheme's encoded sizes.
func (p *CirclProvider) Info() Info {
	return Info{
		Name:             p.name,
		PublicKeySize:    p.scheme.PublicKeySize(),
		SecretKeySize:    p.scheme.PrivateKeySize(),
		CiphertextSize:   p.scheme.CiphertextSize(),
		SharedSecretSize: p.scheme.SharedKeySize(),
		FIPSApproved:     strings.HasPrefix(p.name, "ML-KEM-"),
	}
}

func marshalPair(pub circlkem.PublicKey, priv circlkem.PrivateKey) (pk, sk []byte, err error) {
	pk, err = pub.MarshalBinary()
	if err != nil {
		return nil, nil, err
	}
	sk, err = priv.MarshalBinary()
	if err != nil {
		return nil, nil, err
	}
	return pk, sk, nil
}
