// Package errors defines custom error types for the quantum-keycheck validator.
// Errors carry enough context to tell a mismatched pair from a broken provider
// without ever including key material in the message.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for validation
var (
	// ErrKeyMismatch indicates the derived shared secrets differ, so the
	// public and secret key are not a pair
	ErrKeyMismatch = errors.New("keycheck: public and secret key do not form a pair")

	// ErrNilProvider indicates validation was attempted without a KEM provider
	ErrNilProvider = errors.New("keycheck: nil provider")

	// ErrSelfTestFailed indicates a provider failed its known-pair self-test
	ErrSelfTestFailed = errors.New("keycheck: self-test failed")
)

// Sentinel errors for KEM providers
var (
	// ErrUnsupportedScheme indicates no provider is registered under a name
	ErrUnsupportedScheme = errors.New("kem: unsupported scheme")

	// ErrInvalidPublicKey indicates a public key has the wrong size or encoding
	ErrInvalidPublicKey = errors.New("kem: invalid public key")

	// ErrInvalidSecretKey indicates a secret key has the wrong size or encoding
	ErrInvalidSecretKey = errors.New("kem: invalid secret key")

	// ErrInvalidCiphertext indicates a ciphertext has the wrong size
	ErrInvalidCiphertext = errors.New("kem: invalid ciphertext")

	// ErrInvalidSeed indicates a derivation seed has the wrong size
	ErrInvalidSeed = errors.New("kem: invalid seed")
)

// Sentinel errors for key loading
var (
	// ErrInvalidEncoding indicates key data could not be decoded
	ErrInvalidEncoding = errors.New("keyfile: invalid encoding")

	// ErrKeyFileTooLarge indicates a key file exceeds the read limit
	ErrKeyFileTooLarge = errors.New("keyfile: file too large")

	// ErrInvalidManifest indicates a batch manifest failed validation
	ErrInvalidManifest = errors.New("keyfile: invalid manifest")
)

// ProviderError wraps a failure of the KEM provider's encapsulate or
// decapsulate step. It is never returned for a mismatched pair.
type ProviderError struct {
	Scheme string // Scheme name reported by the provider
	Op     string // "encapsulate" or "decapsulate"
	Err    error  // Underlying error
}

func (e *ProviderError) Error() string {
	if e.Scheme == "" {
		return fmt.Sprintf("provider %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("provider %s %s: %v", e.Scheme, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a new ProviderError
func NewProviderError(scheme, op string, err error) *ProviderError {
	return &ProviderError{Scheme: scheme, Op: op, Err: err}
}

// SizeError reports an input whose length does not match the scheme. It
// unwraps to one of the ErrInvalid* sentinels.
type SizeError struct {
	Kind error // ErrInvalidPublicKey, ErrInvalidSecretKey, ...
	Got  int
	Want int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("%v: got %d bytes, want %d", e.Kind, e.Got, e.Want)
}

func (e *SizeError) Unwrap() error {
	return e.Kind
}

// CheckSize returns a *SizeError if len(b) != want.
func CheckSize(kind error, b []byte, want int) error {
	if len(b) != want {
		return &SizeError{Kind: kind, Got: len(b), Want: want}
	}
	return nil
}
