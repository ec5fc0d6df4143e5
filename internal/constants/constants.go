// Package constants defines KEM parameter sizes and scheme identifiers for the
// quantum-keycheck key pair validator.
//
// Sizes are those of the encoded forms the providers accept. They are used to
// reject malformed input before any cryptographic work is attempted.
package constants

// Tool identification
const (
	// ToolName is used as the tracer, meter and logger name
	ToolName = "quantum-keycheck"

	// EnvPrefix is the prefix of environment variables read by the CLI
	EnvPrefix = "KEYCHECK"
)

// Scheme names as accepted by the provider registry.
const (
	SchemeKyber512       = "Kyber512"
	SchemeKyber768       = "Kyber768"
	SchemeKyber1024      = "Kyber1024"
	SchemeMLKEM512       = "ML-KEM-512"
	SchemeMLKEM768       = "ML-KEM-768"
	SchemeMLKEM1024      = "ML-KEM-1024"
	SchemeX25519MLKEM768 = "X25519MLKEM768"
	SchemeXWing          = "X-Wing"

	// SchemeMLKEM768Seed is ML-KEM-768 with secret keys in the 64-byte
	// "d || z" seed form.
	SchemeMLKEM768Seed = "ML-KEM-768-seed"

	// DefaultScheme is the parameter set used when none is configured.
	// Kyber1024 keeps compatibility with keys produced by the PQClean-based
	// tooling this validator was written for.
	DefaultScheme = SchemeKyber1024
)

// Kyber-1024 / ML-KEM-1024 parameters (NIST Category 5)
const (
	// KEM1024PublicKeySize is the size of a packed public key in bytes
	KEM1024PublicKeySize = 1568

	// KEM1024SecretKeySize is the size of a packed secret key in bytes
	KEM1024SecretKeySize = 3168

	// KEM1024CiphertextSize is the size of a ciphertext in bytes
	KEM1024CiphertextSize = 1568
)

// Kyber-768 / ML-KEM-768 parameters (NIST Category 3)
const (
	KEM768PublicKeySize  = 1184
	KEM768SecretKeySize  = 2400
	KEM768CiphertextSize = 1088

	// MLKEMSeedSize is the size of an ML-KEM decapsulation key in seed form
	MLKEMSeedSize = 64
)

// Kyber-512 / ML-KEM-512 parameters (NIST Category 1)
const (
	KEM512PublicKeySize  = 800
	KEM512SecretKeySize  = 1632
	KEM512CiphertextSize = 768
)

// SharedSecretSize is the shared secret size of every supported scheme.
const SharedSecretSize = 32

// ImplicitRejectionSize is the size of the trailing z value in a packed
// Kyber/ML-KEM secret key. It only feeds the shared secret of ciphertexts
// that fail re-encryption, so a pairwise round trip never reads it.
const ImplicitRejectionSize = 32

// Key file limits
const (
	// MaxKeyFileSize bounds how much is read from a single key file
	MaxKeyFileSize = 1 << 20

	// FingerprintSize is the number of SHA3-256 bytes shown as a key fingerprint
	FingerprintSize = 16
)

// Batch limits
const (
	// MaxConcurrency bounds the number of pairs validated in parallel
	MaxConcurrency = 1024
)

// Self-test seeds are fixed so results are reproducible across runs.
const (
	// SelfTestSeedLabelA and SelfTestSeedLabelB are expanded with SHAKE-256
	// to the seed size a scheme requires.
	SelfTestSeedLabelA = "quantum-keycheck/selftest/pair-a"
	SelfTestSeedLabelB = "quantum-keycheck/selftest/pair-b"
)

// Exit codes of the keycheck CLI.
const (
	ExitValid         = 0
	ExitMismatch      = 1
	ExitProviderError = 2
)
