package kem

// Encapsulator produces a shared secret and a ciphertext against an encoded
// public key. Each call draws fresh randomness.
type Encapsulator interface {
	Encapsulate(pk []byte) (ss, ct []byte, err error)
}

// Decapsulator recovers the shared secret from a ciphertext with an encoded
// secret key. For a fixed (ct, sk) the result is deterministic.
type Decapsulator interface {
	Decapsulate(ct, sk []byte) (ss []byte, err error)
}

// Provider is the capability the validator consumes.
type Provider interface {
	// Name returns the scheme name the provider is registered under.
	Name() string
	Encapsulator
	Decapsulator
}

// Generator creates fresh key pairs in encoded form.
type Generator interface {
	GenerateKeyPair() (pk, sk []byte, err error)
}

// Deriver creates key pairs deterministically from a seed.
type Deriver interface {
	SeedSize() int
	DeriveKeyPair(seed []byte) (pk, sk []byte, err error)
}

// Info describes the encoded sizes of a scheme.
type Info struct {
	Name             string `json:"name" yaml:"name"`
	PublicKeySize    int    `json:"public_key_size" yaml:"public_key_size"`
	SecretKeySize    int    `json:"secret_key_size" yaml:"secret_key_size"`
	CiphertextSize   int    `json:"ciphertext_size" yaml:"ciphertext_size"`
	SharedSecretSize int    `json:"shared_secret_size" yaml:"shared_secret_size"`
	FIPSApproved     bool   `json:"fips_approved" yaml:"fips_approved"`
}

// Describer is implemented by providers that can report their sizes.
type Describer interface {
	Info() Info
}
