// Package kem supplies the KEM capability the key pair validator depends on.
//
// The validator only needs two operations, encapsulate and decapsulate, over
// keys in their encoded byte form. Provider captures exactly that, so the
// validator can be exercised against a mock as easily as against a real
// library. Generator and Deriver are optional capabilities used by tests,
// benchmarks and the self-test; the validator never calls them.
//
// # Providers
//
// Two adapters are included:
//
//   - CirclProvider wraps any github.com/cloudflare/circl kem.Scheme:
//     Kyber512/768/1024, ML-KEM-512/768/1024, X25519MLKEM768 and X-Wing are
//     registered by name, and any other circl scheme name resolves through
//     kem/schemes.
//   - SeedProvider wraps filippo.io/mlkem768, whose secret keys are the
//     64-byte "d || z" seed.
//
// # Example
//
//	p, err := kem.Lookup("Kyber1024")
//	if err != nil {
//		return err
//	}
//	ss, ct, err := p.Encapsulate(publicKey)
//	...
//	ss2, err := p.Decapsulate(ct, secretKey)
//
// In FIPS builds (-tags fips) only the ML-KEM schemes can be looked up.
package kem
