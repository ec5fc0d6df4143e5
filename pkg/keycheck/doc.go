// Package keycheck verifies that a post-quantum KEM public key and secret
// key form a pair.
//
// The check is a round trip through the scheme itself: encapsulate against
// the public key, decapsulate the resulting ciphertext with the secret key,
// and compare the two shared secrets in constant time. A correctly generated
// pair always yields identical secrets; anything else (a key from another
// pair, a corrupted byte, a substituted half) yields ErrKeyMismatch.
//
// # Basic Usage
//
//	p, err := kem.Lookup("Kyber1024")
//	if err != nil {
//		return err
//	}
//	switch err := keycheck.Validate(p, publicKey, secretKey); {
//	case err == nil:
//		// pair is consistent
//	case errors.Is(err, keycheck.ErrKeyMismatch):
//		// keys do not belong together
//	default:
//		// *keycheck.ProviderError: malformed input or provider failure
//	}
//
// # Observed Validation
//
// Validator wraps Validate with an OpenTelemetry span, outcome counters and
// debug logging, and validates many pairs concurrently:
//
//	v := keycheck.New(p,
//		keycheck.WithLogger(logger),
//		keycheck.WithCollector(collector),
//	)
//	results := v.ValidateBatch(ctx, pairs, 8)
//
// # Self-Tests
//
// SelfTest derives two key pairs from fixed seeds and checks that matching
// halves validate, crossed halves mismatch and a truncated secret key is
// rejected by the provider. In FIPS builds RunSelfTests panics on failure.
//
// # Security Considerations
//
// Shared secrets and the ciphertext are zeroized before Validate returns.
// Key bytes are never logged or placed in errors; callers that need to refer
// to a key should use keyfile.Fingerprint.
package keycheck
