// Package quantumkeycheck checks that a post-quantum KEM public key and
// secret key form a pair.
//
// The check is a pairwise round trip: encapsulate against the public key,
// decapsulate the ciphertext with the secret key and compare the two shared
// secrets in constant time. Equal secrets mean the keys belong together.
// Different secrets mean they do not, which is reported as a mismatch and
// never as a provider failure.
//
// # Quick Start
//
// For a single pair with the default scheme (Kyber1024):
//
//	import (
//		"github.com/sara-star-quant/quantum-keycheck/pkg/kem"
//		"github.com/sara-star-quant/quantum-keycheck/pkg/keycheck"
//	)
//
//	err := keycheck.Validate(kem.Default(), publicKey, secretKey)
//	switch {
//	case err == nil:
//		// keys form a pair
//	case errors.Is(err, keycheck.ErrKeyMismatch):
//		// keys belong to different pairs
//	default:
//		// *keycheck.ProviderError: the KEM rejected an input
//	}
//
// With tracing, metrics and structured logging:
//
//	v := keycheck.New(p,
//		keycheck.WithTracer(metrics.Tracer(tp)),
//		keycheck.WithCollector(metrics.NewCollector(nil)),
//		keycheck.WithLogger(logger))
//	results := v.ValidateBatch(ctx, pairs, 0)
//
// # Package Structure
//
//   - pkg/keycheck: Validate, the instrumented Validator, batches and self-tests
//   - pkg/kem: KEM provider interface and the scheme registry (circl, mlkem768)
//   - pkg/keyfile: Key file decoding (raw, hex, base64, PEM) and batch manifests
//   - pkg/crypto: Constant-time comparison, zeroization, SHAKE-256 helpers
//   - pkg/metrics: Counters, latency histogram, Prometheus text, zap and otel helpers
//   - pkg/version: Build version information
//   - internal/config: CLI configuration (file, environment, flags)
//   - internal/constants: Scheme names, sizes and limits
//   - internal/errors: Sentinel and typed errors
//   - cmd/keycheck: Command-line tool
//
// # Command Line
//
//	keycheck validate --public kyber.pub --secret kyber.sec
//	keycheck batch pairs.yaml --concurrency 8 --metrics-file keycheck.prom
//	keycheck selftest
//	keycheck schemes
//	keycheck bench -n 500
//
// Exit status is 0 for a valid pair, 1 for a mismatch and 2 for a provider
// or input error.
//
// # Testing
//
//	go test ./...                                          # All tests
//	go test -fuzz=FuzzValidateSecretKey ./test/fuzz/       # Fuzz tests
//	go test -bench=. ./test/benchmark                      # Benchmarks
//
// # References
//
//   - NIST FIPS 203: Module-Lattice-Based Key-Encapsulation Mechanism Standard
//   - CRYSTALS-Kyber Round 3 specification
//   - NIST FIPS 202: SHA-3 Standard (SHAKE-256)
package quantumkeycheck
