// Package crypto provides the low-level helpers the key pair validator relies
// on: constant-time comparison, zeroization, SHA3-256 fingerprints and
// SHAKE-256 seed expansion.
//
// Randomness is drawn by the KEM providers themselves; nothing here reads
// the system CSPRNG.
package crypto

import "crypto/subtle"

// ConstantTimeCompare reports whether a and b are equal. The time taken
// depends only on the lengths, never on the contents, so a partially
// matching secret cannot be detected through timing.
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Zeroize overwrites b with zeros.
//
// Note: The Go runtime may have already copied the data. Callers that need
// stronger guarantees should rely on OS-level memory protection.
func Zeroize(b []byte) {
	clear(b)
}

// ZeroizeMultiple securely erases multiple byte slices.
func ZeroizeMultiple(slices ...[]byte) {
	for _, s := range slices {
		Zeroize(s)
	}
}

// IsZero reports, in constant time, whether every byte of b is zero.
func IsZero(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return subtle.ConstantTimeByteEq(acc, 0) == 1
}
