package crypto

import (
	"encoding/binary"
	"errors"

	"golang.org/x/crypto/sha3"
)

// errOutputLength is returned by ExpandSeed for a non-positive or oversized length.
var errOutputLength = errors.New("crypto: invalid output length")

// ExpandSeed derives outputLen bytes from a label using SHAKE-256:
//
//	output = SHAKE-256(len(domain) || domain || len(label) || label, outputLen)
//
// Length prefixes are 4-byte big-endian integers. The output is deterministic,
// which is what known-pair self-tests need; it is not a substitute for fresh
// randomness.
func ExpandSeed(domain, label string, outputLen int) ([]byte, error) {
	if outputLen <= 0 || outputLen > 1<<20 {
		return nil, errOutputLength
	}

	h := sha3.NewShake256()

	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(domain)))
	h.Write(lenBuf[:])
	h.Write([]byte(domain))

	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(label)))
	h.Write(lenBuf[:])
	h.Write([]byte(label))

	out := make([]byte, outputLen)
	_, _ = h.Read(out) // SHAKE256.Read never fails
	return out, nil
}

// Fingerprint returns the first n bytes of SHA3-256(data). It identifies key
// material in logs without revealing it.
func Fingerprint(data []byte, n int) []byte {
	sum := sha3.Sum256(data)
	if n <= 0 || n > len(sum) {
		n = len(sum)
	}
	out := make([]byte, n)
	copy(out, sum[:n])
	return out
}
