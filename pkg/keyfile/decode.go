// Package keyfile turns key files and manifests into decoded key bytes for
// the validator. It only reads; nothing is ever written back.
package keyfile

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"encoding/pem"
	"fmt"
	"strings"

	qerrors "github.com/sara-star-quant/quantum-keycheck/internal/errors"
	"github.com/sara-star-quant/quantum-keycheck/pkg/crypto"
)

// Encoding names a key file encoding.
type Encoding string

const (
	EncodingAuto   Encoding = "auto"
	EncodingRaw    Encoding = "raw"
	EncodingHex    Encoding = "hex"
	EncodingBase64 Encoding = "base64"
	EncodingPEM    Encoding = "pem"
)

// Encodings lists the accepted encodings.
var Encodings = []Encoding{EncodingAuto, EncodingRaw, EncodingHex, EncodingBase64, EncodingPEM}

// ParseEncoding parses an encoding name. The empty string is EncodingAuto.
func ParseEncoding(s string) (Encoding, error) {
	e := Encoding(strings.ToLower(strings.TrimSpace(s)))
	if e == "" {
		return EncodingAuto, nil
	}
	for _, known := range Encodings {
		if e == known {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: unknown encoding %q", qerrors.ErrInvalidEncoding, s)
}

var base64Encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// Decode returns the key bytes in data. Text encodings ignore surrounding
// and embedded whitespace. EncodingAuto tries a PEM block, then hex, then
// base64, and falls back to raw bytes.
//
// The result never aliases data except for EncodingRaw.
func Decode(data []byte, enc Encoding) ([]byte, error) {
	switch enc {
	case EncodingRaw:
		return data, nil
	case EncodingHex:
		return decodeHex(data)
	case EncodingBase64:
		return decodeBase64(data)
	case EncodingPEM:
		return decodePEM(data)
	case EncodingAuto, "":
		return decodeAuto(data), nil
	default:
		return nil, fmt.Errorf("%w: unknown encoding %q", qerrors.ErrInvalidEncoding, enc)
	}
}

func decodeAuto(data []byte) []byte {
	if bytes.Contains(data, []byte("-----BEGIN ")) {
		if key, err := decodePEM(data); err == nil {
			return key
		}
	}
	if looksLikeHex(data) {
		if key, err := decodeHex(data); err == nil {
			return key
		}
	}
	if key, err := decodeBase64(data); err == nil {
		return key
	}
	return data
}

// compactText copies data without ASCII whitespace into a fresh buffer. Key
// text never becomes a string, so the copy can be wiped after decoding.
func compactText(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for _, c := range data {
		if !isSpace(c) {
			out = append(out, c)
		}
	}
	return out
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func looksLikeHex(data []byte) bool {
	n := 0
	for _, c := range data {
		switch {
		case isSpace(c):
			continue
		case '0' <= c && c <= '9', 'a' <= c && c <= 'f', 'A' <= c && c <= 'F':
			n++
		default:
			return false
		}
	}
	return n > 0 && n%2 == 0
}

func decodeHex(data []byte) ([]byte, error) {
	text := compactText(data)
	defer crypto.Zeroize(text)

	digits := bytes.TrimPrefix(text, []byte("0x"))
	if len(digits) == 0 {
		return nil, fmt.Errorf("%w: hex: empty", qerrors.ErrInvalidEncoding)
	}
	key := make([]byte, hex.DecodedLen(len(digits)))
	n, err := hex.Decode(key, digits)
	if err != nil {
		crypto.Zeroize(key)
		return nil, fmt.Errorf("%w: hex: %v", qerrors.ErrInvalidEncoding, err)
	}
	return key[:n], nil
}

func decodeBase64(data []byte) ([]byte, error) {
	text := compactText(data)
	defer crypto.Zeroize(text)

	if len(text) == 0 {
		return nil, fmt.Errorf("%w: base64: empty", qerrors.ErrInvalidEncoding)
	}
	var firstErr error
	for _, enc := range base64Encodings {
		key := make([]byte, enc.DecodedLen(len(text)))
		n, err := enc.Decode(key, text)
		if err == nil {
			return key[:n], nil
		}
		crypto.Zeroize(key)
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, fmt.Errorf("%w: base64: %v", qerrors.ErrInvalidEncoding, firstErr)
}

func decodePEM(data []byte) ([]byte, error) {
	block, _ := pem.Decode(bytes.TrimSpace(data))
	if block == nil {
		return nil, fmt.Errorf("%w: pem: no PEM block found", qerrors.ErrInvalidEncoding)
	}
	if len(block.Bytes) == 0 {
		return nil, fmt.Errorf("%w: pem: empty %s block", qerrors.ErrInvalidEncoding, block.Type)
	}
	return block.Bytes, nil
}
