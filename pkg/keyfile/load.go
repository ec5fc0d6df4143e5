package keyfile

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/sara-star-quant/quantum-keycheck/internal/constants"
	qerrors "github.com/sara-star-quant/quantum-keycheck/internal/errors"
	"github.com/sara-star-quant/quantum-keycheck/pkg/crypto"
)

// Load reads and decodes a key file. Files larger than
// constants.MaxKeyFileSize are rejected with ErrKeyFileTooLarge.
func Load(path string, enc Encoding) ([]byte, error) {
	data, err := readLimited(path)
	if err != nil {
		return nil, err
	}

	key, err := Decode(data, enc)
	if err != nil {
		crypto.Zeroize(data)
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if enc != EncodingRaw && !aliases(key, data) {
		crypto.Zeroize(data)
	}
	return key, nil
}

func readLimited(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open key file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, constants.MaxKeyFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	if len(data) > constants.MaxKeyFileSize {
		crypto.Zeroize(data)
		return nil, fmt.Errorf("%s: %w (limit %d bytes)", path, qerrors.ErrKeyFileTooLarge, constants.MaxKeyFileSize)
	}
	return data, nil
}

// aliases reports whether key shares its backing array with data, which
// happens when auto-detection falls back to raw bytes.
func aliases(key, data []byte) bool {
	return len(key) > 0 && len(data) > 0 && &key[0] == &data[0]
}

// Fingerprint identifies a key in logs and output: the hex form of the
// first constants.FingerprintSize bytes of its SHA3-256 digest.
func Fingerprint(key []byte) string {
	return hex.EncodeToString(crypto.Fingerprint(key, constants.FingerprintSize))
}
