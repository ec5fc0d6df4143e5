package keyfile

import (
	"encoding/hex"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qerrors "github.com/sara-star-quant/quantum-keycheck/internal/errors"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keys/a.pub", []byte(hex.EncodeToString([]byte("public-a"))))
	writeFile(t, dir, "keys/a.key", []byte(hex.EncodeToString([]byte("secret-a"))))
	abs := writeFile(t, t.TempDir(), "b.key", []byte(hex.EncodeToString([]byte("secret-b"))))

	path := writeFile(t, dir, "pairs.yaml", []byte(`
scheme: Kyber1024
encoding: HEX
pairs:
  - name: a
    public: keys/a.pub
    secret: keys/a.key
  - name: b
    public: keys/a.pub
    secret: `+abs+`
`))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "Kyber1024", m.Scheme)
	assert.Equal(t, EncodingHex, m.Encoding)
	require.Len(t, m.Pairs, 2)

	assert.Equal(t, filepath.Join(dir, "keys/a.pub"), m.Path("keys/a.pub"))
	assert.Equal(t, abs, m.Path(abs))

	pk, sk, err := m.LoadKeys(m.Pairs[0])
	require.NoError(t, err)
	assert.Equal(t, []byte("public-a"), pk)
	assert.Equal(t, []byte("secret-a"), sk)

	_, sk, err = m.LoadKeys(m.Pairs[1])
	require.NoError(t, err)
	assert.Equal(t, []byte("secret-b"), sk)
}

func TestManifestDefaults(t *testing.T) {
	m, err := ParseManifest([]byte("pairs:\n  - {name: x, public: x.pub, secret: x.key}\n"))
	require.NoError(t, err)
	assert.Equal(t, EncodingAuto, m.Encoding)
	assert.Empty(t, m.Scheme)
	assert.Equal(t, "x.pub", m.Path("x.pub"))
}

func TestManifestLoadKeysMissingFile(t *testing.T) {
	m, err := ParseManifest([]byte("pairs:\n  - {name: gone, public: /nonexistent/x.pub, secret: /nonexistent/x.key}\n"))
	require.NoError(t, err)

	_, _, err = m.LoadKeys(m.Pairs[0])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pair gone public key")
}

func TestManifestValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{"no pairs", "scheme: Kyber1024\n", "Pairs is required"},
		{"empty pairs", "pairs: []\n", "Pairs"},
		{"missing name", "pairs:\n  - {public: a, secret: b}\n", "Pairs[0].Name is required"},
		{"missing secret", "pairs:\n  - {name: a, public: a}\n", "Pairs[0].Secret is required"},
		{"duplicate names", "pairs:\n  - {name: a, public: a, secret: b}\n  - {name: a, public: c, secret: d}\n", "unique"},
		{"bad encoding", "encoding: der\npairs:\n  - {name: a, public: a, secret: b}\n", "Encoding must be one of"},
		{"unknown field", "pairz: []\n", "pairz"},
		{"not yaml", "pairs: [\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.yaml))
			require.ErrorIs(t, err, qerrors.ErrInvalidManifest)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoadManifestMissing(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
