// Package kemtest provides a controllable mock provider and a conformance
// suite for kem.Provider implementations.
package kemtest

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sara-star-quant/quantum-keycheck/pkg/kem"
)

// Mock is a Provider whose results are fixed by the test. Zero values give
// nil secrets and no errors.
type Mock struct {
	SchemeName string

	EncapSecret []byte
	Ciphertext  []byte
	EncapErr    error

	DecapSecret []byte
	DecapErr    error

	mu             sync.Mutex
	encapCalls     int
	decapCalls     int
	lastCiphertext []byte
}

var _ kem.Provider = (*Mock)(nil)

// Name returns SchemeName or "mock".
func (m *Mock) Name() string {
	if m.SchemeName == "" {
		return "mock"
	}
	return m.SchemeName
}

// Encapsulate returns copies of EncapSecret and Ciphertext, or EncapErr.
func (m *Mock) Encapsulate(pk []byte) (ss, ct []byte, err error) {
	m.mu.Lock()
	m.encapCalls++
	m.mu.Unlock()
	if m.EncapErr != nil {
		return nil, nil, m.EncapErr
	}
	return bytes.Clone(m.EncapSecret), bytes.Clone(m.Ciphertext), nil
}

// Decapsulate returns a copy of DecapSecret, or DecapErr.
func (m *Mock) Decapsulate(ct, sk []byte) ([]byte, error) {
	m.mu.Lock()
	m.decapCalls++
	m.lastCiphertext = bytes.Clone(ct)
	m.mu.Unlock()
	if m.DecapErr != nil {
		return nil, m.DecapErr
	}
	return bytes.Clone(m.DecapSecret), nil
}

// Calls returns how many times Encapsulate and Decapsulate ran.
func (m *Mock) Calls() (encap, decap int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.encapCalls, m.decapCalls
}

// LastCiphertext returns the ciphertext passed to the most recent Decapsulate.
func (m *Mock) LastCiphertext() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastCiphertext
}

// Generate returns a fresh key pair from a provider that can generate.
func Generate(t testing.TB, p kem.Provider) (pk, sk []byte) {
	t.Helper()
	g, ok := p.(kem.Generator)
	require.True(t, ok, "%s does not implement kem.Generator", p.Name())
	pk, sk, err := g.GenerateKeyPair()
	require.NoError(t, err)
	return pk, sk
}

// TestProvider checks that p honours the Provider contract: matching pairs
// agree, independent pairs disagree, and repeated encapsulations are fresh.
func TestProvider(t *testing.T, p kem.Provider) {
	t.Run("RoundTrip", func(t *testing.T) {
		pk, sk := Generate(t, p)
		ss1, ct, err := p.Encapsulate(pk)
		require.NoError(t, err)
		ss2, err := p.Decapsulate(ct, sk)
		require.NoError(t, err)
		require.NotEmpty(t, ss1)
		require.Equal(t, ss1, ss2)
	})
	t.Run("FreshEncapsulation", func(t *testing.T) {
		pk, _ := Generate(t, p)
		ss1, ct1, err := p.Encapsulate(pk)
		require.NoError(t, err)
		ss2, ct2, err := p.Encapsulate(pk)
		require.NoError(t, err)
		require.NotEqual(t, ct1, ct2)
		require.NotEqual(t, ss1, ss2)
	})
	t.Run("DecapsulationDeterministic", func(t *testing.T) {
		pk, sk := Generate(t, p)
		_, ct, err := p.Encapsulate(pk)
		require.NoError(t, err)
		a, err := p.Decapsulate(ct, sk)
		require.NoError(t, err)
		b, err := p.Decapsulate(ct, sk)
		require.NoError(t, err)
		require.Equal(t, a, b)
	})
	t.Run("IndependentPairsDisagree", func(t *testing.T) {
		pk1, _ := Generate(t, p)
		_, sk2 := Generate(t, p)
		ss1, ct, err := p.Encapsulate(pk1)
		require.NoError(t, err)
		ss2, err := p.Decapsulate(ct, sk2)
		require.NoError(t, err)
		require.NotEqual(t, ss1, ss2)
	})
	t.Run("TruncatedKeysFail", func(t *testing.T) {
		pk, sk := Generate(t, p)
		_, _, err := p.Encapsulate(pk[:len(pk)-1])
		require.Error(t, err)

		_, ct, err := p.Encapsulate(pk)
		require.NoError(t, err)
		_, err = p.Decapsulate(ct, sk[:len(sk)-1])
		require.Error(t, err)
		_, err = p.Decapsulate(ct[:len(ct)-1], sk)
		require.Error(t, err)
	})
}
