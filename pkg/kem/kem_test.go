package kem_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	circlmlkem768 "github.com/cloudflare/circl/kem/mlkem/mlkem768"

	"github.com/sara-star-quant/quantum-keycheck/internal/constants"
	qerrors "github.com/sara-star-quant/quantum-keycheck/internal/errors"
	"github.com/sara-star-quant/quantum-keycheck/pkg/crypto"
	"github.com/sara-star-quant/quantum-keycheck/pkg/kem"
	"github.com/sara-star-quant/quantum-keycheck/pkg/kem/kemtest"
)

func TestRegisteredProvidersConform(t *testing.T) {
	for _, name := range kem.Names() {
		t.Run(name, func(t *testing.T) {
			p, err := kem.Lookup(name)
			require.NoError(t, err)
			assert.Equal(t, name, p.Name())
			kemtest.TestProvider(t, p)
		})
	}
}

func TestSizesMatchInfo(t *testing.T) {
	for _, name := range kem.Names() {
		t.Run(name, func(t *testing.T) {
			p, err := kem.Lookup(name)
			require.NoError(t, err)
			info, err := kem.Describe(name)
			require.NoError(t, err)

			pk, sk := kemtest.Generate(t, p)
			assert.Len(t, pk, info.PublicKeySize)
			assert.Len(t, sk, info.SecretKeySize)

			ss, ct, err := p.Encapsulate(pk)
			require.NoError(t, err)
			assert.Len(t, ct, info.CiphertextSize)
			assert.Len(t, ss, info.SharedSecretSize)
		})
	}
}

func TestInfoConstants(t *testing.T) {
	if crypto.FIPSMode() {
		t.Skip("Kyber1024 is not available in FIPS mode")
	}
	tests := []struct {
		name       string
		pk, sk, ct int
	}{
		{constants.SchemeKyber1024, constants.KEM1024PublicKeySize, constants.KEM1024SecretKeySize, constants.KEM1024CiphertextSize},
		{constants.SchemeMLKEM1024, constants.KEM1024PublicKeySize, constants.KEM1024SecretKeySize, constants.KEM1024CiphertextSize},
		{constants.SchemeKyber768, constants.KEM768PublicKeySize, constants.KEM768SecretKeySize, constants.KEM768CiphertextSize},
		{constants.SchemeMLKEM768, constants.KEM768PublicKeySize, constants.KEM768SecretKeySize, constants.KEM768CiphertextSize},
		{constants.SchemeKyber512, constants.KEM512PublicKeySize, constants.KEM512SecretKeySize, constants.KEM512CiphertextSize},
		{constants.SchemeMLKEM512, constants.KEM512PublicKeySize, constants.KEM512SecretKeySize, constants.KEM512CiphertextSize},
		{constants.SchemeMLKEM768Seed, constants.KEM768PublicKeySize, constants.MLKEMSeedSize, constants.KEM768CiphertextSize},
	}
	for _, tt := range tests {
		info, err := kem.Describe(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.pk, info.PublicKeySize, tt.name)
		assert.Equal(t, tt.sk, info.SecretKeySize, tt.name)
		assert.Equal(t, tt.ct, info.CiphertextSize, tt.name)
		assert.Equal(t, constants.SharedSecretSize, info.SharedSecretSize, tt.name)
		assert.Equal(t, strings.HasPrefix(tt.name, "ML-KEM"), info.FIPSApproved, tt.name)
	}
}

func TestLookup(t *testing.T) {
	t.Run("CaseInsensitive", func(t *testing.T) {
		p, err := kem.Lookup("ml-kem-768")
		require.NoError(t, err)
		assert.Equal(t, constants.SchemeMLKEM768, p.Name())
	})

	t.Run("EmptySelectsDefault", func(t *testing.T) {
		if crypto.FIPSMode() {
			t.Skip("default scheme differs in FIPS mode")
		}
		p, err := kem.Lookup("")
		require.NoError(t, err)
		assert.Equal(t, constants.DefaultScheme, p.Name())
		assert.Equal(t, constants.DefaultScheme, kem.Default().Name())
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := kem.Lookup("Kyber9000")
		require.ErrorIs(t, err, qerrors.ErrUnsupportedScheme)
		assert.Contains(t, err.Error(), "Kyber9000")

		_, err = kem.Describe("Kyber9000")
		require.ErrorIs(t, err, qerrors.ErrUnsupportedScheme)
	})

	t.Run("CirclFallback", func(t *testing.T) {
		if crypto.FIPSMode() {
			t.Skip("hybrid schemes are not available in FIPS mode")
		}
		p, err := kem.Lookup("Kyber768-X25519")
		require.NoError(t, err)
		assert.Equal(t, "Kyber768-X25519", p.Name())
		kemtest.TestProvider(t, p)
	})
}

func TestNamesSorted(t *testing.T) {
	names := kem.Names()
	require.NotEmpty(t, names)
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
	if !crypto.FIPSMode() {
		assert.Contains(t, names, constants.DefaultScheme)
		assert.Contains(t, names, constants.SchemeXWing)
	}
	assert.Contains(t, names, constants.SchemeMLKEM768Seed)
}

func TestSizeErrors(t *testing.T) {
	for _, name := range kem.Names() {
		t.Run(name, func(t *testing.T) {
			p, err := kem.Lookup(name)
			require.NoError(t, err)
			pk, sk := kemtest.Generate(t, p)

			_, _, err = p.Encapsulate(append(bytes.Clone(pk), 0))
			require.ErrorIs(t, err, qerrors.ErrInvalidPublicKey)

			_, ct, err := p.Encapsulate(pk)
			require.NoError(t, err)

			_, err = p.Decapsulate(ct, sk[:1])
			require.ErrorIs(t, err, qerrors.ErrInvalidSecretKey)
			var serr *qerrors.SizeError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, 1, serr.Got)
			assert.Equal(t, len(sk), serr.Want)

			_, err = p.Decapsulate(nil, sk)
			require.ErrorIs(t, err, qerrors.ErrInvalidCiphertext)
		})
	}
}

func TestDeriveKeyPair(t *testing.T) {
	for _, name := range kem.Names() {
		t.Run(name, func(t *testing.T) {
			p, err := kem.Lookup(name)
			require.NoError(t, err)
			d, ok := p.(kem.Deriver)
			require.True(t, ok)

			seed := bytes.Repeat([]byte{0x42}, d.SeedSize())
			pk1, sk1, err := d.DeriveKeyPair(seed)
			require.NoError(t, err)
			pk2, sk2, err := d.DeriveKeyPair(seed)
			require.NoError(t, err)
			assert.Equal(t, pk1, pk2)
			assert.Equal(t, sk1, sk2)

			_, _, err = d.DeriveKeyPair(seed[1:])
			require.ErrorIs(t, err, qerrors.ErrInvalidSeed)
		})
	}
}

// TestSeedProviderInterop checks that keys from the seed-form provider work
// with circl's ML-KEM-768 and vice versa on the encapsulation side.
func TestSeedProviderInterop(t *testing.T) {
	seedProvider := kem.NewSeedProvider()
	pk, sk := kemtest.Generate(t, seedProvider)

	scheme := circlmlkem768.Scheme()
	pub, err := scheme.UnmarshalBinaryPublicKey(pk)
	require.NoError(t, err)
	ct, ss1, err := scheme.Encapsulate(pub)
	require.NoError(t, err)

	ss2, err := seedProvider.Decapsulate(ct, sk)
	require.NoError(t, err)
	assert.Equal(t, ss1, ss2)
}

func TestSeedProviderRejectsUnreducedKey(t *testing.T) {
	// 0xFF bytes encode coefficients of 4095 > q, which FIPS 203 forbids.
	pk := bytes.Repeat([]byte{0xFF}, constants.KEM768PublicKeySize)
	_, _, err := kem.NewSeedProvider().Encapsulate(pk)
	require.ErrorIs(t, err, qerrors.ErrInvalidPublicKey)
}

func TestCirclProviderName(t *testing.T) {
	p := kem.NewCirclProvider("", circlmlkem768.Scheme())
	assert.Equal(t, "ML-KEM-768", p.Name())
	assert.Equal(t, "ML-KEM-768", p.Scheme().Name())

	named := kem.NewCirclProvider("custom", circlmlkem768.Scheme())
	assert.Equal(t, "custom", named.Name())
}
