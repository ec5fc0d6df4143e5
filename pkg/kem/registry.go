package kem

import (
	"fmt"
	"sort"
	"strings"

	circlkem "github.com/cloudflare/circl/kem"
	"github.com/cloudflare/circl/kem/hybrid"
	"github.com/cloudflare/circl/kem/kyber/kyber1024"
	"github.com/cloudflare/circl/kem/kyber/kyber512"
	"github.com/cloudflare/circl/kem/kyber/kyber768"
	"github.com/cloudflare/circl/kem/mlkem/mlkem1024"
	"github.com/cloudflare/circl/kem/mlkem/mlkem512"
	"github.com/cloudflare/circl/kem/mlkem/mlkem768"
	"github.com/cloudflare/circl/kem/schemes"
	"github.com/cloudflare/circl/kem/xwing"

	"github.com/sara-star-quant/quantum-keycheck/internal/constants"
	qerrors "github.com/sara-star-quant/quantum-keycheck/internal/errors"
	"github.com/sara-star-quant/quantum-keycheck/pkg/crypto"
)

// registered holds the providers known by name. Keys are lower-cased.
var registered = func() map[string]Provider {
	m := make(map[string]Provider)
	add := func(p Provider) { m[strings.ToLower(p.Name())] = p }

	circl := map[string]circlkem.Scheme{
		constants.SchemeKyber512:       kyber512.Scheme(),
		constants.SchemeKyber768:       kyber768.Scheme(),
		constants.SchemeKyber1024:      kyber1024.Scheme(),
		constants.SchemeMLKEM512:       mlkem512.Scheme(),
		constants.SchemeMLKEM768:       mlkem768.Scheme(),
		constants.SchemeMLKEM1024:      mlkem1024.Scheme(),
		constants.SchemeX25519MLKEM768: hybrid.X25519MLKEM768(),
		constants.SchemeXWing:          xwing.Scheme(),
	}
	for name, s := range circl {
		add(NewCirclProvider(name, s))
	}
	add(NewSeedProvider())
	return m
}()

// fipsApproved lists the schemes resolvable in FIPS mode.
var fipsApproved = map[string]bool{
	strings.ToLower(constants.SchemeMLKEM512):     true,
	strings.ToLower(constants.SchemeMLKEM768):     true,
	strings.ToLower(constants.SchemeMLKEM1024):    true,
	strings.ToLower(constants.SchemeMLKEM768Seed): true,
}

// Lookup returns the provider registered under name, case-insensitively.
// Names not registered here are resolved through circl's scheme list, so
// e.g. "Kyber768-X25519" also works. An empty name selects DefaultScheme.
func Lookup(name string) (Provider, error) {
	if name == "" {
		name = constants.DefaultScheme
	}
	key := strings.ToLower(name)

	if crypto.FIPSMode() && !fipsApproved[key] {
		return nil, fmt.Errorf("%w: %s is not FIPS 203 approved", qerrors.ErrUnsupportedScheme, name)
	}

	if p, ok := registered[key]; ok {
		return p, nil
	}
	if s := schemes.ByName(name); s != nil {
		return NewCirclProvider("", s), nil
	}
	return nil, fmt.Errorf("%w: %q", qerrors.ErrUnsupportedScheme, name)
}

// Default returns the provider for DefaultScheme, or the strongest ML-KEM
// parameter set in FIPS mode.
func Default() Provider {
	name := constants.DefaultScheme
	if crypto.FIPSMode() {
		name = constants.SchemeMLKEM1024
	}
	p, err := Lookup(name)
	if err != nil {
		panic("kem: default scheme not registered: " + err.Error())
	}
	return p
}

// Names returns the registered scheme names available in this build, sorted.
func Names() []string {
	names := make([]string, 0, len(registered))
	for key, p := range registered {
		if crypto.FIPSMode() && !fipsApproved[key] {
			continue
		}
		names = append(names, p.Name())
	}
	sort.Strings(names)
	return names
}

// Describe returns size information for the named scheme.
func Describe(name string) (Info, error) {
	p, err := Lookup(name)
	if err != nil {
		return Info{}, err
	}
	d, ok := p.(Describer)
	if !ok {
		return Info{Name: p.Name()}, nil
	}
	return d.Info(), nil
}
