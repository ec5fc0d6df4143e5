//go:build !fips

package crypto

// FIPSMode reports whether the binary was built in FIPS mode.
// When false, every registered KEM scheme can be validated, including the
// pre-standard Kyber round-3 parameter sets and the hybrids.
func FIPSMode() bool { return false }
