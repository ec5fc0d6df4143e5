//go:build fips

package crypto

// FIPSMode reports whether the binary was built in FIPS mode.
// When true, only FIPS 203 ML-KEM schemes are resolvable and a failing
// self-test is fatal.
func FIPSMode() bool { return true }
