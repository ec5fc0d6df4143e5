package keycheck

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sara-star-quant/quantum-keycheck/internal/constants"
	"github.com/sara-star-quant/quantum-keycheck/pkg/crypto"
	"github.com/sara-star-quant/quantum-keycheck/pkg/kem"
	"github.com/sara-star-quant/quantum-keycheck/pkg/metrics"
)

// SelfTestResult reports the checks SelfTest ran against one provider.
type SelfTestResult struct {
	Scheme string

	Passed          bool
	MatchingPassed  bool // both derived pairs validate
	CrossPassed     bool // swapped halves return ErrKeyMismatch
	TruncatedPassed bool // a short secret key returns *ProviderError

	Errors   []string
	Duration time.Duration
}

// Err returns nil if the self-test passed, otherwise an error wrapping
// ErrSelfTestFailed.
func (r *SelfTestResult) Err() error {
	if r.Passed {
		return nil
	}
	return fmt.Errorf("%w: %s: %s", ErrSelfTestFailed, r.Scheme, strings.Join(r.Errors, "; "))
}

func (r *SelfTestResult) fail(format string, args ...any) {
	r.Passed = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// SelfTest checks that p behaves like a KEM from the validator's point of
// view. It derives two key pairs from fixed seeds, so p must implement
// kem.Deriver, and verifies that:
//
//   - each pair validates and its shared secret is not all zeros
//   - pk of one pair with sk of the other returns ErrKeyMismatch
//   - a secret key one byte short returns a *ProviderError
func SelfTest(p kem.Provider) *SelfTestResult {
	start := time.Now()
	res := &SelfTestResult{Passed: true}
	defer func() { res.Duration = time.Since(start) }()

	if p == nil {
		res.fail("nil provider")
		return res
	}
	res.Scheme = p.Name()

	d, ok := p.(kem.Deriver)
	if !ok {
		res.fail("provider cannot derive key pairs from a seed")
		return res
	}

	pkA, skA, err := deriveSelfTestPair(d, constants.SelfTestSeedLabelA)
	if err != nil {
		res.fail("derive pair A: %v", err)
		return res
	}
	pkB, skB, err := deriveSelfTestPair(d, constants.SelfTestSeedLabelB)
	if err != nil {
		res.fail("derive pair B: %v", err)
		return res
	}
	defer crypto.ZeroizeMultiple(skA, skB)

	res.MatchingPassed = true
	for _, tc := range []struct {
		name   string
		pk, sk []byte
	}{{"A", pkA, skA}, {"B", pkB, skB}} {
		if err := Validate(p, tc.pk, tc.sk); err != nil {
			res.MatchingPassed = false
			res.fail("pair %s: %v", tc.name, err)
		}
		if err := checkNonZeroSecret(p, tc.pk); err != nil {
			res.MatchingPassed = false
			res.fail("pair %s: %v", tc.name, err)
		}
	}

	res.CrossPassed = true
	for _, tc := range []struct {
		name   string
		pk, sk []byte
	}{{"pkA/skB", pkA, skB}, {"pkB/skA", pkB, skA}} {
		if err := Validate(p, tc.pk, tc.sk); !errors.Is(err, ErrKeyMismatch) {
			res.CrossPassed = false
			res.fail("%s: want key mismatch, got %v", tc.name, err)
		}
	}

	var pe *ProviderError
	if err := Validate(p, pkA, skA[:len(skA)-1]); errors.As(err, &pe) {
		res.TruncatedPassed = true
	} else {
		res.fail("truncated secret key: want provider error, got %v", err)
	}

	return res
}

func deriveSelfTestPair(d kem.Deriver, label string) (pk, sk []byte, err error) {
	seed, err := crypto.ExpandSeed(constants.ToolName, label, d.SeedSize())
	if err != nil {
		return nil, nil, err
	}
	defer crypto.Zeroize(seed)
	return d.DeriveKeyPair(seed)
}

func checkNonZeroSecret(p kem.Provider, pk []byte) error {
	ss, ct, err := p.Encapsulate(pk)
	if err != nil {
		return err
	}
	defer crypto.ZeroizeMultiple(ss, ct)
	if crypto.IsZero(ss) {
		return errors.New("shared secret is all zeros")
	}
	return nil
}

// SelfTest runs SelfTest on the Validator's provider inside a span and
// records the result.
func (v *Validator) SelfTest(ctx context.Context) *SelfTestResult {
	ctx, end := metrics.StartSpan(ctx, v.tracer, metrics.SpanSelfTest,
		metrics.AttrScheme.String(v.Scheme()))

	res := SelfTest(v.provider)
	if v.collector != nil {
		v.collector.RecordSelfTest(res.Scheme, res.Passed)
	}

	log := v.log.Ctx(ctx)
	if res.Passed {
		log.Debug("self-test passed", zap.String("scheme", res.Scheme), zap.Duration("elapsed", res.Duration))
	} else {
		log.Error("self-test failed", zap.String("scheme", res.Scheme), zap.Strings("errors", res.Errors))
	}

	end(res.Err())
	return res
}

// RunSelfTests runs SelfTest for each named scheme, or for every registered
// scheme when names is empty. A name that does not resolve is reported as a
// failed result. The returned error joins every failure.
//
// In FIPS mode any failure panics, so no key is judged by a provider that
// did not pass.
func RunSelfTests(names ...string) ([]*SelfTestResult, error) {
	if len(names) == 0 {
		names = kem.Names()
	}

	results := make([]*SelfTestResult, 0, len(names))
	var errs []error
	for _, name := range names {
		var res *SelfTestResult
		if p, err := kem.Lookup(name); err != nil {
			res = &SelfTestResult{Scheme: name}
			res.fail("%v", err)
		} else {
			res = SelfTest(p)
		}
		results = append(results, res)
		if err := res.Err(); err != nil {
			errs = append(errs, err)
		}
	}

	err := errors.Join(errs...)
	if err != nil && crypto.FIPSMode() {
		panic(fmt.Sprintf("FIPS self-test failed: %v", err))
	}
	return results, err
}
