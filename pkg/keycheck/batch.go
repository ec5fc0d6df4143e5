package keycheck

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sara-star-quant/quantum-keycheck/internal/constants"
	"github.com/sara-star-quant/quantum-keycheck/pkg/metrics"
)

// Pair is a named key pair to validate. The slices are borrowed.
type Pair struct {
	Name      string
	PublicKey []byte
	SecretKey []byte
}

// Result is the verdict for one Pair.
type Result struct {
	Name     string
	Err      error
	Duration time.Duration
}

// Outcome classifies r.Err.
func (r Result) Outcome() Outcome {
	return Classify(r.Err)
}

// ValidateBatch validates pairs concurrently with at most concurrency
// validations in flight. A concurrency of zero or less uses GOMAXPROCS.
//
// Results are returned in input order. Pairs are independent: a mismatch
// or provider error never stops the others. Canceling ctx makes pairs that
// have not started yet report the context error.
func (v *Validator) ValidateBatch(ctx context.Context, pairs []Pair, concurrency int) []Result {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	concurrency = min(concurrency, constants.MaxConcurrency)

	ctx, end := metrics.StartSpan(ctx, v.tracer, metrics.SpanBatch,
		metrics.AttrScheme.String(v.Scheme()),
		metrics.AttrPairs.Int(len(pairs)))

	results := make([]Result, len(pairs))

	// A plain Group: errgroup.WithContext would cancel the remaining pairs
	// on the first failure.
	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, p := range pairs {
		g.Go(func() error {
			start := time.Now()
			err := v.validate(ctx, p.Name, p.PublicKey, p.SecretKey)
			results[i] = Result{Name: p.Name, Err: err, Duration: time.Since(start)}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if v.collector != nil {
		v.collector.RecordBatch()
	}
	v.log.Ctx(ctx).Info("batch complete",
		zap.String("scheme", v.Scheme()),
		zap.Int("pairs", len(pairs)),
		zap.Int("failed", failed),
		zap.Int("concurrency", concurrency))

	if failed > 0 {
		end(fmt.Errorf("%d of %d pairs failed", failed, len(pairs)))
	} else {
		end(nil)
	}
	return results
}
