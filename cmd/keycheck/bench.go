package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sara-star-quant/quantum-keycheck/internal/constants"
	"github.com/sara-star-quant/quantum-keycheck/pkg/kem"
	"github.com/sara-star-quant/quantum-keycheck/pkg/keycheck"
	"github.com/sara-star-quant/quantum-keycheck/pkg/metrics"
)

func (a *app) newBenchCommand() *cobra.Command {
	var (
		iterations int
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure validation latency for a scheme",
		Long: `Measure validation latency. Key pairs are generated in memory for the
run and discarded afterwards; nothing is written to disk.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if iterations <= 0 {
				return fail(constants.ExitProviderError, fmt.Errorf("--iterations must be positive"))
			}
			names := []string{a.cfg.Scheme}
			if all {
				names = kem.Names()
			}

			for _, name := range names {
				p, err := a.provider(name)
				if err != nil {
					return err
				}
				if err := a.benchScheme(cmd, p, iterations); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&iterations, "iterations", "n", 200, "validations per scheme")
	cmd.Flags().BoolVar(&all, "all", false, "benchmark every registered scheme")
	return cmd
}

func (a *app) benchScheme(cmd *cobra.Command, p kem.Provider, iterations int) error {
	g, ok := p.(kem.Generator)
	if !ok {
		return fail(constants.ExitProviderError, fmt.Errorf("%s cannot generate key pairs", p.Name()))
	}
	pk, sk, err := g.GenerateKeyPair()
	if err != nil {
		return fail(constants.ExitProviderError, fmt.Errorf("generate %s key pair: %w", p.Name(), err))
	}

	c := metrics.NewCollector(metrics.Labels{"scheme": p.Name()})
	v := a.validator(p, keycheck.WithCollector(c))

	fmt.Fprintf(a.out, "Benchmarking %s (%d validations)\n", p.Name(), iterations)
	fmt.Fprintln(a.out, strings.Repeat("─", 60))

	start := time.Now()
	for i := 0; i < iterations; i++ {
		if err := v.Validate(cmd.Context(), pk, sk); err != nil {
			return fail(constants.ExitProviderError, fmt.Errorf("validation %d: %w", i, err))
		}
	}
	total := time.Since(start)

	lat := c.Snapshot().Latency
	us := func(v float64) time.Duration { return time.Duration(v * float64(time.Microsecond)) }
	fmt.Fprintf(a.out, "  Total time: %v\n", total.Round(time.Microsecond))
	fmt.Fprintf(a.out, "  Average:    %v\n", us(lat.Mean))
	fmt.Fprintf(a.out, "  Minimum:    %v\n", us(lat.Min))
	fmt.Fprintf(a.out, "  Maximum:    %v\n", us(lat.Max))
	fmt.Fprintf(a.out, "  p50 / p99:  %v / %v\n", us(lat.P50), us(lat.P99))
	fmt.Fprintf(a.out, "  Throughput: %.0f validations/sec\n", float64(iterations)/total.Seconds())
	fmt.Fprintln(a.out, rating(us(lat.Mean)))
	fmt.Fprintln(a.out)
	return nil
}

func rating(avg time.Duration) string {
	switch {
	case avg < 250*time.Microsecond:
		return "✓ Performance: Excellent (< 250µs avg)"
	case avg < time.Millisecond:
		return "✓ Performance: Good (< 1ms avg)"
	case avg < 5*time.Millisecond:
		return "⚠ Performance: Acceptable (< 5ms avg)"
	default:
		return "⚠ Performance: Slow (> 5ms avg)"
	}
}
