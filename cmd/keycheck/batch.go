package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/sara-star-quant/quantum-keycheck/internal/constants"
	"github.com/sara-star-quant/quantum-keycheck/pkg/crypto"
	"github.com/sara-star-quant/quantum-keycheck/pkg/keycheck"
	"github.com/sara-star-quant/quantum-keycheck/pkg/keyfile"
	"github.com/sara-star-quant/quantum-keycheck/pkg/metrics"
)

func (a *app) newBatchCommand() *cobra.Command {
	var (
		metricsFile string
		selfTest    bool
	)

	cmd := &cobra.Command{
		Use:   "batch MANIFEST",
		Short: "Validate every pair listed in a YAML manifest",
		Long: `Validate every pair listed in a YAML manifest:

  scheme: Kyber1024
  encoding: auto
  pairs:
    - name: primary
      public: keys/primary.pub
      secret: keys/primary.sec

Paths are relative to the manifest. --scheme and --encoding, when given,
override the manifest. Exit status is 1 if any pair fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := keyfile.LoadManifest(args[0])
			if err != nil {
				return fail(constants.ExitProviderError, err)
			}

			scheme := a.cfg.Scheme
			if m.Scheme != "" && !cmd.Flags().Changed("scheme") {
				scheme = m.Scheme
			}
			if cmd.Flags().Changed("encoding") {
				enc, err := keyfile.ParseEncoding(a.cfg.Encoding)
				if err != nil {
					return fail(constants.ExitProviderError, err)
				}
				m.Encoding = enc
			}

			p, err := a.provider(scheme)
			if err != nil {
				return err
			}
			v := a.validator(p)
			if selfTest {
				if err := a.preflight(cmd, v); err != nil {
					return err
				}
			}

			results, fingerprints := a.runBatch(cmd, v, m)

			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tRESULT\tPUBLIC KEY\tTIME")
			var valid, mismatched, errored int
			for i, r := range results {
				switch r.Outcome() {
				case keycheck.OutcomeValid:
					valid++
				case keycheck.OutcomeMismatch:
					mismatched++
				default:
					errored++
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Name, verdict(r.Err), fingerprints[i], r.Duration.Round(time.Microsecond))
			}
			_ = tw.Flush()
			fmt.Fprintf(a.out, "\n%d pairs (%s): %d valid, %d mismatched, %d errors\n",
				len(results), p.Name(), valid, mismatched, errored)

			if metricsFile != "" {
				exp := metrics.NewPrometheusExporter(a.collector, "keycheck")
				if err := exp.WriteFile(metricsFile); err != nil {
					return fail(constants.ExitProviderError, err)
				}
			}

			if valid != len(results) {
				return fail(constants.ExitMismatch, nil)
			}
			return nil
		},
	}

	cmd.Flags().Int("concurrency", 0, "pairs validated in parallel (0 = GOMAXPROCS)")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
	cmd.Flags().BoolVar(&selfTest, "selftest", false, "run the provider self-test first")
	return cmd
}

// runBatch loads each pair and validates the loadable ones together. A pair
// whose files cannot be read is reported in place with its load error.
func (a *app) runBatch(cmd *cobra.Command, v *keycheck.Validator, m *keyfile.Manifest) ([]keycheck.Result, []string) {
	results := make([]keycheck.Result, len(m.Pairs))
	fingerprints := make([]string, len(m.Pairs))
	pairs := make([]keycheck.Pair, 0, len(m.Pairs))
	index := make([]int, 0, len(m.Pairs))

	log := otelzap.Ctx(cmd.Context())
	for i, e := range m.Pairs {
		pk, sk, err := m.LoadKeys(e)
		if err != nil {
			log.Warn("pair not loaded", zap.String("pair", e.Name), zap.Error(err))
			results[i] = keycheck.Result{Name: e.Name, Err: err}
			fingerprints[i] = "-"
			continue
		}
		fingerprints[i] = keyfile.Fingerprint(pk)
		pairs = append(pairs, keycheck.Pair{Name: e.Name, PublicKey: pk, SecretKey: sk})
		index = append(index, i)
	}
	defer func() {
		for _, p := range pairs {
			crypto.Zeroize(p.SecretKey)
		}
	}()

	for j, r := range v.ValidateBatch(cmd.Context(), pairs, a.cfg.Concurrency) {
		results[index[j]] = r
	}
	return results, fingerprints
}
