package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sara-star-quant/quantum-keycheck/internal/constants"
	"github.com/sara-star-quant/quantum-keycheck/pkg/kem"
)

func (a *app) newSelfTestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "selftest [SCHEME...]",
		Short: "Run known-pair self-tests against KEM providers",
		Long: `Run known-pair self-tests against the named providers, or all of them.
Each test derives two key pairs from fixed seeds and checks that matching
halves validate, crossed halves mismatch and a truncated secret key is
rejected.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = kem.Names()
			}

			failed := 0
			for _, name := range args {
				p, err := kem.Lookup(name)
				if err != nil {
					failed++
					fmt.Fprintf(a.out, "FAIL  %-20s %v\n", name, err)
					continue
				}
				res := a.validator(p).SelfTest(cmd.Context())
				if res.Passed {
					fmt.Fprintf(a.out, "PASS  %-20s %v\n", res.Scheme, res.Duration.Round(time.Microsecond))
					continue
				}
				failed++
				fmt.Fprintf(a.out, "FAIL  %-20s\n", res.Scheme)
				for _, e := range res.Errors {
					fmt.Fprintf(a.out, "      %s\n", e)
				}
			}

			if failed > 0 {
				return fail(constants.ExitMismatch, fmt.Errorf("%d of %d self-tests failed", failed, len(args)))
			}
			return nil
		},
	}
}
