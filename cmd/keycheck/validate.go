package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/sara-star-quant/quantum-keycheck/internal/constants"
	"github.com/sara-star-quant/quantum-keycheck/pkg/crypto"
	"github.com/sara-star-quant/quantum-keycheck/pkg/keycheck"
	"github.com/sara-star-quant/quantum-keycheck/pkg/keyfile"
)

func (a *app) newValidateCommand() *cobra.Command {
	var (
		publicPath string
		secretPath string
		selfTest   bool
	)

	cmd := &cobra.Command{
		Use:   "validate --public FILE --secret FILE",
		Short: "Check that a public key and a secret key form a pair",
		Example: `  keycheck validate --public kyber.pub --secret kyber.sec
  keycheck validate --scheme ML-KEM-768 --encoding pem --public k.pem --secret s.pem`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc, err := keyfile.ParseEncoding(a.cfg.Encoding)
			if err != nil {
				return fail(constants.ExitProviderError, err)
			}
			p, err := a.provider(a.cfg.Scheme)
			if err != nil {
				return err
			}
			v := a.validator(p)
			if selfTest {
				if err := a.preflight(cmd, v); err != nil {
					return err
				}
			}

			pk, err := keyfile.Load(publicPath, enc)
			if err != nil {
				return fail(constants.ExitProviderError, fmt.Errorf("public key: %w", err))
			}
			sk, err := keyfile.Load(secretPath, enc)
			if err != nil {
				return fail(constants.ExitProviderError, fmt.Errorf("secret key: %w", err))
			}
			defer crypto.Zeroize(sk)

			err = v.Validate(cmd.Context(), pk, sk)
			outcome := keycheck.Classify(err)
			otelzap.Ctx(cmd.Context()).Info("validation finished",
				zap.String("scheme", p.Name()),
				zap.String("public_fingerprint", keyfile.Fingerprint(pk)),
				zap.Stringer("outcome", outcome))

			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "scheme:\t%s\n", p.Name())
			fmt.Fprintf(tw, "public key:\t%s\n", keyfile.Fingerprint(pk))
			fmt.Fprintf(tw, "result:\t%s\n", verdict(err))
			_ = tw.Flush()

			switch outcome {
			case keycheck.OutcomeValid:
				return nil
			case keycheck.OutcomeMismatch:
				return fail(constants.ExitMismatch, nil)
			default:
				return fail(constants.ExitProviderError, nil)
			}
		},
	}

	cmd.Flags().StringVarP(&publicPath, "public", "p", "", "public key file")
	cmd.Flags().StringVarP(&secretPath, "secret", "s", "", "secret key file")
	cmd.Flags().BoolVar(&selfTest, "selftest", false, "run the provider self-test first")
	_ = cmd.MarkFlagRequired("public")
	_ = cmd.MarkFlagRequired("secret")
	return cmd
}

// verdict is the one-line result shown to the operator.
func verdict(err error) string {
	switch keycheck.Classify(err) {
	case keycheck.OutcomeValid:
		return "valid"
	case keycheck.OutcomeMismatch:
		return "MISMATCH (keys do not form a pair)"
	}
	var pe *keycheck.ProviderError
	if errors.As(err, &pe) {
		return fmt.Sprintf("ERROR (%s failed: %v)", pe.Op, pe.Err)
	}
	return fmt.Sprintf("ERROR (%v)", err)
}
