package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sara-star-quant/quantum-keycheck/internal/constants"
	"github.com/sara-star-quant/quantum-keycheck/pkg/kem"
)

func (a *app) newSchemesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schemes",
		Short: "List supported KEM schemes and their key sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			def := kem.Default().Name()
			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "SCHEME\tPUBLIC\tSECRET\tCIPHERTEXT\tSECRET OUT\tFIPS 203\t")
			for _, name := range kem.Names() {
				info, err := kem.Describe(name)
				if err != nil {
					return fail(constants.ExitProviderError, err)
				}
				label := info.Name
				if info.Name == def {
					label += " (default)"
				}
				fips := "no"
				if info.FIPSApproved {
					fips = "yes"
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%s\t\n", label,
					info.PublicKeySize, info.SecretKeySize, info.CiphertextSize, info.SharedSecretSize, fips)
			}
			return tw.Flush()
		},
	}
}
