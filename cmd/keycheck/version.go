package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sara-star-quant/quantum-keycheck/pkg/version"
)

func (a *app) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info := version.Get()
			fmt.Fprintln(a.out, version.Full())
			if info.Commit != "" {
				fmt.Fprintf(a.out, "Commit: %s\n", info.Commit)
			}
			if info.BuildTime != "" {
				fmt.Fprintf(a.out, "Built:  %s\n", info.BuildTime)
			}
			fmt.Fprintf(a.out, "Go:     %s %s\n", info.GoVersion, info.Platform)
			fmt.Fprintf(a.out, "FIPS:   %t\n", info.FIPS)
		},
	}
}
