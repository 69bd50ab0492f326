package main

import (
	"fmt"

	"github.com/dhamidi/cyk/format"
	"github.com/spf13/cobra"
)

func newChartCmd() *cobra.Command {
	var gf grammarFlags

	cmd := &cobra.Command{
		Use:           "chart <input>",
		Short:         "Print the CYK chart built for an input",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := gf.parser()
			if err != nil {
				return err
			}

			chart, err := p.Fill(args[0])
			if err != nil {
				return fmt.Errorf("fill chart: %w", err)
			}

			if err := format.NewChartEncoder(cmd.OutOrStdout(), p.Grammar()).Encode(chart); err != nil {
				return fmt.Errorf("encode chart: %w", err)
			}

			if _, err := chart.Tree(p.Grammar().Start()); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			}
			return nil
		},
	}

	gf.register(cmd, DefaultMaxInput)

	return cmd
}
