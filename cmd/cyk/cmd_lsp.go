package main

import (
	"github.com/dhamidi/cyk/lsp"
	"github.com/spf13/cobra"
)

func newLSPCmd() *cobra.Command {
	var gf grammarFlags

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start a language server that checks every line of a document",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := gf.parser()
			if err != nil {
				return err
			}
			return lsp.NewServer(p, version).RunStdio()
		},
	}

	gf.register(cmd, DefaultServeMaxInput)

	return cmd
}
