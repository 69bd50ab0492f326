package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/dhamidi/cyk/grammar"
	"github.com/dhamidi/cyk/server"
	"github.com/dhamidi/cyk/symbol"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var addr string
	var maxInput int

	cmd := &cobra.Command{
		Use:   "serve [grammar-file...]",
		Short: "Serve grammars and parsing over HTTP",
		Long: "Serve each grammar file under its base name without extension.\n" +
			"With no arguments the grammar named by $" + EnvGrammar + " is served.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				if env := os.Getenv(EnvGrammar); env != "" {
					paths = []string{env}
				}
			}
			if len(paths) == 0 {
				return fmt.Errorf("no grammar: pass grammar files or set %s", EnvGrammar)
			}

			grammars := make(map[string]*grammar.Grammar, len(paths))
			for _, path := range paths {
				name := grammarName(path)
				if _, dup := grammars[name]; dup {
					return fmt.Errorf("grammar name %q used by more than one file", name)
				}
				g, err := grammar.LoadFile(symbol.New(), path, "")
				if err != nil {
					return fmt.Errorf("load grammar: %w", err)
				}
				grammars[name] = g
			}

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.Serve(ctx, ln, server.New(grammars, maxInput))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", envString(EnvAddr, DefaultAddr), "listen address; defaults to $"+EnvAddr)
	cmd.Flags().IntVar(&maxInput, "max-input", envInt(EnvMaxInput, DefaultServeMaxInput), "reject inputs longer than this many characters (0 = unlimited)")

	return cmd
}
