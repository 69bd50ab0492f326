package main

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var gf grammarFlags
	var quiet bool

	cmd := &cobra.Command{
		Use:           "check [file]",
		Short:         "Load and validate a grammar, then print it as EBNF",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				gf.path = args[0]
			}
			if gf.path == "" {
				return fmt.Errorf("no grammar: pass a file or set %s", EnvGrammar)
			}

			g, err := gf.load()
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return fmt.Errorf("%s: invalid grammar", gf.path)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: start %s, %d non-terminals, %d terminals, %d rules\n",
				gf.path, g.Name(g.Start()), len(g.NonTerminals()), len(g.Terminals()), len(g.Rules()))
			if !quiet {
				fmt.Fprint(out, g.String())
			}
			return nil
		},
	}

	gf.register(cmd, DefaultMaxInput)
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print the summary line")

	return cmd
}

// printErrors writes one line per underlying problem of err.
func printErrors(w io.Writer, err error) {
	var multi interface{ Unwrap() []error }
	if errors.As(err, &multi) {
		for _, e := range multi.Unwrap() {
			printErrors(w, e)
		}
		return
	}

	for inner := err; inner != nil; inner = errors.Unwrap(inner) {
		v := reflect.ValueOf(inner)
		if v.Kind() == reflect.Slice {
			for i := 0; i < v.Len(); i++ {
				fmt.Fprintln(w, v.Index(i).Interface())
			}
			return
		}
	}
	fmt.Fprintln(w, err)
}
