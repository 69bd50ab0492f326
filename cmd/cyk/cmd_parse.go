package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/dhamidi/cyk/format"
	"github.com/dhamidi/cyk/parse"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newParseCmd() *cobra.Command {
	var gf grammarFlags
	var outputFormat string
	var fromStdin bool
	var jobs int

	cmd := &cobra.Command{
		Use:           "parse [input...]",
		Short:         "Parse each input and print its tree",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := gf.parser()
			if err != nil {
				return err
			}

			inputs := args
			if fromStdin {
				lines, err := readLines(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				inputs = append(inputs, lines...)
			}
			if len(inputs) == 0 {
				return fmt.Errorf("nothing to parse: pass inputs as arguments or use --stdin")
			}

			// Fail on an unknown format before doing any work.
			if _, err := format.NewEncoder(outputFormat, io.Discard, p.Grammar()); err != nil {
				return err
			}

			results, err := parseAll(p, inputs, outputFormat, jobs)
			if err != nil {
				return err
			}

			failed := 0
			for i, res := range results {
				if res.err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%q: %s\n", inputs[i], res.err)
					continue
				}
				cmd.OutOrStdout().Write(res.output)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d inputs failed to parse", failed, len(inputs))
			}
			return nil
		},
	}

	gf.register(cmd, DefaultMaxInput)
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format ("+strings.Join(format.Formats, ", ")+")")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "read one input per line from stdin")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "parse this many inputs concurrently (0 = one per CPU)")

	return cmd
}

type parseResult struct {
	output []byte
	err    error
}

// parseAll parses inputs concurrently and returns the results in input
// order. Parse failures are reported per input; only encoding errors
// abort the whole run.
func parseAll(p *parse.Parser, inputs []string, outputFormat string, jobs int) ([]parseResult, error) {
	results := make([]parseResult, len(inputs))

	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, input := range inputs {
		g.Go(func() error {
			tree, err := p.Parse(input)
			if err != nil {
				results[i].err = err
				return nil
			}
			var buf bytes.Buffer
			enc, err := format.NewEncoder(outputFormat, &buf, p.Grammar())
			if err != nil {
				return err
			}
			if err := enc.Encode(tree); err != nil {
				return fmt.Errorf("encode %q: %w", input, err)
			}
			results[i].output = buf.Bytes()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}
