package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dhamidi/cyk/grammar"
	"github.com/dhamidi/cyk/parse"
	"github.com/dhamidi/cyk/symbol"
	"github.com/spf13/cobra"
)

const (
	EnvMaxInput = "CYK_MAX_INPUT"
	EnvGrammar  = "CYK_GRAMMAR"
	EnvAddr     = "CYK_ADDR"

	DefaultMaxInput = 4096
	DefaultAddr     = "127.0.0.1:7070"

	// DefaultServeMaxInput caps serve and lsp, which parse on every
	// request or keystroke.
	DefaultServeMaxInput = 256
)

// grammarFlags are shared by every command that parses with a single
// grammar.
type grammarFlags struct {
	path     string
	start    string
	maxInput int
}

func (f *grammarFlags) register(cmd *cobra.Command, maxInput int) {
	cmd.Flags().StringVarP(&f.path, "grammar", "g", os.Getenv(EnvGrammar), "grammar file (.ebnf, .yaml, .json); defaults to $"+EnvGrammar)
	cmd.Flags().StringVar(&f.start, "start", "", "start symbol (defaults to the grammar's own)")
	cmd.Flags().IntVar(&f.maxInput, "max-input", envInt(EnvMaxInput, maxInput), "reject inputs longer than this many characters (0 = unlimited)")
}

func (f *grammarFlags) load() (*grammar.Grammar, error) {
	if f.path == "" {
		return nil, fmt.Errorf("no grammar: pass --grammar or set %s", EnvGrammar)
	}
	g, err := grammar.LoadFile(symbol.New(), f.path, f.start)
	if err != nil {
		return nil, fmt.Errorf("load grammar: %w", err)
	}
	return g, nil
}

func (f *grammarFlags) parser() (*parse.Parser, error) {
	g, err := f.load()
	if err != nil {
		return nil, err
	}
	return parse.NewParser(g, parse.WithMaxInput(f.maxInput)), nil
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		fmt.Fprintf(os.Stderr, "ignoring %s=%q: not a non-negative integer\n", key, v)
		return fallback
	}
	return n
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// grammarName derives the name a grammar file is served under.
func grammarName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
