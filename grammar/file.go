package grammar

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dhamidi/cyk/symbol"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// File is the document shape of YAML and JSON grammar files:
//
//	start: Number
//	nonTerminals: [Number, Integer, Digit]
//	terminals: ["0", "1"]
//	rules:
//	  Number: [["0"], ["1"], [Integer, Digit]]
type File struct {
	Start        string                `mapstructure:"start"`
	NonTerminals []string              `mapstructure:"nonTerminals"`
	Terminals    []string              `mapstructure:"terminals"`
	Rules        map[string][][]string `mapstructure:"rules"`
}

// LoadFile loads a grammar from path, choosing the format by extension:
// .ebnf, or .yaml/.yml/.json. A non-empty start overrides the start
// symbol named in the file.
func LoadFile(in *symbol.Interner, path, start string) (*Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grammar: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ebnf":
		return LoadEBNF(in, path, bytes.NewReader(data), start)
	case ".yaml", ".yml", ".json":
		return LoadDocument(in, bytes.NewReader(data), start)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// LoadDocument reads a YAML or JSON grammar document.
func LoadDocument(in *symbol.Interner, r io.Reader, start string) (*Grammar, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode grammar: %w", err)
	}

	var doc File
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		// Unquoted YAML digits decode as ints; terminals are strings.
		WeaklyTypedInput: true,
		Result:           &doc,
	})
	if err != nil {
		return nil, fmt.Errorf("decode grammar: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode grammar: %w", err)
	}

	if start != "" {
		doc.Start = start
	}

	g, err := doc.Build(in)
	if err != nil {
		return nil, fmt.Errorf("build grammar: %w", err)
	}
	return g, nil
}

// Build validates the document. Rules are added in the order their left
// sides are declared in NonTerminals; undeclared left sides follow in
// lexical order and are rejected by validation.
func (f *File) Build(in *symbol.Interner) (*Grammar, error) {
	b := NewBuilder(in).
		Start(f.Start).
		Terminals(f.Terminals...).
		NonTerminals(f.NonTerminals...)

	seen := make(map[string]bool, len(f.Rules))
	lefts := make([]string, 0, len(f.Rules))
	for _, nt := range f.NonTerminals {
		if _, ok := f.Rules[nt]; ok && !seen[nt] {
			seen[nt] = true
			lefts = append(lefts, nt)
		}
	}
	var rest []string
	for left := range f.Rules {
		if !seen[left] {
			rest = append(rest, left)
		}
	}
	sort.Strings(rest)
	lefts = append(lefts, rest...)

	for _, left := range lefts {
		for _, right := range f.Rules[left] {
			b.Rule(left, right...)
		}
	}
	return b.Build()
}
