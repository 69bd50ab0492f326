// Package format renders parse trees and charts for people and programs.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/cyk/grammar"
	"github.com/dhamidi/cyk/parse"
)

// Encoder writes one parse tree. MarshalText renders the tree passed to
// the most recent Encode call.
type Encoder interface {
	encoding.TextMarshaler
	Encode(tree *parse.Node) error
}

// Formats lists the names NewEncoder accepts.
var Formats = []string{"json", "tree", "text"}

// NewEncoder returns the encoder registered under name.
func NewEncoder(name string, w io.Writer, g *grammar.Grammar) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w, g), nil
	case "tree":
		return NewTreeEncoder(w, g), nil
	case "text":
		return NewTextEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s", name)
}

type TextEncoder struct {
	w    io.Writer
	tree *parse.Node
}

// NewTextEncoder returns an encoder that writes the input text a tree
// spans, one tree per line.
func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(tree *parse.Node) error {
	e.tree = tree
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	if e.tree == nil {
		return nil, nil
	}
	return []byte(e.tree.String() + "\n"), nil
}
