package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/cyk/grammar"
	"github.com/dhamidi/cyk/parse"
)

type JSONEncoder struct {
	w       io.Writer
	grammar *grammar.Grammar
	tree    *parse.Node
}

func NewJSONEncoder(w io.Writer, g *grammar.Grammar) *JSONEncoder {
	return &JSONEncoder{w: w, grammar: g}
}

func (e *JSONEncoder) Encode(tree *parse.Node) error {
	e.tree = tree
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(Tree(e.grammar, e.tree), "", "  ")
}

// JSONNode is the serialized form of a parse.Node. Leaves carry Char,
// every other node carries Children.
type JSONNode struct {
	Kind     string      `json:"kind"`
	Span     JSONSpan    `json:"span"`
	Text     string      `json:"text"`
	Char     string      `json:"char,omitempty"`
	Children []*JSONNode `json:"children,omitempty"`
}

type JSONSpan struct {
	Start int `json:"start"`
	Len   int `json:"len"`
}

// Tree converts a parse tree into its JSON form, resolving kinds through
// g. A nil tree converts to nil.
func Tree(g *grammar.Grammar, n *parse.Node) *JSONNode {
	if n == nil {
		return nil
	}
	jn := &JSONNode{
		Kind: g.Name(n.Kind),
		Span: JSONSpan{Start: n.Span.Start, Len: n.Span.Len},
		Text: n.String(),
	}
	switch c := n.Children.(type) {
	case parse.Leaf:
		jn.Char = string(c.Char)
	case parse.Unit:
		jn.Children = []*JSONNode{Tree(g, c.Child)}
	case parse.Binary:
		jn.Children = []*JSONNode{Tree(g, c.Left), Tree(g, c.Right)}
	}
	return jn
}
