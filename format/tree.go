package format

import (
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/cyk/grammar"
	"github.com/dhamidi/cyk/parse"
)

// TreeEncoder writes a parse tree as an indented s-expression:
//
//	(Integer
//	  (Integer "1")
//	  (Digit "2"))
//
// A node whose only child is a leaf is written on one line.
type TreeEncoder struct {
	w       io.Writer
	grammar *grammar.Grammar
	tree    *parse.Node
	indent  string
}

func NewTreeEncoder(w io.Writer, g *grammar.Grammar) *TreeEncoder {
	return &TreeEncoder{w: w, grammar: g, indent: "  "}
}

func (e *TreeEncoder) Encode(tree *parse.Node) error {
	e.tree = tree
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	if e.tree == nil {
		return nil, nil
	}
	var sb strings.Builder
	e.write(&sb, e.tree, 0)
	sb.WriteString("\n")
	return []byte(sb.String()), nil
}

func (e *TreeEncoder) write(sb *strings.Builder, n *parse.Node, depth int) {
	switch c := n.Children.(type) {
	case parse.Leaf:
		sb.WriteString(strconv.Quote(string(c.Char)))
	case parse.Unit:
		sb.WriteString("(")
		sb.WriteString(e.grammar.Name(n.Kind))
		if c.Child.IsLeaf() {
			sb.WriteString(" ")
			e.write(sb, c.Child, depth+1)
		} else {
			e.child(sb, c.Child, depth+1)
		}
		sb.WriteString(")")
	case parse.Binary:
		sb.WriteString("(")
		sb.WriteString(e.grammar.Name(n.Kind))
		e.child(sb, c.Left, depth+1)
		e.child(sb, c.Right, depth+1)
		sb.WriteString(")")
	}
}

func (e *TreeEncoder) child(sb *strings.Builder, n *parse.Node, depth int) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(e.indent, depth))
	e.write(sb, n, depth)
}
