package parse

import (
	"fmt"
	"strings"

	"github.com/dhamidi/cyk/symbol"
)

// Span is the half-open character range [Start, Start+Len) of the input.
type Span struct {
	Start int
	Len   int
}

func (s Span) End() int {
	return s.Start + s.Len
}

func (s Span) String() string {
	return fmt.Sprintf("%d,%d", s.Start, s.Len)
}

// Compare orders spans by length only; position is ignored.
func Compare(a, b Span) int {
	switch {
	case a.Len < b.Len:
		return -1
	case a.Len > b.Len:
		return 1
	}
	return 0
}

// Children is the arity-specific part of a Node: one of Leaf, Unit or
// Binary.
type Children interface {
	arity() int
}

// Leaf is a node matched directly against one input character.
type Leaf struct {
	Char rune
}

// Unit is a node derived through a unit rule from a single child.
type Unit struct {
	Child *Node
}

// Binary is a node derived through a binary rule from two adjacent
// children whose spans tile the parent span.
type Binary struct {
	Left  *Node
	Right *Node
}

func (Leaf) arity() int   { return 0 }
func (Unit) arity() int   { return 1 }
func (Binary) arity() int { return 2 }

// Node is one node of a parse tree.
type Node struct {
	Kind     symbol.Symbol
	Span     Span
	Children Children
}

func newLeaf(kind symbol.Symbol, at int, ch rune) *Node {
	return &Node{Kind: kind, Span: Span{Start: at, Len: 1}, Children: Leaf{Char: ch}}
}

func newUnit(kind symbol.Symbol, child *Node) *Node {
	return &Node{Kind: kind, Span: child.Span, Children: Unit{Child: child}}
}

func newBinary(kind symbol.Symbol, left, right *Node) *Node {
	return &Node{
		Kind:     kind,
		Span:     Span{Start: left.Span.Start, Len: left.Span.Len + right.Span.Len},
		Children: Binary{Left: left, Right: right},
	}
}

// Arity returns the number of children: 0, 1 or 2.
func (n *Node) Arity() int {
	return n.Children.arity()
}

// IsLeaf reports whether n matched an input character directly.
func (n *Node) IsLeaf() bool {
	_, ok := n.Children.(Leaf)
	return ok
}

// String returns the input text n spans.
func (n *Node) String() string {
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	switch c := n.Children.(type) {
	case Leaf:
		b.WriteRune(c.Char)
	case Unit:
		c.Child.writeText(b)
	case Binary:
		c.Left.writeText(b)
		c.Right.writeText(b)
	}
}

// Walk calls fn for n and its descendants in pre-order. Returning false
// from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	switch c := n.Children.(type) {
	case Unit:
		c.Child.Walk(fn)
	case Binary:
		c.Left.Walk(fn)
		c.Right.Walk(fn)
	}
}

// Equal reports whether n and other have the same kinds, spans and
// child arrangement throughout.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Kind != other.Kind || n.Span != other.Span {
		return false
	}
	switch c := n.Children.(type) {
	case Leaf:
		o, ok := other.Children.(Leaf)
		return ok && c.Char == o.Char
	case Unit:
		o, ok := other.Children.(Unit)
		return ok && c.Child.Equal(o.Child)
	case Binary:
		o, ok := other.Children.(Binary)
		return ok && c.Left.Equal(o.Left) && c.Right.Equal(o.Right)
	}
	return false
}

// clone deep-copies n so the result shares no nodes with the chart.
func (n *Node) clone() *Node {
	out := &Node{Kind: n.Kind, Span: n.Span}
	switch c := n.Children.(type) {
	case Leaf:
		out.Children = c
	case Unit:
		out.Children = Unit{Child: c.Child.clone()}
	case Binary:
		out.Children = Binary{Left: c.Left.clone(), Right: c.Right.clone()}
	}
	return out
}
