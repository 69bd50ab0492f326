package parse

import (
	"github.com/dhamidi/cyk/symbol"
)

// Cell holds the alternative nodes derivable over one span.
type Cell struct {
	span  Span
	nodes []*Node
}

func newCell(span Span) *Cell {
	return &Cell{span: span}
}

func (c *Cell) Span() Span {
	return c.span
}

// Add appends an alternative. The parser adds at most one node per kind.
func (c *Cell) Add(n *Node) {
	c.nodes = append(c.nodes, n)
}

// Lookup returns the first node of the given kind.
func (c *Cell) Lookup(kind symbol.Symbol) (*Node, bool) {
	for _, n := range c.nodes {
		if n.Kind == kind {
			return n, true
		}
	}
	return nil, false
}

func (c *Cell) IsEmpty() bool {
	return len(c.nodes) == 0
}

func (c *Cell) Len() int {
	return len(c.nodes)
}

// Nodes returns the alternatives in the order they were added.
func (c *Cell) Nodes() []*Node {
	return c.nodes
}

// Chart is the CYK table of one parse. Cells are indexed by span length
// and start offset; a nil entry means nothing was derived for the span.
type Chart struct {
	input       []rune
	offsets     []int // byte offset of each rune in the original string
	cells       [][]*Cell
	diagnostics []Diagnostic
}

func newChart(input string) *Chart {
	c := &Chart{}
	for off, r := range input {
		c.input = append(c.input, r)
		c.offsets = append(c.offsets, off)
	}
	n := len(c.input)
	// cells[0] is unused so that cells[len][start] reads naturally.
	c.cells = make([][]*Cell, n+1)
	for length := 1; length <= n; length++ {
		c.cells[length] = make([]*Cell, n-length+1)
	}
	return c
}

// Len returns the number of characters in the input.
func (c *Chart) Len() int {
	return len(c.input)
}

// Input returns the input as characters.
func (c *Chart) Input() []rune {
	return c.input
}

// Diagnostics returns the characters no unit rule matched.
func (c *Chart) Diagnostics() []Diagnostic {
	return c.diagnostics
}

// Cell returns the committed cell for span. The second result is false
// for spans outside the input and for spans nothing was derived for.
func (c *Chart) Cell(span Span) (*Cell, bool) {
	if span.Len < 1 || span.Len >= len(c.cells) || span.Start < 0 || span.Start >= len(c.cells[span.Len]) {
		return nil, false
	}
	cell := c.cells[span.Len][span.Start]
	return cell, cell != nil && !cell.IsEmpty()
}

func (c *Chart) commit(cell *Cell) {
	c.cells[cell.span.Len][cell.span.Start] = cell
}

// Tree looks up start in the cell covering the whole input and returns
// a copy of its derivation.
func (c *Chart) Tree(start symbol.Symbol) (*Node, error) {
	if len(c.input) == 0 {
		return nil, &Error{Err: ErrEmptyInput}
	}
	if top, ok := c.Cell(Span{Start: 0, Len: len(c.input)}); ok {
		if root, ok := top.Lookup(start); ok {
			return root.clone(), nil
		}
	}
	if len(c.diagnostics) > 0 {
		return nil, &Error{Err: ErrUnrecognized, Diagnostics: c.diagnostics}
	}
	return nil, &Error{Err: ErrNoDerivation}
}
