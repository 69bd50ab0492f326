// Package parse recognizes strings against a CNF grammar with the
// Cocke-Younger-Kasami algorithm and builds a concrete parse tree.
//
// The chart is filled bottom-up: every single character is matched
// against the grammar's unit rules, then spans of increasing length are
// built by combining two adjacent, already committed spans through a
// binary rule. When several split points of one span derive something,
// a Resolver picks which one is committed, so every span carries a
// single derivation rather than a forest.
package parse

import (
	"unicode/utf8"

	"github.com/dhamidi/cyk/grammar"
	"github.com/tliron/commonlog"
)

type Option func(*Parser)

// WithResolver replaces the ambiguity policy. The default is
// RightmostSplit.
func WithResolver(r Resolver) Option {
	return func(p *Parser) {
		p.resolve = r
	}
}

// WithMaxInput rejects inputs longer than n characters with
// ErrInputTooLong. Zero means unlimited.
func WithMaxInput(n int) Option {
	return func(p *Parser) {
		p.maxInput = n
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

// Parser runs CYK over one grammar. It keeps no per-parse state and is
// safe for concurrent use.
type Parser struct {
	grammar  *grammar.Grammar
	resolve  Resolver
	maxInput int
	log      commonlog.Logger
}

func NewParser(g *grammar.Grammar, opts ...Option) *Parser {
	p := &Parser{
		grammar: g,
		resolve: RightmostSplit,
		log:     commonlog.GetLogger("cyk.parse"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Grammar returns the grammar p parses with.
func (p *Parser) Grammar() *grammar.Grammar {
	return p.grammar
}

// Parse returns the derivation of input from the grammar's start symbol.
// On failure the error is an *Error; see Diagnostics.
func (p *Parser) Parse(input string) (*Node, error) {
	chart, err := p.Fill(input)
	if err != nil {
		return nil, err
	}
	return chart.Tree(p.grammar.Start())
}

// Parse is a convenience for NewParser(g).Parse(input).
func Parse(g *grammar.Grammar, input string) (*Node, error) {
	return NewParser(g).Parse(input)
}

// Fill builds the CYK chart for input. It only fails when input exceeds
// the configured maximum; unknown characters are recorded as chart
// diagnostics and the fill continues past them.
func (p *Parser) Fill(input string) (*Chart, error) {
	if p.maxInput > 0 {
		if n := utf8.RuneCountInString(input); n > p.maxInput {
			return nil, &Error{Err: ErrInputTooLong}
		}
	}

	chart := newChart(input)
	n := chart.Len()

	for i := 0; i < n; i++ {
		p.fillChar(chart, i)
	}
	if len(chart.diagnostics) > 0 {
		p.log.Infof("%d unrecognized characters in %d-character input", len(chart.diagnostics), n)
	}

	for length := 2; length <= n; length++ {
		for start := 0; start+length <= n; start++ {
			p.fillSpan(chart, Span{Start: start, Len: length})
		}
	}

	return chart, nil
}

func (p *Parser) fillChar(chart *Chart, at int) {
	ch := chart.input[at]
	in := p.grammar.Interner()

	terminal, ok := in.Lookup(string(ch))
	if ok && p.grammar.IsTerminal(terminal) {
		if kinds := p.grammar.UnitParents(terminal); len(kinds) > 0 {
			leaf := newLeaf(terminal, at, ch)
			cell := newCell(leaf.Span)
			for _, kind := range kinds {
				cell.Add(newUnit(kind, leaf))
			}
			chart.commit(cell)
			return
		}
	}

	chart.diagnostics = append(chart.diagnostics, Diagnostic{
		Char:       ch,
		Offset:     at,
		ByteOffset: chart.offsets[at],
	})
}

func (p *Parser) fillSpan(chart *Chart, span Span) {
	candidates := make([]*Cell, span.Len-1)
	for split := 1; split < span.Len; split++ {
		left, ok := chart.Cell(Span{Start: span.Start, Len: split})
		if !ok {
			continue
		}
		right, ok := chart.Cell(Span{Start: span.Start + split, Len: span.Len - split})
		if !ok {
			continue
		}

		candidate := newCell(span)
		for _, cur := range left.Nodes() {
			for _, suf := range right.Nodes() {
				if !p.grammar.CanFollow(cur.Kind, suf.Kind) {
					continue
				}
				for _, kind := range p.grammar.BinaryParents(cur.Kind, suf.Kind) {
					// One node per kind: the first derivation found is kept.
					if _, ok := candidate.Lookup(kind); ok {
						continue
					}
					candidate.Add(newBinary(kind, cur, suf))
				}
			}
		}
		candidates[split-1] = candidate
	}

	if winner := p.resolve(candidates); winner != nil && !winner.IsEmpty() {
		chart.commit(winner)
		if p.log.AllowLevel(commonlog.Debug) {
			p.log.Debugf("span %s: %d alternatives", span, winner.Len())
		}
	}
}
