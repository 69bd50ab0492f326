package grammar

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"text/scanner"

	"github.com/dhamidi/cyk/symbol"
	"golang.org/x/exp/ebnf"
)

// LoadEBNF reads a grammar written in the EBNF dialect of
// golang.org/x/exp/ebnf. Only CNF shapes are accepted:
//
//	Digit   = "0" … "9" .           // one unit rule per character
//	Sign    = "+" | "-" .           // unit rules
//	Integer = Integer Digit | "0" . // binary and unit rules
//
// Every production is a non-terminal; every token is a terminal and must
// be a single character. If start is empty the first production in the
// source is used.
//
// EBNF sources are checked more strictly than New checks a Definition:
// every production must be reachable from start, and multi-character
// tokens are rejected.
func LoadEBNF(in *symbol.Interner, filename string, r io.Reader, start string) (*Grammar, error) {
	src, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}

	prods := sortedProductions(src)
	if len(prods) == 0 {
		return nil, fmt.Errorf("parse grammar: %s: no productions", filename)
	}
	if start == "" {
		start = prods[0].Name.String
	}

	if err := ebnf.Verify(src, start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}

	c := &ebnfConverter{
		builder:   NewBuilder(in).Start(start),
		terminals: make(map[string]bool),
	}
	for _, prod := range prods {
		c.production(prod)
	}
	if len(c.problems) > 0 {
		return nil, errors.Join(c.problems...)
	}
	c.builder.Terminals(c.terminalOrder...)

	g, err := c.builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build grammar: %w", err)
	}
	return g, nil
}

func sortedProductions(src ebnf.Grammar) []*ebnf.Production {
	prods := make([]*ebnf.Production, 0, len(src))
	for _, prod := range src {
		prods = append(prods, prod)
	}
	sort.Slice(prods, func(i, j int) bool {
		return prods[i].Pos().Offset < prods[j].Pos().Offset
	})
	return prods
}

type ebnfConverter struct {
	builder       *Builder
	terminals     map[string]bool
	terminalOrder []string
	problems      []error
}

func (c *ebnfConverter) production(prod *ebnf.Production) {
	left := prod.Name.String
	c.builder.NonTerminals(left)

	var alts []ebnf.Expression
	switch e := prod.Expr.(type) {
	case nil:
	case ebnf.Alternative:
		alts = e
	default:
		alts = []ebnf.Expression{e}
	}

	for _, alt := range alts {
		switch e := alt.(type) {
		case *ebnf.Token:
			ch, ok := singleChar(e.String)
			if !ok {
				c.malformed(e.Pos(), left, e.String)
				continue
			}
			c.unit(left, string(ch))

		case *ebnf.Range:
			begin, okBegin := singleChar(e.Begin.String)
			end, okEnd := singleChar(e.End.String)
			if !okBegin || !okEnd {
				c.malformed(e.Pos(), left, e.Begin.String+"…"+e.End.String)
				continue
			}
			for ch := begin; ch <= end; ch++ {
				c.unit(left, string(ch))
			}

		case ebnf.Sequence:
			if len(e) != 2 {
				c.malformed(e.Pos(), left, "")
				continue
			}
			first, okFirst := e[0].(*ebnf.Name)
			second, okSecond := e[1].(*ebnf.Name)
			if !okFirst || !okSecond {
				c.malformed(e.Pos(), left, "")
				continue
			}
			c.builder.Rule(left, first.String, second.String)

		default:
			// Single names, groups, options and repetitions have no CNF
			// equivalent without rewriting the grammar.
			c.malformed(alt.Pos(), left, "")
		}
	}
}

func (c *ebnfConverter) unit(left, terminal string) {
	if !c.terminals[terminal] {
		c.terminals[terminal] = true
		c.terminalOrder = append(c.terminalOrder, terminal)
	}
	c.builder.Rule(left, terminal)
}

func (c *ebnfConverter) malformed(pos scanner.Position, left, detail string) {
	c.problems = append(c.problems, &ValidationError{
		Err:    ErrMalformedRule,
		Symbol: left,
		Rule:   detail,
		Pos:    pos.String(),
	})
}

func singleChar(s string) (rune, bool) {
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, false
	}
	return runes[0], true
}
