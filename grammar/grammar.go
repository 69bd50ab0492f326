// Package grammar models context-free grammars in Chomsky normal form.
//
// A Grammar is immutable once built and answers the lookups a CYK
// parser needs: which non-terminals rewrite to a terminal, which symbols
// may follow a given symbol on the right side of a binary rule, and which
// non-terminals rewrite to a given pair of symbols. It never looks at
// input positions, so one Grammar can be shared by any number of
// concurrent parses.
package grammar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dhamidi/cyk/symbol"
	"github.com/emirpasic/gods/sets/linkedhashset"
)

// Pair is the right-hand side of a binary rule A -> First Second.
type Pair struct {
	First  symbol.Symbol
	Second symbol.Symbol
}

// Rule is a single production. Unit rules have one right-hand symbol (a
// terminal), binary rules have two (both non-terminals).
type Rule struct {
	Left  symbol.Symbol
	Right []symbol.Symbol
}

// IsUnit reports whether r rewrites its left side to a single terminal.
func (r Rule) IsUnit() bool {
	return len(r.Right) == 1
}

// Grammar is a validated CNF grammar.
type Grammar struct {
	in    *symbol.Interner
	start symbol.Symbol

	terminals    *linkedhashset.Set
	nonTerminals *linkedhashset.Set

	// Declared rules, keyed by left side, in insertion order.
	binaryRules map[symbol.Symbol]*linkedhashset.Set // of Pair
	unitRules   map[symbol.Symbol]*linkedhashset.Set // of symbol.Symbol
	rules       []Rule

	// Reverse indexes used by the parser.
	unitParents   map[symbol.Symbol]*linkedhashset.Set // terminal -> lefts
	successors    map[symbol.Symbol]*linkedhashset.Set // first -> seconds
	binaryParents map[Pair]*linkedhashset.Set          // (first, second) -> lefts
}

func newGrammar(in *symbol.Interner, start symbol.Symbol) *Grammar {
	return &Grammar{
		in:            in,
		start:         start,
		terminals:     linkedhashset.New(),
		nonTerminals:  linkedhashset.New(),
		binaryRules:   make(map[symbol.Symbol]*linkedhashset.Set),
		unitRules:     make(map[symbol.Symbol]*linkedhashset.Set),
		unitParents:   make(map[symbol.Symbol]*linkedhashset.Set),
		successors:    make(map[symbol.Symbol]*linkedhashset.Set),
		binaryParents: make(map[Pair]*linkedhashset.Set),
	}
}

func (g *Grammar) addUnit(left, terminal symbol.Symbol) {
	rhs := setFor(g.unitRules, left)
	if rhs.Contains(terminal) {
		return
	}
	rhs.Add(terminal)
	setFor(g.unitParents, terminal).Add(left)
	g.rules = append(g.rules, Rule{Left: left, Right: []symbol.Symbol{terminal}})
}

func (g *Grammar) addBinary(left, first, second symbol.Symbol) {
	pair := Pair{First: first, Second: second}
	rhs := setFor(g.binaryRules, left)
	if rhs.Contains(pair) {
		return
	}
	rhs.Add(pair)
	setFor(g.successors, first).Add(second)
	setFor(g.binaryParents, pair).Add(left)
	g.rules = append(g.rules, Rule{Left: left, Right: []symbol.Symbol{first, second}})
}

func setFor[K comparable](m map[K]*linkedhashset.Set, key K) *linkedhashset.Set {
	set, ok := m[key]
	if !ok {
		set = linkedhashset.New()
		m[key] = set
	}
	return set
}

func symbolsOf(set *linkedhashset.Set) []symbol.Symbol {
	if set == nil {
		return nil
	}
	values := set.Values()
	out := make([]symbol.Symbol, len(values))
	for i, v := range values {
		out[i] = v.(symbol.Symbol)
	}
	return out
}

// Interner returns the interner all of g's symbols were issued by.
func (g *Grammar) Interner() *symbol.Interner {
	return g.in
}

// Start returns the start symbol.
func (g *Grammar) Start() symbol.Symbol {
	return g.start
}

func (g *Grammar) IsTerminal(sym symbol.Symbol) bool {
	return g.terminals.Contains(sym)
}

func (g *Grammar) IsNonTerminal(sym symbol.Symbol) bool {
	return g.nonTerminals.Contains(sym)
}

// Terminals returns the declared terminals in declaration order.
func (g *Grammar) Terminals() []symbol.Symbol {
	return symbolsOf(g.terminals)
}

// NonTerminals returns the declared non-terminals in declaration order.
func (g *Grammar) NonTerminals() []symbol.Symbol {
	return symbolsOf(g.nonTerminals)
}

// Rules returns every rule in the order it was added.
func (g *Grammar) Rules() []Rule {
	out := make([]Rule, len(g.rules))
	copy(out, g.rules)
	return out
}

// UnitRules returns the terminals left rewrites to directly.
func (g *Grammar) UnitRules(left symbol.Symbol) []symbol.Symbol {
	return symbolsOf(g.unitRules[left])
}

// BinaryRules returns the right-hand pairs of left's binary rules.
func (g *Grammar) BinaryRules(left symbol.Symbol) []Pair {
	set, ok := g.binaryRules[left]
	if !ok {
		return nil
	}
	values := set.Values()
	out := make([]Pair, len(values))
	for i, v := range values {
		out[i] = v.(Pair)
	}
	return out
}

// UnitParents returns the non-terminals with a unit rule rewriting to
// terminal.
func (g *Grammar) UnitParents(terminal symbol.Symbol) []symbol.Symbol {
	return symbolsOf(g.unitParents[terminal])
}

// SuccessorsAfter returns the symbols that appear right after base in
// some binary rule.
func (g *Grammar) SuccessorsAfter(base symbol.Symbol) []symbol.Symbol {
	return symbolsOf(g.successors[base])
}

// CanFollow reports whether suffix is one of SuccessorsAfter(base).
func (g *Grammar) CanFollow(base, suffix symbol.Symbol) bool {
	set, ok := g.successors[base]
	return ok && set.Contains(suffix)
}

// BinaryParents returns the non-terminals with a binary rule whose right
// side is exactly (base, suffix).
func (g *Grammar) BinaryParents(base, suffix symbol.Symbol) []symbol.Symbol {
	return symbolsOf(g.binaryParents[Pair{First: base, Second: suffix}])
}

// Name resolves sym through g's interner.
func (g *Grammar) Name(sym symbol.Symbol) string {
	return g.in.Resolve(sym)
}

// String renders g as EBNF, one production per non-terminal, start
// production first. LoadEBNF reads the output back only when every
// non-terminal is reachable from the start symbol.
func (g *Grammar) String() string {
	order := []symbol.Symbol{g.start}
	for _, nt := range g.NonTerminals() {
		if nt != g.start {
			order = append(order, nt)
		}
	}

	var b strings.Builder
	for _, nt := range order {
		var alts []string
		for _, r := range g.rules {
			if r.Left != nt {
				continue
			}
			if r.IsUnit() {
				alts = append(alts, strconv.Quote(g.Name(r.Right[0])))
			} else {
				alts = append(alts, g.Name(r.Right[0])+" "+g.Name(r.Right[1]))
			}
		}
		if len(alts) == 0 {
			fmt.Fprintf(&b, "%s = .\n", g.Name(nt))
			continue
		}
		fmt.Fprintf(&b, "%s = %s .\n", g.Name(nt), strings.Join(alts, " | "))
	}
	return b.String()
}
