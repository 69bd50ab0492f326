package grammar

import (
	"errors"

	"github.com/dhamidi/cyk/symbol"
)

// BinaryRule is the declaration of Left -> First Second.
type BinaryRule struct {
	Left   string
	First  string
	Second string
}

// UnitRule is the declaration of Left -> Terminal.
type UnitRule struct {
	Left     string
	Terminal string
}

// Definition is the unvalidated description of a grammar.
type Definition struct {
	Start        string
	Terminals    []string
	NonTerminals []string
	Binary       []BinaryRule
	Unit         []UnitRule
}

// New validates def and builds a Grammar whose symbols are interned in
// in. Every inconsistency is reported; the returned error joins one
// *ValidationError per problem.
func New(in *symbol.Interner, def Definition) (*Grammar, error) {
	var problems []error
	report := func(err error, name, rule string) {
		problems = append(problems, &ValidationError{Err: err, Symbol: name, Rule: rule})
	}

	terminals := make(map[string]bool, len(def.Terminals))
	for _, name := range def.Terminals {
		if name == "" {
			report(ErrMalformedRule, name, "")
			continue
		}
		terminals[name] = true
	}
	nonTerminals := make(map[string]bool, len(def.NonTerminals))
	for _, name := range def.NonTerminals {
		if name == "" {
			report(ErrMalformedRule, name, "")
			continue
		}
		if terminals[name] && !nonTerminals[name] {
			report(ErrDuplicateDeclaration, name, "")
		}
		nonTerminals[name] = true
	}

	if !nonTerminals[def.Start] {
		report(ErrStartNotNonTerminal, def.Start, "")
	}

	declared := func(name string) bool {
		return terminals[name] || nonTerminals[name]
	}

	for _, r := range def.Unit {
		rule := formatRule(r.Left, []string{r.Terminal})
		if !nonTerminals[r.Left] {
			report(ErrUndeclaredLeft, r.Left, rule)
		}
		switch {
		case !declared(r.Terminal):
			report(ErrUndeclaredSymbol, r.Terminal, rule)
		case !terminals[r.Terminal]:
			report(ErrMalformedRule, r.Terminal, rule)
		}
	}

	for _, r := range def.Binary {
		rule := formatRule(r.Left, []string{r.First, r.Second})
		if !nonTerminals[r.Left] {
			report(ErrUndeclaredLeft, r.Left, rule)
		}
		for _, name := range []string{r.First, r.Second} {
			switch {
			case !declared(name):
				report(ErrUndeclaredSymbol, name, rule)
			case !nonTerminals[name]:
				report(ErrMalformedRule, name, rule)
			}
		}
	}

	if len(problems) > 0 {
		return nil, errors.Join(problems...)
	}

	g := newGrammar(in, in.Intern(def.Start))
	for _, name := range def.Terminals {
		g.terminals.Add(in.Intern(name))
	}
	for _, name := range def.NonTerminals {
		g.nonTerminals.Add(in.Intern(name))
	}
	for _, r := range def.Unit {
		g.addUnit(in.Intern(r.Left), in.Intern(r.Terminal))
	}
	for _, r := range def.Binary {
		g.addBinary(in.Intern(r.Left), in.Intern(r.First), in.Intern(r.Second))
	}
	return g, nil
}

// Builder assembles a Definition rule by rule.
//
//	g, err := grammar.NewBuilder(in).
//		Start("Number").
//		NonTerminals("Number", "Integer", "Digit").
//		Terminals("0", "1").
//		Rule("Number", "0").
//		Rule("Number", "Integer", "Digit").
//		Build()
type Builder struct {
	in       *symbol.Interner
	def      Definition
	problems []error
}

func NewBuilder(in *symbol.Interner) *Builder {
	return &Builder{in: in}
}

func (b *Builder) Start(name string) *Builder {
	b.def.Start = name
	return b
}

func (b *Builder) Terminals(names ...string) *Builder {
	b.def.Terminals = append(b.def.Terminals, names...)
	return b
}

func (b *Builder) NonTerminals(names ...string) *Builder {
	b.def.NonTerminals = append(b.def.NonTerminals, names...)
	return b
}

// Rule adds left -> right. One right-hand symbol makes a unit rule, two
// make a binary rule; any other length is reported by Build.
func (b *Builder) Rule(left string, right ...string) *Builder {
	switch len(right) {
	case 1:
		b.def.Unit = append(b.def.Unit, UnitRule{Left: left, Terminal: right[0]})
	case 2:
		b.def.Binary = append(b.def.Binary, BinaryRule{Left: left, First: right[0], Second: right[1]})
	default:
		b.problems = append(b.problems, &ValidationError{
			Err:    ErrMalformedRule,
			Symbol: left,
			Rule:   formatRule(left, right),
		})
	}
	return b
}

// Definition returns a copy of what has been declared so far.
func (b *Builder) Definition() Definition {
	def := b.def
	def.Terminals = append([]string(nil), b.def.Terminals...)
	def.NonTerminals = append([]string(nil), b.def.NonTerminals...)
	def.Binary = append([]BinaryRule(nil), b.def.Binary...)
	def.Unit = append([]UnitRule(nil), b.def.Unit...)
	return def
}

func (b *Builder) Build() (*Grammar, error) {
	g, err := New(b.in, b.def)
	if len(b.problems) > 0 {
		return nil, errors.Join(append(append([]error(nil), b.problems...), err)...)
	}
	return g, err
}
