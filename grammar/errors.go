package grammar

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrStartNotNonTerminal  = errors.New("start symbol is not a declared non-terminal")
	ErrUndeclaredLeft       = errors.New("rule left side is not a declared non-terminal")
	ErrUndeclaredSymbol     = errors.New("rule references an undeclared symbol")
	ErrDuplicateDeclaration = errors.New("symbol declared as both terminal and non-terminal")
	ErrMalformedRule        = errors.New("rule is not in Chomsky normal form")
	ErrUnsupportedFormat    = errors.New("unsupported grammar file format")
)

// ValidationError describes one inconsistency found while building a
// Grammar. It wraps one of the Err* sentinels above.
type ValidationError struct {
	Err    error
	Symbol string // offending name
	Rule   string // offending rule as "A -> B C", if any
	Pos    string // source position, for grammars loaded from files
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.Pos != "" {
		b.WriteString(e.Pos)
		b.WriteString(": ")
	}
	b.WriteString(e.Err.Error())
	if e.Symbol != "" {
		fmt.Fprintf(&b, " %q", e.Symbol)
	}
	if e.Rule != "" {
		fmt.Fprintf(&b, " in rule %s", e.Rule)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func formatRule(left string, right []string) string {
	quoted := make([]string, len(right))
	for i, r := range right {
		quoted[i] = fmt.Sprintf("%q", r)
	}
	return fmt.Sprintf("%q -> %s", left, strings.Join(quoted, " "))
}
