package server

import "github.com/dhamidi/cyk/format"

type ParseRequest struct {
	Grammar string `json:"grammar" binding:"required"`
	Input   string `json:"input"`
	Format  string `json:"format,omitempty"`
}

// ParseResponse carries Tree for the json format and Output for the
// textual formats.
type ParseResponse struct {
	Grammar string           `json:"grammar"`
	Tree    *format.JSONNode `json:"tree,omitempty"`
	Output  string           `json:"output,omitempty"`
}

type ErrorResponse struct {
	Error       string       `json:"error"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

type Diagnostic struct {
	Char       string `json:"char"`
	Offset     int    `json:"offset"`
	ByteOffset int    `json:"byteOffset"`
}

type GrammarSummary struct {
	Name  string `json:"name"`
	Start string `json:"start"`
	Rules int    `json:"rules"`
}

type ListResponse struct {
	Grammars []GrammarSummary `json:"grammars"`
}

type ShowResponse struct {
	GrammarSummary
	Terminals    []string `json:"terminals"`
	NonTerminals []string `json:"nonTerminals"`
	EBNF         string   `json:"ebnf"`
}
