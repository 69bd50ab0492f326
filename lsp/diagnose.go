package lsp

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/dhamidi/cyk/parse"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const source = "cyk"

// Diagnose parses every non-blank line of text as one input and reports
// what went wrong. Unknown characters are reported individually; a line
// that only fails structurally is reported as a whole.
func Diagnose(p *parse.Parser, text string) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	for i, line := range lines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		_, err := p.Parse(line)
		if err == nil {
			continue
		}
		diagnostics = append(diagnostics, lineDiagnostics(protocol.UInteger(i), line, err)...)
	}
	return diagnostics
}

func lineDiagnostics(lineNo protocol.UInteger, line string, err error) []protocol.Diagnostic {
	if diags := parse.Diagnostics(err); len(diags) > 0 {
		out := make([]protocol.Diagnostic, 0, len(diags))
		for _, d := range diags {
			start := utf16Len(line[:d.ByteOffset])
			out = append(out, newDiagnostic(
				protocol.Range{
					Start: protocol.Position{Line: lineNo, Character: start},
					End:   protocol.Position{Line: lineNo, Character: start + protocol.UInteger(utf16.RuneLen(d.Char))},
				},
				"unexpected character "+strconv.QuoteRune(d.Char),
			))
		}
		return out
	}

	message := err.Error()
	switch {
	case errors.Is(err, parse.ErrNoDerivation):
		message = "line does not derive from the start symbol"
	case errors.Is(err, parse.ErrInputTooLong):
		message = "line is too long to parse"
	}
	return []protocol.Diagnostic{newDiagnostic(
		protocol.Range{
			Start: protocol.Position{Line: lineNo, Character: 0},
			End:   protocol.Position{Line: lineNo, Character: utf16Len(line)},
		},
		message,
	)}
}

func newDiagnostic(r protocol.Range, message string) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	src := source
	return protocol.Diagnostic{
		Range:    r,
		Severity: &severity,
		Source:   &src,
		Message:  message,
	}
}

// lines splits text on "\n" and drops a trailing "\r" from each line.
func lines(text string) []string {
	out := strings.Split(text, "\n")
	for i, l := range out {
		out[i] = strings.TrimSuffix(l, "\r")
	}
	return out
}

// utf16Len counts s in UTF-16 code units, the unit LSP positions use.
func utf16Len(s string) protocol.UInteger {
	var n protocol.UInteger
	for _, r := range s {
		n += protocol.UInteger(utf16.RuneLen(r))
	}
	return n
}
