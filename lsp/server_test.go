package lsp

import (
	"testing"

	"github.com/dhamidi/cyk/grammar"
	"github.com/dhamidi/cyk/parse"
	"github.com/dhamidi/cyk/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func pairParser(t *testing.T) *parse.Parser {
	t.Helper()
	g, err := grammar.NewBuilder(symbol.New()).
		Start("S").
		Terminals("a", "b").
		NonTerminals("S", "A", "B").
		Rule("S", "A", "B").
		Rule("A", "a").
		Rule("B", "b").
		Build()
	require.NoError(t, err)
	return parse.NewParser(g, parse.WithMaxInput(8))
}

func span(line, start, end protocol.UInteger) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: line, Character: start},
		End:   protocol.Position{Line: line, Character: end},
	}
}

func TestDiagnose(t *testing.T) {
	p := pairParser(t)

	tests := []struct {
		name    string
		text    string
		ranges  []protocol.Range
		message string
	}{
		{"valid line", "ab", nil, ""},
		{"blank lines are skipped", "ab\n\n  \nab\n", nil, ""},
		{"unknown character", "ax", []protocol.Range{span(0, 1, 2)}, "unexpected character 'x'"},
		{"every unknown character", "xy", []protocol.Range{span(0, 0, 1), span(0, 1, 2)}, "unexpected character 'x'"},
		{"structural failure covers the line", "ab\nba", []protocol.Range{span(1, 0, 2)}, "line does not derive from the start symbol"},
		{"carriage return is not input", "ab\r\nba\r\n", []protocol.Range{span(1, 0, 2)}, "line does not derive from the start symbol"},
		{"utf-16 columns", "😀x", []protocol.Range{span(0, 0, 2), span(0, 2, 3)}, "unexpected character '😀'"},
		{"too long", "abababababab", []protocol.Range{span(0, 0, 12)}, "line is too long to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diagnose(p, tt.text)
			require.NotNil(t, got)
			require.Len(t, got, len(tt.ranges))
			for i, d := range got {
				assert.Equal(t, tt.ranges[i], d.Range)
				require.NotNil(t, d.Severity)
				assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
				require.NotNil(t, d.Source)
				assert.Equal(t, "cyk", *d.Source)
			}
			if len(got) > 0 {
				assert.Equal(t, tt.message, got[0].Message)
			}
		})
	}
}

type published struct {
	method string
	params protocol.PublishDiagnosticsParams
}

func recordingContext(out *[]published) *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			*out = append(*out, published{method: method, params: params.(protocol.PublishDiagnosticsParams)})
		},
	}
}

func TestServerDocumentLifecycle(t *testing.T) {
	ls := NewServer(pairParser(t), "test")
	var notes []published
	ctx := recordingContext(&notes)
	const uri = "file:///tmp/inputs.txt"

	require.NoError(t, ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "plaintext", Version: 1, Text: "ab\nax"},
	}))
	require.Len(t, notes, 1)
	assert.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, notes[0].method)
	assert.Equal(t, protocol.DocumentUri(uri), notes[0].params.URI)
	require.Len(t, notes[0].params.Diagnostics, 1)
	assert.Equal(t, span(1, 1, 2), notes[0].params.Diagnostics[0].Range)

	require.NoError(t, ls.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument:   protocol.VersionedTextDocumentIdentifier{TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri}, Version: 2},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "ab\nab"}},
	}))
	require.Len(t, notes, 2)
	assert.Empty(t, notes[1].params.Diagnostics)

	hover, err := ls.textDocumentHover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: 1, Character: 0},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, hover)
	content, ok := hover.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Contains(t, content.Value, "(S\n  (A \"a\")\n  (B \"b\"))")

	require.NoError(t, ls.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))
	require.Len(t, notes, 3)
	assert.NotNil(t, notes[2].params.Diagnostics)
	assert.Empty(t, notes[2].params.Diagnostics)

	hover, err = ls.textDocumentHover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, hover)
}

func TestServerSaveWithoutText(t *testing.T) {
	ls := NewServer(pairParser(t), "test")
	var notes []published

	require.NoError(t, ls.textDocumentDidSave(recordingContext(&notes), &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///tmp/x.txt"},
	}))
	assert.Empty(t, notes)
}
