package grammar

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/cyk/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_NumberGrammar(t *testing.T) {
	for _, file := range []string{"number.ebnf", "number.yaml"} {
		t.Run(file, func(t *testing.T) {
			in := symbol.New()
			g, err := LoadFile(in, filepath.Join("testdata", file), "")
			require.NoError(t, err)

			want, err := numberBuilder(symbol.New()).Build()
			require.NoError(t, err)

			assert.Equal(t, "Number", g.Name(g.Start()))
			assert.ElementsMatch(t, names(want, want.Terminals()), names(g, g.Terminals()))
			assert.ElementsMatch(t, names(want, want.NonTerminals()), names(g, g.NonTerminals()))
			assert.Len(t, g.Rules(), len(want.Rules()))

			integer, fraction := sym(t, in, "Integer"), sym(t, in, "Fraction")
			assert.Equal(t, []string{"Number", "N1"}, names(g, g.BinaryParents(integer, fraction)))
			assert.Equal(t, []string{"Number", "Integer", "Digit"}, names(g, g.UnitParents(sym(t, in, "5"))))
		})
	}
}

func TestLoadFile_JSON(t *testing.T) {
	in := symbol.New()
	g, err := LoadFile(in, filepath.Join("testdata", "number.json"), "")
	require.NoError(t, err)

	assert.Equal(t, "Number", g.Name(g.Start()))
	assert.Len(t, g.Rules(), 32)
}

func TestLoadFile_StartOverride(t *testing.T) {
	in := symbol.New()
	g, err := LoadFile(in, filepath.Join("testdata", "number.yaml"), "Integer")
	require.NoError(t, err)
	assert.Equal(t, "Integer", g.Name(g.Start()))
}

func TestLoadFile_Unsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grammar.toml")
	require.NoError(t, os.WriteFile(path, []byte("start = 'S'"), 0o644))

	_, err := LoadFile(symbol.New(), path, "")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(symbol.New(), filepath.Join("testdata", "nope.ebnf"), "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadEBNF_RejectsNonCNF(t *testing.T) {
	_, err := LoadFile(symbol.New(), filepath.Join("testdata", "options.ebnf"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRule)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "List", verr.Symbol)
	assert.Contains(t, verr.Pos, "options.ebnf:1:")
}

func TestLoadEBNF(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		start   string
		wantErr error
	}{
		{
			name: "range expands to unit rules",
			src:  `Letter = "a" … "c" .`,
		},
		{
			name:    "multi-character token",
			src:     `S = "ab" .`,
			wantErr: ErrMalformedRule,
		},
		{
			name:    "token inside a sequence",
			src:     `S = A "b" . A = "a" .`,
			wantErr: ErrMalformedRule,
		},
		{
			name:    "single name alias",
			src:     `S = A . A = "a" .`,
			wantErr: ErrMalformedRule,
		},
		{
			name:    "repetition",
			src:     `S = { A } . A = "a" .`,
			wantErr: ErrMalformedRule,
		},
		{
			name:  "explicit start",
			src:   `A = "a" . S = A A .`,
			start: "S",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := LoadEBNF(symbol.New(), "test.ebnf", strings.NewReader(tt.src), tt.start)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, g)
		})
	}
}

func TestLoadEBNF_Verify(t *testing.T) {
	// A is unreachable from S.
	_, err := LoadEBNF(symbol.New(), "test.ebnf", strings.NewReader(`S = "s" . A = "a" .`), "S")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verify grammar")
}

func TestLoadEBNF_RangeOrder(t *testing.T) {
	in := symbol.New()
	g, err := LoadEBNF(in, "test.ebnf", strings.NewReader(`Letter = "a" … "c" .`), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, names(g, g.Terminals()))
	assert.Equal(t, []string{"a", "b", "c"}, names(g, g.UnitRules(sym(t, in, "Letter"))))
}

func TestStringRoundTrip(t *testing.T) {
	in := symbol.New()
	g, err := numberBuilder(in).Build()
	require.NoError(t, err)

	back, err := LoadEBNF(symbol.New(), "roundtrip.ebnf", strings.NewReader(g.String()), "")
	require.NoError(t, err)
	assert.Equal(t, g.String(), back.String())
}

func TestStringOfUnreachableNonTerminalDoesNotReload(t *testing.T) {
	g, err := NewBuilder(symbol.New()).
		Start("S").
		Terminals("a").
		NonTerminals("S", "A", "Unused").
		Rule("S", "A", "A").
		Rule("A", "a").
		Rule("Unused", "a").
		Build()
	require.NoError(t, err)

	_, err = LoadEBNF(symbol.New(), "x.ebnf", strings.NewReader(g.String()), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verify grammar")
	assert.Contains(t, err.Error(), "Unused")
}
