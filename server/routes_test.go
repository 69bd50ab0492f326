package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dhamidi/cyk/grammar"
	"github.com/dhamidi/cyk/symbol"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	pair, err := grammar.NewBuilder(symbol.New()).
		Start("S").
		Terminals("a", "b").
		NonTerminals("S", "A", "B").
		Rule("S", "A", "B").
		Rule("A", "a").
		Rule("B", "b").
		Build()
	require.NoError(t, err)

	digit, err := grammar.NewBuilder(symbol.New()).
		Start("Digit").
		Terminals("0", "1").
		NonTerminals("Digit").
		Rule("Digit", "0").
		Rule("Digit", "1").
		Build()
	require.NoError(t, err)

	return New(map[string]*grammar.Grammar{"pair": pair, "digit": digit}, 4)
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var b bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&b).Encode(body))
	}
	req := httptest.NewRequest(method, path, &b)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestListHandler(t *testing.T) {
	h := testServer(t).GenerateRoutes()

	w := do(t, h, http.MethodGet, "/api/grammars", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []GrammarSummary{
		{Name: "digit", Start: "Digit", Rules: 2},
		{Name: "pair", Start: "S", Rules: 3},
	}, resp.Grammars)
}

func TestShowHandler(t *testing.T) {
	h := testServer(t).GenerateRoutes()

	w := do(t, h, http.MethodGet, "/api/grammars/pair", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ShowResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "S", resp.Start)
	assert.Equal(t, []string{"a", "b"}, resp.Terminals)
	assert.Equal(t, []string{"S", "A", "B"}, resp.NonTerminals)
	assert.Contains(t, resp.EBNF, "S = A B .")

	w = do(t, h, http.MethodGet, "/api/grammars/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestParseHandler(t *testing.T) {
	h := testServer(t).GenerateRoutes()

	tests := []struct {
		name   string
		req    any
		status int
		check  func(t *testing.T, body []byte)
	}{
		{
			name:   "json tree",
			req:    ParseRequest{Grammar: "pair", Input: "ab"},
			status: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var resp ParseResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				require.NotNil(t, resp.Tree)
				assert.Equal(t, "S", resp.Tree.Kind)
				assert.Equal(t, "ab", resp.Tree.Text)
				assert.Len(t, resp.Tree.Children, 2)
				assert.Empty(t, resp.Output)
			},
		},
		{
			name:   "tree format",
			req:    ParseRequest{Grammar: "pair", Input: "ab", Format: "tree"},
			status: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var resp ParseResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Nil(t, resp.Tree)
				assert.Equal(t, "(S\n  (A \"a\")\n  (B \"b\"))\n", resp.Output)
			},
		},
		{
			name:   "unknown characters",
			req:    ParseRequest{Grammar: "pair", Input: "aéx"},
			status: http.StatusUnprocessableEntity,
			check: func(t *testing.T, body []byte) {
				var resp ErrorResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, []Diagnostic{
					{Char: "é", Offset: 1, ByteOffset: 1},
					{Char: "x", Offset: 2, ByteOffset: 3},
				}, resp.Diagnostics)
			},
		},
		{
			name:   "no derivation",
			req:    ParseRequest{Grammar: "pair", Input: "ba"},
			status: http.StatusUnprocessableEntity,
			check: func(t *testing.T, body []byte) {
				var resp ErrorResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "parse: input does not derive from the start symbol", resp.Error)
				assert.Empty(t, resp.Diagnostics)
			},
		},
		{
			name:   "empty input",
			req:    ParseRequest{Grammar: "digit"},
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "too long",
			req:    ParseRequest{Grammar: "pair", Input: "ababab"},
			status: http.StatusRequestEntityTooLarge,
		},
		{
			name:   "unknown grammar",
			req:    ParseRequest{Grammar: "nope", Input: "ab"},
			status: http.StatusNotFound,
		},
		{
			name:   "unknown format",
			req:    ParseRequest{Grammar: "pair", Input: "ab", Format: "xml"},
			status: http.StatusBadRequest,
		},
		{
			name:   "missing grammar field",
			req:    map[string]string{"input": "ab"},
			status: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/api/parse", tt.req)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.check != nil {
				tt.check(t, w.Body.Bytes())
			}
		})
	}
}

func TestServeShutsDownWithContext(t *testing.T) {
	s := testServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, ln, s) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/grammars")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	assert.NoError(t, <-done)
}
