// Package server exposes grammars and parsing over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/dhamidi/cyk/format"
	"github.com/dhamidi/cyk/grammar"
	"github.com/dhamidi/cyk/parse"
	"github.com/dhamidi/cyk/symbol"
	"github.com/gin-gonic/gin"
	"github.com/tliron/commonlog"
)

type Server struct {
	names   []string
	parsers map[string]*parse.Parser
	log     commonlog.Logger
}

// New serves the given grammars under their map keys. Inputs longer than
// maxInput characters are rejected; zero means unlimited.
func New(grammars map[string]*grammar.Grammar, maxInput int) *Server {
	s := &Server{
		parsers: make(map[string]*parse.Parser, len(grammars)),
		log:     commonlog.GetLogger("cyk.server"),
	}
	for name, g := range grammars {
		s.names = append(s.names, name)
		s.parsers[name] = parse.NewParser(g, parse.WithMaxInput(maxInput))
	}
	slices.Sort(s.names)
	return s
}

func (s *Server) GenerateRoutes() http.Handler {
	r := gin.Default()

	r.GET("/api/grammars", s.ListHandler)
	r.GET("/api/grammars/:name", s.ShowHandler)
	r.POST("/api/parse", s.ParseHandler)

	return r
}

func (s *Server) ListHandler(c *gin.Context) {
	resp := ListResponse{Grammars: []GrammarSummary{}}
	for _, name := range s.names {
		resp.Grammars = append(resp.Grammars, summarize(name, s.parsers[name].Grammar()))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) ShowHandler(c *gin.Context) {
	name := c.Param("name")
	p, ok := s.parsers[name]
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "grammar '" + name + "' not found"})
		return
	}
	g := p.Grammar()
	c.JSON(http.StatusOK, ShowResponse{
		GrammarSummary: summarize(name, g),
		Terminals:      names(g, g.Terminals()),
		NonTerminals:   names(g, g.NonTerminals()),
		EBNF:           g.String(),
	})
}

func (s *Server) ParseHandler(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if req.Format == "" {
		req.Format = "json"
	}
	if !slices.Contains(format.Formats, req.Format) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown format: " + req.Format})
		return
	}

	p, ok := s.parsers[req.Grammar]
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "grammar '" + req.Grammar + "' not found"})
		return
	}

	tree, err := p.Parse(req.Input)
	if err != nil {
		s.log.Debugf("parse %s: %s", req.Grammar, err)
		status := http.StatusUnprocessableEntity
		if errors.Is(err, parse.ErrInputTooLong) {
			status = http.StatusRequestEntityTooLarge
		}
		c.JSON(status, errorResponse(err))
		return
	}

	resp := ParseResponse{Grammar: req.Grammar}
	if req.Format == "json" {
		resp.Tree = format.Tree(p.Grammar(), tree)
	} else {
		var buf bytes.Buffer
		enc, err := format.NewEncoder(req.Format, &buf, p.Grammar())
		if err == nil {
			err = enc.Encode(tree)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}
		resp.Output = buf.String()
	}
	c.JSON(http.StatusOK, resp)
}

func errorResponse(err error) ErrorResponse {
	resp := ErrorResponse{Error: err.Error()}
	for _, d := range parse.Diagnostics(err) {
		resp.Diagnostics = append(resp.Diagnostics, Diagnostic{
			Char:       string(d.Char),
			Offset:     d.Offset,
			ByteOffset: d.ByteOffset,
		})
	}
	return resp
}

func summarize(name string, g *grammar.Grammar) GrammarSummary {
	return GrammarSummary{
		Name:  name,
		Start: g.Name(g.Start()),
		Rules: len(g.Rules()),
	}
}

func names(g *grammar.Grammar, syms []symbol.Symbol) []string {
	out := make([]string, len(syms))
	for i, sym := range syms {
		out[i] = g.Name(sym)
	}
	return out
}

// Serve answers requests on ln until ctx is done, then shuts down.
func Serve(ctx context.Context, ln net.Listener, s *Server) error {
	srv := &http.Server{
		Handler:           s.GenerateRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
