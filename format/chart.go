package format

import (
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/cyk/grammar"
	"github.com/dhamidi/cyk/parse"
	"github.com/olekukonko/tablewriter"
)

// ChartEncoder renders a CYK chart as a triangular table: one column per
// input character, one row per span length, longest spans first. Each
// cell lists the kinds committed for the span starting at that column.
type ChartEncoder struct {
	w       io.Writer
	grammar *grammar.Grammar
}

func NewChartEncoder(w io.Writer, g *grammar.Grammar) *ChartEncoder {
	return &ChartEncoder{w: w, grammar: g}
}

func (e *ChartEncoder) Encode(chart *parse.Chart) error {
	n := chart.Len()

	header := make([]string, n+1)
	header[0] = "len"
	for i, r := range chart.Input() {
		header[i+1] = string(r)
	}

	var rows [][]string
	for length := n; length >= 1; length-- {
		row := make([]string, n+1)
		row[0] = strconv.Itoa(length)
		for start := 0; start < n; start++ {
			row[start+1] = e.cell(chart, parse.Span{Start: start, Len: length})
		}
		rows = append(rows, row)
	}

	table := tablewriter.NewWriter(e.w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("  ")
	table.AppendBulk(rows)
	table.Render()
	return nil
}

func (e *ChartEncoder) cell(chart *parse.Chart, span parse.Span) string {
	if span.End() > chart.Len() {
		return ""
	}
	cell, ok := chart.Cell(span)
	if !ok {
		return "-"
	}
	names := make([]string, 0, cell.Len())
	for _, node := range cell.Nodes() {
		names = append(names, e.grammar.Name(node.Kind))
	}
	return strings.Join(names, ",")
}
