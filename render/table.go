// Package render draws interpreter output: markdown tables on a writer
// and HTML charts on disk.
package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/BuchardsVault/ChartFlow/model"
)

type TableRenderer struct {
	out io.Writer
}

func NewTableRenderer(out io.Writer) *TableRenderer {
	return &TableRenderer{out: out}
}

// RenderTable prints the title line followed by a markdown table.
func (r *TableRenderer) RenderTable(t model.Table) error {
	if _, err := fmt.Fprintln(r.out, t.Title); err != nil {
		return err
	}

	w := table.NewWriter()
	w.SetOutputMirror(r.out)
	w.AppendHeader(toRow(t.Headers))
	rows := make([]table.Row, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = toRow(row)
	}
	w.AppendRows(rows)
	w.RenderMarkdown()

	_, err := fmt.Fprintln(r.out)
	return err
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}
