// Package render previews extracted statement tables on the terminal.
package render

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	invtable "github.com/felixxvo7/Investing-AI-Agent/pkg/invest/table"
)

// Renderer renders one statement under a title.
type Renderer interface {
	Render(w io.Writer, title string, st *invtable.Statement) error
}

// TableRenderer prints a compact colored table, numeric columns
// right-aligned.
type TableRenderer struct {
	MaxColWidth int
}

func NewTableRenderer() *TableRenderer { return &TableRenderer{} }

func (r *TableRenderer) Render(w io.Writer, title string, st *invtable.Statement) error {
	if strings.TrimSpace(title) != "" {
		if _, err := io.WriteString(w, text.Bold.Sprint(strings.ToUpper(title))+"\n"); err != nil {
			return err
		}
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleColoredDark)
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.SeparateColumns = false

	hdr := make(table.Row, 0, len(st.Periods)+1)
	hdr = append(hdr, strings.ToUpper(invtable.MetricsColumn))
	for _, p := range st.Periods {
		hdr = append(hdr, strings.ToUpper(p))
	}
	tw.AppendHeader(hdr)

	maxWidth := r.MaxColWidth
	if maxWidth <= 0 {
		maxWidth = 40
	}
	cfgs := make([]table.ColumnConfig, 0, len(st.Periods)+1)
	cfgs = append(cfgs, table.ColumnConfig{Number: 1, WidthMax: maxWidth})
	for i := range st.Periods {
		cfgs = append(cfgs, table.ColumnConfig{
			Number:      i + 2,
			WidthMax:    maxWidth,
			Align:       text.AlignRight,
			AlignHeader: text.AlignRight,
		})
	}
	tw.SetColumnConfigs(cfgs)

	for _, it := range st.Items {
		row := make(table.Row, 0, len(it.Values)+1)
		row = append(row, it.Name)
		for _, v := range it.Values {
			row = append(row, v.String())
		}
		tw.AppendRow(row)
	}

	tw.Render()
	return nil
}
