package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"pdfbib/internal/app"
)

// renderSummary formats the end-of-run counters as a small table.
func renderSummary(s app.Summary) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"documents", "matched", "no match", "errors", "review"})
	tw.AppendRow(table.Row{
		strconv.Itoa(s.Documents),
		strconv.Itoa(s.Matched),
		strconv.Itoa(s.NoMatch),
		strconv.Itoa(s.Errors),
		strconv.Itoa(s.Review),
	})

	configs := make([]table.ColumnConfig, 0, 5)
	for i := 1; i <= 5; i++ {
		configs = append(configs, table.ColumnConfig{
			Number:      i,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}
