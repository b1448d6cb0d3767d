// cmd/leagus/output.go
package main

import (
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/codr1/leagus/internal/models"
)

func writeTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetBorders(tablewriter.Border{
		Left:   false,
		Right:  false,
		Top:    true,
		Bottom: true,
	})
	table.AppendBulk(rows)
	table.Render()
}

func formatDay(t time.Time) string {
	return t.UTC().Format(models.SeasonDateLayout)
}
