package report

import (
	"strings"

	"github.com/olekukonko/tablewriter"
)

// RenderTable lays header and rows out as a bordered table. Cells may span
// several lines and carry ANSI styles.
func RenderTable(header []string, rows [][]string) string {
	var buf strings.Builder

	table := tablewriter.NewWriter(&buf)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetRowLine(true)
	table.AppendBulk(rows)
	table.Render()

	return buf.String()
}
