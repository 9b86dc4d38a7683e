package cli

import (
	"fmt"
	"io"
	"sort"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("|")
	table.SetColumnSeparator("|")
	table.SetRowSeparator("-")
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

// renderMap prints a free-form statistics object as sorted key/value rows.
func renderMap(w io.Writer, m map[string]any) {
	if len(m) == 0 {
		fmt.Fprintln(w, "No data")
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	table := newTable(w, "Metric", "Value")
	for _, k := range keys {
		table.Append([]string{k, truncate(fmt.Sprintf("%v", m[k]), 60)})
	}
	table.Render()
}

// truncate shortens s to at most max characters, ending in "..." when cut.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}

func kcal(v float64) string {
	return fmt.Sprintf("%.0f", v)
}
