package migrate

import (
	"fmt"
	"strings"
)

// renderTable prints a fixed-width console table in the style of the
// probe summary reports.
func (r *Runner) renderTable(title string, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	// Keep wide cells (index definitions) from blowing out the layout.
	const maxWidth = 60
	for i := range widths {
		if widths[i] > maxWidth {
			widths[i] = maxWidth
		}
	}

	total := len(widths)*3 + 1
	for _, w := range widths {
		total += w
	}

	fmt.Fprintf(r.out, "\n%s\n%s\n", title, strings.Repeat("=", total))
	r.renderRow(headers, widths)
	fmt.Fprintln(r.out, strings.Repeat("-", total))
	if len(rows) == 0 {
		fmt.Fprintln(r.out, "(none)")
	}
	for _, row := range rows {
		r.renderRow(row, widths)
	}
	fmt.Fprintln(r.out, strings.Repeat("=", total))
}

func (r *Runner) renderRow(cells []string, widths []int) {
	parts := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if len(cell) > widths[i] {
			cell = cell[:widths[i]-3] + "..."
		}
		parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
	}
	fmt.Fprintf(r.out, "| %s |\n", strings.Join(parts, " | "))
}
