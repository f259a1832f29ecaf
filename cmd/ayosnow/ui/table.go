package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders small static datasets (history, performance) as aligned
// columns. Not interactive; selection-style lists use their own views.
type Table struct {
	Headers []string
	Rows    [][]string
}

// AddRow appends a row.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// View renders the table with the given styles. Empty tables render
// nothing so callers can show their own empty states.
func (t Table) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	headerStyle := styles.Bold.Padding(0, 1)
	cellStyle := styles.Body.Padding(0, 1)

	var sb strings.Builder
	total := 0
	for i, h := range t.Headers {
		w := widths[i] + 2
		sb.WriteString(headerStyle.Width(w).Render(h))
		total += w
	}
	sb.WriteString("\n")
	sb.WriteString(styles.Divider.Render(strings.Repeat("─", total)))
	sb.WriteString("\n")

	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				sb.WriteString(cellStyle.Width(widths[i] + 2).Render(cell))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
