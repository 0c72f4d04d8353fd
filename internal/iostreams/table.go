package iostreams

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

// TablePrinter renders tabular data to IOStreams.Out.
// On a color TTY it renders a bold header and a divider. When piped it uses
// plain tabwriter output for machine-friendly parsing.
type TablePrinter struct {
	ios     *IOStreams
	headers []string
	rows    [][]string
}

// NewTablePrinter creates a new table printer with the given column headers.
func (s *IOStreams) NewTablePrinter(headers ...string) *TablePrinter {
	return &TablePrinter{ios: s, headers: headers}
}

// AddRow adds a data row. Missing columns render empty.
func (tp *TablePrinter) AddRow(cols ...string) {
	tp.rows = append(tp.rows, cols)
}

// Len returns the number of data rows.
func (tp *TablePrinter) Len() int {
	return len(tp.rows)
}

// Render writes the table to the IOStreams output.
func (tp *TablePrinter) Render() error {
	if len(tp.headers) == 0 {
		return nil
	}
	if tp.ios.IsOutputTTY() && tp.ios.ColorEnabled() {
		return tp.renderStyled()
	}
	return tp.renderPlain()
}

func (tp *TablePrinter) renderPlain() error {
	w := tabwriter.NewWriter(tp.ios.Out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, strings.Join(tp.headers, "\t"))
	for _, row := range tp.rows {
		fmt.Fprintln(w, strings.Join(tp.normalizeRow(row), "\t"))
	}
	return w.Flush()
}

func (tp *TablePrinter) renderStyled() error {
	const gap = 2

	// Size each column to its widest cell, shrinking the last column to fit.
	widths := make([]int, len(tp.headers))
	for i, h := range tp.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range tp.rows {
		for i, col := range tp.normalizeRow(row) {
			widths[i] = max(widths[i], lipgloss.Width(col))
		}
	}
	total := gap * (len(widths) - 1)
	for _, w := range widths[:len(widths)-1] {
		total += w
	}
	last := len(widths) - 1
	widths[last] = max(min(widths[last], tp.ios.TerminalWidth()-total), 1)

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	spacing := strings.Repeat(" ", gap)

	line := func(cols []string, style lipgloss.Style) string {
		parts := make([]string, len(cols))
		for i, col := range cols {
			parts[i] = style.Width(widths[i]).Render(truncate(col, widths[i]))
		}
		return strings.Join(parts, spacing)
	}

	if _, err := fmt.Fprintln(tp.ios.Out, line(tp.headers, headerStyle)); err != nil {
		return err
	}

	dividers := make([]string, len(widths))
	for i, w := range widths {
		dividers[i] = strings.Repeat("─", w)
	}
	if _, err := fmt.Fprintln(tp.ios.Out, mutedStyle.Render(strings.Join(dividers, spacing))); err != nil {
		return err
	}

	for _, row := range tp.rows {
		if _, err := fmt.Fprintln(tp.ios.Out, line(tp.normalizeRow(row), lipgloss.NewStyle())); err != nil {
			return err
		}
	}
	return nil
}

func (tp *TablePrinter) normalizeRow(row []string) []string {
	cols := make([]string, len(tp.headers))
	copy(cols, row)
	return cols
}

// truncate shortens s to width display cells, marking the cut with "…".
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
