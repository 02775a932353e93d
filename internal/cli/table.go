package cli

import (
	"strings"
	"unicode/utf8"
)

// columnGap separates adjacent columns.
const columnGap = "  "

// Table renders rows as left-aligned columns under a dashed header rule.
// Widths are measured in runes, so headers such as "Min ΔE" line up.
type Table struct {
	headers   []string
	rows      [][]string
	maxWidths map[int]int
}

// NewTable creates a table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:   headers,
		maxWidths: make(map[int]int),
	}
}

// SetColumnMaxWidth wraps cells in column col at word boundaries to fit width.
func (t *Table) SetColumnMaxWidth(col, width int) {
	t.maxWidths[col] = width
}

// AddRow appends a row, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	cells := make([]string, len(t.headers))
	copy(cells, row)
	t.rows = append(t.rows, cells)
}

// Render formats the table. An empty header list renders nothing.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = utf8.RuneCountInString(h)
	}

	// cells[row][col] holds the wrapped lines of one cell.
	cells := make([][][]string, len(t.rows))
	for r, row := range t.rows {
		cells[r] = make([][]string, len(row))
		for c, cell := range row {
			lines := []string{cell}
			if limit := t.maxWidths[c]; limit > 0 {
				lines = wrapText(cell, limit)
			}
			cells[r][c] = lines
			for _, line := range lines {
				widths[c] = max(widths[c], utf8.RuneCountInString(line))
			}
		}
	}

	var b strings.Builder
	writeLine := func(parts []string) {
		for i, p := range parts {
			if i > 0 {
				b.WriteString(columnGap)
			}
			if i == len(parts)-1 {
				b.WriteString(p)
			} else {
				b.WriteString(padRight(p, widths[i]))
			}
		}
		b.WriteByte('\n')
	}

	writeLine(t.headers)
	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}
	writeLine(rule)

	for _, row := range cells {
		height := 1
		for _, lines := range row {
			height = max(height, len(lines))
		}
		for l := range height {
			parts := make([]string, len(row))
			for c, lines := range row {
				if l < len(lines) {
					parts[c] = lines[l]
				}
			}
			writeLine(parts)
		}
	}

	return b.String()
}

// padRight pads s with spaces to width runes.
func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// wrapText breaks text at word boundaries into lines of at most width runes.
// Words longer than width are split.
func wrapText(text string, width int) []string {
	if width <= 0 || utf8.RuneCountInString(text) <= width {
		return []string{text}
	}

	var lines []string
	var line []rune
	for _, word := range strings.Fields(text) {
		w := []rune(word)
		for len(w) > width {
			if len(line) > 0 {
				lines = append(lines, string(line))
				line = nil
			}
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(line) == 0:
			line = w
		case len(line)+1+len(w) <= width:
			line = append(append(line, ' '), w...)
		default:
			lines = append(lines, string(line))
			line = w
		}
	}
	if len(line) > 0 {
		lines = append(lines, string(line))
	}
	return lines
}
