package rst

import (
	"strings"
	"unicode/utf8"
)

// Align is the horizontal alignment of a table column.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// DefaultTableWidth bounds the total width of generated grid tables.
const DefaultTableWidth = 512

// GridTable builds an RST grid table without a header row. Every row,
// including the last, is closed by a rule line.
type GridTable struct {
	aligns   []Align
	maxWidth int
	rows     [][]string
}

// NewGridTable returns a table with one column per alignment. A maxWidth of
// zero or less selects DefaultTableWidth.
func NewGridTable(maxWidth int, aligns ...Align) *GridTable {
	if maxWidth <= 0 {
		maxWidth = DefaultTableWidth
	}
	return &GridTable{aligns: aligns, maxWidth: maxWidth}
}

// AddRow appends a row. Missing cells are empty; extra cells are dropped.
func (t *GridTable) AddRow(cells ...string) {
	row := make([]string, len(t.aligns))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Len returns the number of rows.
func (t *GridTable) Len() int { return len(t.rows) }

// String draws the table. A table without rows draws as the empty string.
func (t *GridTable) String() string {
	if len(t.rows) == 0 || len(t.aligns) == 0 {
		return ""
	}

	widths := t.columnWidths()
	rule := ruleLine(widths)

	var b strings.Builder
	b.WriteString(rule)
	for _, row := range t.rows {
		wrapped := make([][]string, len(row))
		height := 1
		for i, cell := range row {
			wrapped[i] = wrapCell(cell, widths[i])
			height = max(height, len(wrapped[i]))
		}
		for line := 0; line < height; line++ {
			b.WriteString("\n|")
			for i, lines := range wrapped {
				text := ""
				if line < len(lines) {
					text = lines[line]
				}
				b.WriteByte(' ')
				b.WriteString(pad(text, widths[i], t.aligns[i]))
				b.WriteString(" |")
			}
		}
		b.WriteByte('\n')
		b.WriteString(rule)
	}
	return b.String()
}

// columnWidths sizes each column to its longest cell line, then narrows the
// widest columns until the table fits maxWidth.
func (t *GridTable) columnWidths() []int {
	widths := make([]int, len(t.aligns))
	for _, row := range t.rows {
		for i, cell := range row {
			for _, line := range strings.Split(cell, "\n") {
				widths[i] = max(widths[i], utf8.RuneCountInString(line))
			}
		}
	}
	for i := range widths {
		widths[i] = max(widths[i], 1)
	}

	overhead := 3*len(widths) + 1
	for total(widths)+overhead > t.maxWidth {
		widest := 0
		for i, w := range widths {
			if w > widths[widest] {
				widest = i
			}
		}
		if widths[widest] == 1 {
			break
		}
		widths[widest]--
	}
	return widths
}

func total(widths []int) int {
	n := 0
	for _, w := range widths {
		n += w
	}
	return n
}

func ruleLine(widths []int) string {
	var b strings.Builder
	b.WriteByte('+')
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteByte('+')
	}
	return b.String()
}

func pad(text string, width int, align Align) string {
	gap := strings.Repeat(" ", max(width-utf8.RuneCountInString(text), 0))
	if align == AlignRight {
		return gap + text
	}
	return text + gap
}

// wrapCell splits cell into lines no wider than width, breaking on spaces
// and hard-splitting words that do not fit on a line of their own.
func wrapCell(cell string, width int) []string {
	var out []string
	for _, para := range strings.Split(cell, "\n") {
		if utf8.RuneCountInString(para) <= width {
			out = append(out, para)
			continue
		}
		line := ""
		for _, word := range strings.Fields(para) {
			for utf8.RuneCountInString(word) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				runes := []rune(word)
				out = append(out, string(runes[:width]))
				word = string(runes[width:])
			}
			switch {
			case line == "":
				line = word
			case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) <= width:
				line += " " + word
			default:
				out = append(out, line)
				line = word
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
