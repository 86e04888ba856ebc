package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"mineral-catalog/internal/domains/mineral/model"
)

// Column is one table column; Width counts the cell including its one
// space of left padding.
type Column struct {
	Title string
	Width int
}

// Table renders rows with box-drawing borders. Cells wrap on word
// boundaries and words longer than a cell are split.
type Table struct {
	Columns []Column
}

var compactTable = Table{Columns: []Column{
	{"ID", 6}, {"Name", 25}, {"Class", 20}, {"Formula", 25},
	{"Color", 22}, {"Application", 30}, {"Location", 25}, {"Image", 10},
}}

var fullTable = Table{Columns: []Column{
	{"ID", 4}, {"Name", 18}, {"Formula", 15}, {"Class", 15}, {"Color", 23},
	{"Streak", 18}, {"Luster", 18}, {"Hardness", 10}, {"Gravity", 10},
	{"Cleavage", 18}, {"Fracture", 18}, {"Genesis", 30}, {"Application", 20},
	{"Additional", 28}, {"Facts", 28}, {"Location", 20}, {"Image", 20},
}}

func compactRow(m model.Mineral) []string {
	return []string{
		strconv.Itoa(m.ID), m.Name, m.Class, m.Formula,
		m.Color, m.Application, m.Location, imageMark(m),
	}
}

func fullRow(m model.Mineral) []string {
	return []string{
		strconv.Itoa(m.ID), m.Name, m.Formula, m.Class, m.Color,
		m.StreakColor, m.Luster, m.Hardness, m.SpecificGravity,
		m.Cleavage, m.Fracture, m.Genesis, m.Application,
		m.AdditionalProperties, m.InterestingFacts, m.Location, imageMark(m),
	}
}

func imageMark(m model.Mineral) string {
	if m.HasImage() {
		return "yes"
	}
	return "no"
}

// Render writes the header, one block per row and the bottom border.
func (t Table) Render(w io.Writer, rows [][]string) {
	t.border(w, "┌", "┬", "┐")
	t.line(w, t.titles())
	t.border(w, "├", "┼", "┤")

	for i, row := range rows {
		t.row(w, row)
		if i < len(rows)-1 {
			t.border(w, "├", "┼", "┤")
		}
	}

	t.border(w, "└", "┴", "┘")
}

func (t Table) titles() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = truncate(c.Title, c.Width-2)
	}
	return out
}

func (t Table) row(w io.Writer, values []string) {
	wrapped := make([][]string, len(t.Columns))
	height := 1
	for i, c := range t.Columns {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		wrapped[i] = wordWrap(clean(v), c.Width-2)
		height = max(height, len(wrapped[i]))
	}

	for ln := 0; ln < height; ln++ {
		cells := make([]string, len(t.Columns))
		for i := range t.Columns {
			if ln < len(wrapped[i]) {
				cells[i] = wrapped[i][ln]
			}
		}
		t.line(w, cells)
	}
}

func (t Table) line(w io.Writer, cells []string) {
	var b strings.Builder
	b.WriteString("│")
	for i, c := range t.Columns {
		b.WriteString(" ")
		b.WriteString(pad(cells[i], c.Width-1))
		b.WriteString("│")
	}
	fmt.Fprintln(w, b.String())
}

func (t Table) border(w io.Writer, left, middle, right string) {
	var b strings.Builder
	b.WriteString(left)
	for i, c := range t.Columns {
		b.WriteString(strings.Repeat("─", c.Width))
		if i < len(t.Columns)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	fmt.Fprintln(w, b.String())
}

// wordWrap breaks text into lines of at most width runes.
func wordWrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	if utf8.RuneCountInString(text) <= width {
		return []string{text}
	}

	var lines []string
	var current []rune
	for _, word := range strings.Fields(text) {
		r := []rune(word)
		switch {
		case len(current) == 0 && len(r) > width:
			for len(r) > width {
				lines = append(lines, string(r[:width]))
				r = r[width:]
			}
			current = r
		case len(current) == 0:
			current = r
		case len(current)+1+len(r) <= width:
			current = append(append(current, ' '), r...)
		default:
			lines = append(lines, string(current))
			current = nil
			for len(r) > width {
				lines = append(lines, string(r[:width]))
				r = r[width:]
			}
			current = r
		}
	}
	if len(current) > 0 {
		lines = append(lines, string(current))
	}
	return lines
}

// clean collapses whitespace and hides URLs, which never fit a cell.
func clean(s string) string {
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return "URL"
	}
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
