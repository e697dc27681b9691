package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Alignment controls how a column's content is justified.
type Alignment int

const (
	// AlignLeft pads on the right (default).
	AlignLeft Alignment = iota
	// AlignRight pads on the left.
	AlignRight
)

// ColorFunc maps a cell value to a colored string. If nil, no color is applied.
type ColorFunc func(value string) string

// Column describes a single table column.
type Column struct {
	Header string
	Align  Alignment
	Color  ColorFunc
}

// Table renders aligned text tables. Widths are measured in runes so that
// platform and build names outside ASCII still line up.
type Table struct {
	columns []Column
	rows    [][]string
	footer  []string
}

// NewTable creates a table with the given column definitions.
func NewTable(columns ...Column) *Table {
	return &Table{columns: columns}
}

// AddRow appends a row. Values beyond the column count are ignored;
// missing values are treated as empty strings.
func (t *Table) AddRow(values ...string) {
	t.rows = append(t.rows, t.fit(values))
}

// SetFooter sets a totals row rendered below a second separator.
func (t *Table) SetFooter(values ...string) {
	t.footer = t.fit(values)
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

func (t *Table) fit(values []string) []string {
	row := make([]string, len(t.columns))
	copy(row, values)
	return row
}

// Render writes the table to w.
func (t *Table) Render(w io.Writer) error {
	if len(t.columns) == 0 {
		return nil
	}

	widths := make([]int, len(t.columns))
	for i, col := range t.columns {
		widths[i] = utf8.RuneCountInString(col.Header)
	}
	measure := func(row []string) {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}
	for _, row := range t.rows {
		measure(row)
	}
	measure(t.footer)

	bold := color.New(color.Bold)
	header := make([]string, len(t.columns))
	for i, col := range t.columns {
		header[i] = bold.Sprint(pad(col.Header, widths[i], col.Align))
	}
	if err := writeLine(w, header); err != nil {
		return err
	}

	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	if err := writeLine(w, sep); err != nil {
		return err
	}

	for _, row := range t.rows {
		if err := writeLine(w, t.cells(row, widths)); err != nil {
			return err
		}
	}

	if t.footer != nil {
		if err := writeLine(w, sep); err != nil {
			return err
		}
		if err := writeLine(w, t.cells(t.footer, widths)); err != nil {
			return err
		}
	}
	return nil
}

// cells pads each value on its raw width, then colors it, so ANSI escapes
// never affect alignment.
func (t *Table) cells(row []string, widths []int) []string {
	out := make([]string, len(t.columns))
	for i, col := range t.columns {
		val := row[i]
		display := val
		if col.Color != nil && val != "" {
			display = col.Color(val)
		}
		gap := strings.Repeat(" ", max(widths[i]-utf8.RuneCountInString(val), 0))
		if col.Align == AlignRight {
			out[i] = gap + display
		} else {
			out[i] = display + gap
		}
	}
	return out
}

func pad(s string, width int, align Alignment) string {
	gap := strings.Repeat(" ", max(width-utf8.RuneCountInString(s), 0))
	if align == AlignRight {
		return gap + s
	}
	return s + gap
}

func writeLine(w io.Writer, parts []string) error {
	line := strings.TrimRight(strings.Join(parts, "  "), " ")
	if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}
