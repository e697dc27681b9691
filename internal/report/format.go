package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// formatNum prints whole numbers without a fraction and others to one place.
func formatNum(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', 1, 64)
}

// formatPercent prints a percentage to one decimal place.
func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}

// bar draws a proportional bar of at most width cells for a percentage.
func bar(p float64, width int) string {
	n := int(p*float64(width)/100 + 0.5)
	n = min(max(n, 0), width)
	return strings.Repeat("#", n) + strings.Repeat(".", width-n)
}

// heading writes a title underlined to its own width.
func heading(w io.Writer, title string) {
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle(title))
	_, _ = fmt.Fprintf(w, "%s\n", strings.Repeat("-", len(title)))
}
