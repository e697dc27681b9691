package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/davetashner/qapulse/internal/aggregate"
	"github.com/davetashner/qapulse/internal/pipeline"
	"github.com/davetashner/qapulse/internal/redact"
)

// RenderMarkdown writes the report as a Markdown document suitable for
// pasting into a ticket or release note. Sections are limited the same way
// as RenderText.
func RenderMarkdown(w io.Writer, views []pipeline.View, opts Options) error {
	if _, err := fmt.Fprintf(w, "# QA Pulse Report\n\n_Generated %s_\n\n", generated(opts)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	want := make(map[string]bool)
	for _, name := range ResolveSections(opts.Sections) {
		want[name] = true
	}
	for i := range views {
		if err := writeMarkdownTab(w, &views[i], want); err != nil {
			return err
		}
	}
	return nil
}

func writeMarkdownTab(w io.Writer, v *pipeline.View, want map[string]bool) error {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", mdEscape(v.Tab.DisplayName()))
	fmt.Fprintf(&b, "**Filter:** `%s`", describeSelection(v.Selection))
	if v.Loaded() {
		fmt.Fprintf(&b, " | **Rows:** %d of %d", len(v.Rows), v.Dataset.Len())
	}
	b.WriteString("\n\n")
	if v.Err != nil {
		fmt.Fprintf(&b, "> **Error:** %s\n\n", mdEscape(redact.String(v.Err.Error())))
	}
	if !v.Loaded() {
		b.WriteString("_No data loaded._\n\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	snap := v.Snapshot
	if want["summary"] {
		s := snap.Summary
		mdTable(&b, []string{"Metric", "Value"}, [][]string{
			{"Total test cases", formatNum(s.TotalCases)},
			{"Executed", formatNum(s.Executed)},
			{"Passed", formatNum(s.Passed)},
			{"Critical issues", formatNum(s.CriticalIssues)},
			{"Pass rate", formatPercent(s.PassRate)},
		})
	}
	if want["distribution"] && snap.Distribution.Total > 0 {
		b.WriteString("### Distribution\n\n")
		mdTable(&b, []string{"Result", "Cases", "Share"}, bucketRows(snap.Distribution.Buckets))
	}
	if want["trend"] && len(snap.Trend) > 0 {
		b.WriteString("### Trend\n\n")
		rows := make([][]string, 0, len(snap.Trend))
		for _, p := range snap.Trend {
			rows = append(rows, []string{mdEscape(p.Label), formatNum(p.Passed), formatNum(p.Failed),
				formatNum(p.Critical), formatNum(p.Major), formatNum(p.Minor)})
		}
		mdTable(&b, []string{"Build", "Passed", "Failed", "Critical", "Major", "Minor"}, rows)
	}
	for _, bd := range []struct {
		name, title string
		buckets     []aggregate.Bucket
	}{
		{"severity", "Severity", snap.Severity},
		{"status", "Status", snap.Status},
		{"build-type", "Build Type", snap.BuildType},
	} {
		if !want[bd.name] || len(bd.buckets) == 0 {
			continue
		}
		fmt.Fprintf(&b, "### %s\n\n", bd.title)
		mdTable(&b, []string{bd.title, "Rows", "Share"}, bucketRows(bd.buckets))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func bucketRows(buckets []aggregate.Bucket) [][]string {
	rows := make([][]string, 0, len(buckets))
	for _, bk := range buckets {
		rows = append(rows, []string{mdEscape(bk.Name), formatNum(bk.Count), formatPercent(bk.Share)})
	}
	return rows
}

// mdTable writes a GitHub-flavored Markdown table followed by a blank line.
func mdTable(b *strings.Builder, header []string, rows [][]string) {
	b.WriteString("| " + strings.Join(header, " | ") + " |\n")
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	b.WriteString("|" + strings.Join(sep, "|") + "|\n")
	for _, r := range rows {
		b.WriteString("| " + strings.Join(r, " | ") + " |\n")
	}
	b.WriteString("\n")
}

var mdReplacer = strings.NewReplacer("|", `\|`, "\n", " ", "\r", "")

func mdEscape(s string) string { return mdReplacer.Replace(s) }
