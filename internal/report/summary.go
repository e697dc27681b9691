// Copyright 2026 The Qapulse Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"

	"github.com/davetashner/qapulse/internal/aggregate"
	"github.com/davetashner/qapulse/internal/pipeline"
)

// summarySection reports the headline totals for the filtered rows.
type summarySection struct {
	rows    int
	summary aggregate.Summary
}

func (s *summarySection) Name() string        { return "summary" }
func (s *summarySection) Description() string { return "Headline totals and pass rate" }

func (s *summarySection) Analyze(v *pipeline.View) error {
	if !v.Loaded() {
		return fmt.Errorf("summary: %w", ErrDataNotAvailable)
	}
	s.rows = v.Snapshot.Rows
	s.summary = v.Snapshot.Summary
	return nil
}

func (s *summarySection) Render(w io.Writer) error {
	heading(w, "Summary")

	tbl := NewTable(
		Column{Header: "Metric"},
		Column{Header: "Value", Align: AlignRight},
	)
	tbl.AddRow("Rows", formatNum(float64(s.rows)))
	tbl.AddRow("Total test cases", formatNum(s.summary.TotalCases))
	tbl.AddRow("Executed", formatNum(s.summary.Executed))
	tbl.AddRow("Passed", formatNum(s.summary.Passed))
	tbl.AddRow("Critical issues", formatNum(s.summary.CriticalIssues))

	if err := tbl.Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\n  Pass rate: %s  %s\n\n",
		ColorPassRate(formatPercent(s.summary.PassRate)), bar(s.summary.PassRate, distributionBarWidth))
	return nil
}
