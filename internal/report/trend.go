// Copyright 2026 The Qapulse Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"

	"github.com/davetashner/qapulse/internal/aggregate"
	"github.com/davetashner/qapulse/internal/pipeline"
)

// trendSection reports per-build results oldest first.
type trendSection struct {
	points []aggregate.TrendPoint
}

func (s *trendSection) Name() string        { return "trend" }
func (s *trendSection) Description() string { return "Results and issues across recent builds" }

func (s *trendSection) Analyze(v *pipeline.View) error {
	if len(v.Snapshot.Trend) == 0 {
		return fmt.Errorf("trend: %w", ErrDataNotAvailable)
	}
	s.points = v.Snapshot.Trend
	return nil
}

func (s *trendSection) Render(w io.Writer) error {
	heading(w, "Trend")
	_, _ = fmt.Fprintf(w, "  Last %d builds, oldest first\n\n", len(s.points))

	tbl := NewTable(
		Column{Header: "Build"},
		Column{Header: "Passed", Align: AlignRight},
		Column{Header: "Failed", Align: AlignRight},
		Column{Header: "Pass %", Align: AlignRight, Color: ColorPassRate},
		Column{Header: "Critical", Align: AlignRight, Color: ColorIssues},
		Column{Header: "Major", Align: AlignRight},
		Column{Header: "Minor", Align: AlignRight},
		Column{Header: "Auto", Align: AlignRight},
		Column{Header: "Manual", Align: AlignRight},
	)
	for _, p := range s.points {
		rate := "-"
		if p.Passed+p.Failed > 0 {
			rate = formatPercent(p.Passed * 100 / (p.Passed + p.Failed))
		}
		tbl.AddRow(p.Label,
			formatNum(p.Passed), formatNum(p.Failed), rate,
			formatNum(p.Critical), formatNum(p.Major), formatNum(p.Minor),
			formatNum(p.Automation), formatNum(p.Manual))
	}

	if err := tbl.Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}
