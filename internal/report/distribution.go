// Copyright 2026 The Qapulse Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"

	"github.com/davetashner/qapulse/internal/aggregate"
	"github.com/davetashner/qapulse/internal/pipeline"
)

const distributionBarWidth = 30

// distributionSection reports the passed/failed/not-considered split.
type distributionSection struct {
	dist aggregate.Distribution
}

func (s *distributionSection) Name() string { return "distribution" }
func (s *distributionSection) Description() string {
	return "Split of passed, failed and not considered cases"
}

func (s *distributionSection) Analyze(v *pipeline.View) error {
	if !v.Loaded() {
		return fmt.Errorf("distribution: %w", ErrDataNotAvailable)
	}
	s.dist = v.Snapshot.Distribution
	return nil
}

func (s *distributionSection) Render(w io.Writer) error {
	heading(w, "Distribution")

	if s.dist.Total == 0 {
		_, _ = fmt.Fprintf(w, "  No cases recorded.\n\n")
		return nil
	}

	tbl := NewTable(
		Column{Header: "Bucket", Color: ColorBucket},
		Column{Header: "Count", Align: AlignRight},
		Column{Header: "Share", Align: AlignRight},
		Column{Header: ""},
	)
	for _, b := range s.dist.Buckets {
		tbl.AddRow(b.Name, formatNum(b.Count), formatPercent(b.Share), bar(b.Share, distributionBarWidth))
	}
	tbl.SetFooter("Total", formatNum(s.dist.Total), "", "")

	if err := tbl.Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}
