// Copyright 2026 The Qapulse Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"

	"github.com/davetashner/qapulse/internal/aggregate"
	"github.com/davetashner/qapulse/internal/pipeline"
)

func newSeveritySection() Section {
	return &breakdownSection{
		name: "severity", title: "Severity", desc: "Rows per severity",
		pick:  func(s aggregate.Snapshot) []aggregate.Bucket { return s.Severity },
		color: ColorSeverity,
	}
}

func newStatusSection() Section {
	return &breakdownSection{
		name: "status", title: "Status", desc: "Rows per status",
		pick: func(s aggregate.Snapshot) []aggregate.Bucket { return s.Status },
	}
}

func newBuildTypeSection() Section {
	return &breakdownSection{
		name: "build-type", title: "Build Type", desc: "Rows per build type",
		pick: func(s aggregate.Snapshot) []aggregate.Bucket { return s.BuildType },
	}
}

// breakdownSection reports row counts per distinct value of one column.
type breakdownSection struct {
	name, title, desc string
	pick              func(aggregate.Snapshot) []aggregate.Bucket
	color             ColorFunc

	buckets []aggregate.Bucket
}

func (s *breakdownSection) Name() string        { return s.name }
func (s *breakdownSection) Description() string { return s.desc }

func (s *breakdownSection) Analyze(v *pipeline.View) error {
	buckets := s.pick(v.Snapshot)
	if len(buckets) == 0 {
		return fmt.Errorf("%s: %w", s.name, ErrDataNotAvailable)
	}
	s.buckets = buckets
	return nil
}

func (s *breakdownSection) Render(w io.Writer) error {
	heading(w, s.title)

	tbl := NewTable(
		Column{Header: s.title, Color: s.color},
		Column{Header: "Rows", Align: AlignRight},
		Column{Header: "Share", Align: AlignRight},
	)
	for _, b := range s.buckets {
		tbl.AddRow(b.Name, formatNum(b.Count), formatPercent(b.Share))
	}

	if err := tbl.Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}
