// Copyright 2026 The Qapulse Authors
// SPDX-License-Identifier: MIT

// Package aggregate reduces filtered rows into the summary totals, pass/fail
// distribution, build trend, and categorical breakdowns shown on a dashboard.
//
// Every numeric read goes through dataset.Value.Num, so a non-numeric or
// missing cell contributes 0 instead of failing the computation.
package aggregate

import (
	"fmt"
	"sort"

	"github.com/davetashner/qapulse/internal/alias"
	"github.com/davetashner/qapulse/internal/dataset"
)

// DefaultTrendWindow is the number of most recent rows plotted in the trend.
const DefaultTrendWindow = 10

// UnspecifiedLabel names the breakdown bucket for rows with an empty cell.
const UnspecifiedLabel = "Unspecified"

// Distribution bucket names.
const (
	BucketPassed        = "Passed"
	BucketFailed        = "Failed"
	BucketNotConsidered = "Not Considered"
)

// Options tunes Summarize.
type Options struct {
	// TrendWindow caps the trend series length. Zero means DefaultTrendWindow.
	TrendWindow int
}

// Summary holds the headline totals.
type Summary struct {
	TotalCases     float64 `json:"total_cases"`
	Executed       float64 `json:"executed"`
	Passed         float64 `json:"passed"`
	CriticalIssues float64 `json:"critical_issues"`
	PassRate       float64 `json:"pass_rate"` // percent, 0 when nothing executed
}

// Bucket is one named slice of a distribution or breakdown.
type Bucket struct {
	Name  string  `json:"name"`
	Count float64 `json:"count"`
	Share float64 `json:"share"` // percent of the bucket total
}

// Distribution is the pass/fail/not-considered split.
type Distribution struct {
	Buckets []Bucket `json:"buckets"`
	Total   float64  `json:"total"`
}

// TrendPoint is one build's contribution to the trend series.
type TrendPoint struct {
	Label      string  `json:"label"`
	Passed     float64 `json:"passed"`
	Failed     float64 `json:"failed"`
	Critical   float64 `json:"critical"`
	Major      float64 `json:"major"`
	Minor      float64 `json:"minor"`
	Automation float64 `json:"automation"`
	Manual     float64 `json:"manual"`
}

// Snapshot is the full derived view of a filtered row set.
type Snapshot struct {
	Rows         int          `json:"rows"`
	Summary      Summary      `json:"summary"`
	Distribution Distribution `json:"distribution"`
	Trend        []TrendPoint `json:"trend"`
	Severity     []Bucket     `json:"severity,omitempty"`
	Status       []Bucket     `json:"status,omitempty"`
	BuildType    []Bucket     `json:"build_type,omitempty"`
}

// Summarize computes a Snapshot using aliases resolved against headers.
func Summarize(rows []dataset.Row, headers []string) Snapshot {
	return SummarizeWith(rows, alias.Headers(headers), Options{})
}

// SummarizeWith computes a Snapshot, resolving columns through r.
func SummarizeWith(rows []dataset.Row, r alias.Resolver, opts Options) Snapshot {
	window := opts.TrendWindow
	if window <= 0 {
		window = DefaultTrendWindow
	}
	return Snapshot{
		Rows:         len(rows),
		Summary:      Totals(rows, r),
		Distribution: Distribute(rows, r),
		Trend:        Trend(rows, r, window),
		Severity:     Breakdown(rows, r, alias.Severity),
		Status:       Breakdown(rows, r, alias.Status),
		BuildType:    Breakdown(rows, r, alias.BuildType),
	}
}

// column sums a numeric field; an unresolved alias sums to 0.
type column struct {
	name string
	ok   bool
}

func resolve(r alias.Resolver, g alias.Group) column {
	name, ok := r.Resolve(g)
	return column{name: name, ok: ok}
}

func (c column) num(row dataset.Row) float64 {
	if !c.ok {
		return 0
	}
	return row.Get(c.name).Num()
}

func (c column) sum(rows []dataset.Row) float64 {
	var total float64
	for _, row := range rows {
		total += c.num(row)
	}
	return total
}

// Totals sums the headline columns and derives the pass rate.
func Totals(rows []dataset.Row, r alias.Resolver) Summary {
	s := Summary{
		TotalCases:     resolve(r, alias.TotalCases).sum(rows),
		Executed:       resolve(r, alias.Executed).sum(rows),
		Passed:         resolve(r, alias.Passed).sum(rows),
		CriticalIssues: resolve(r, alias.CriticalIssues).sum(rows),
	}
	s.PassRate = percent(s.Passed, s.Executed)
	return s
}

// Distribute builds the three-bucket pass/fail/not-considered split.
func Distribute(rows []dataset.Row, r alias.Resolver) Distribution {
	buckets := []Bucket{
		{Name: BucketPassed, Count: resolve(r, alias.Passed).sum(rows)},
		{Name: BucketFailed, Count: resolve(r, alias.Failed).sum(rows)},
		{Name: BucketNotConsidered, Count: resolve(r, alias.NotConsidered).sum(rows)},
	}
	return Distribution{Buckets: buckets, Total: withShares(buckets)}
}

// Trend takes the first window rows (the source lists newest first),
// reverses them into chronological order, and maps each to a TrendPoint.
func Trend(rows []dataset.Row, r alias.Resolver, window int) []TrendPoint {
	if window > len(rows) {
		window = len(rows)
	}
	if window <= 0 {
		return []TrendPoint{}
	}

	build := resolve(r, alias.Build)
	date := resolve(r, alias.Date)
	passed := resolve(r, alias.Passed)
	failed := resolve(r, alias.Failed)
	critical := resolve(r, alias.CriticalIssues)
	major := resolve(r, alias.MajorIssues)
	minor := resolve(r, alias.MinorIssues)
	automation := resolve(r, alias.AutomationExecuted)
	manual := resolve(r, alias.ManualExecuted)

	points := make([]TrendPoint, 0, window)
	for i := window - 1; i >= 0; i-- {
		row := rows[i]
		points = append(points, TrendPoint{
			Label:      label(row, build, date, len(points)+1),
			Passed:     passed.num(row),
			Failed:     failed.num(row),
			Critical:   critical.num(row),
			Major:      major.num(row),
			Minor:      minor.num(row),
			Automation: automation.num(row),
			Manual:     manual.num(row),
		})
	}
	return points
}

// label prefers the build identifier, then the date, then a position.
func label(row dataset.Row, build, date column, pos int) string {
	for _, c := range []column{build, date} {
		if !c.ok {
			continue
		}
		if v := row.Get(c.name).String(); v != "" {
			return v
		}
	}
	return fmt.Sprintf("#%d", pos)
}

// Breakdown counts rows per distinct value of the field g. Empty cells are
// counted under UnspecifiedLabel. Buckets are ordered by count descending,
// then name. It returns nil when g does not resolve.
func Breakdown(rows []dataset.Row, r alias.Resolver, g alias.Group) []Bucket {
	col, ok := r.Resolve(g)
	if !ok {
		return nil
	}

	counts := make(map[string]float64)
	for _, row := range rows {
		v := row.Get(col).String()
		if v == "" {
			v = UnspecifiedLabel
		}
		counts[v]++
	}

	buckets := make([]Bucket, 0, len(counts))
	for name, n := range counts {
		buckets = append(buckets, Bucket{Name: name, Count: n})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Name < buckets[j].Name
	})
	withShares(buckets)
	return buckets
}

// withShares fills in each bucket's share and returns the total.
func withShares(buckets []Bucket) float64 {
	var total float64
	for _, b := range buckets {
		total += b.Count
	}
	for i := range buckets {
		buckets[i].Share = percent(buckets[i].Count, total)
	}
	return total
}

func percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part * 100 / whole
}
