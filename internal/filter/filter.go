// Copyright 2026 The Qapulse Authors
// SPDX-License-Identifier: MIT

// Package filter narrows dataset rows by platform, build, and date range.
//
// Each dimension becomes a Predicate only when its alias resolves against
// the dataset and the selection actually constrains it. Predicates are
// combined conjunctively, so application order never changes the result.
package filter

import (
	"sort"
	"strings"
	"time"

	"github.com/davetashner/qapulse/internal/alias"
	"github.com/davetashner/qapulse/internal/dataset"
)

// Predicate reports whether a row passes one filter dimension.
type Predicate func(dataset.Row) bool

// Predicates returns the active predicates for sel, in platform, build,
// date order. Dimensions whose alias does not resolve are skipped.
func Predicates(sel Selection, r alias.Resolver) []Predicate {
	var preds []Predicate

	if sel.PlatformSet() {
		if col, ok := r.Resolve(alias.Platform); ok {
			want := sel.Platform
			preds = append(preds, func(row dataset.Row) bool {
				return row.Get(col).String() == want
			})
		}
	}

	if sel.BuildSet() {
		if col, ok := r.Resolve(alias.Build); ok {
			want := sel.Build
			preds = append(preds, func(row dataset.Row) bool {
				return row.Get(col).String() == want
			})
		}
	}

	if sel.DateSet() {
		if col, ok := r.Resolve(alias.Date); ok {
			preds = append(preds, DateRange(col, sel.Start, sel.End))
		}
	}

	return preds
}

// DateRange returns a predicate over the date column col. Rows whose cell is
// empty or unparseable are excluded. The end bound covers the whole day.
// A cell with a zone offset counts on its own calendar day, not the UTC one.
func DateRange(col string, start, end time.Time) Predicate {
	lo := StartOfDay(start)
	hi := EndOfDay(end)
	return func(row dataset.Row) bool {
		d, ok := ParseDate(row.Get(col).String())
		if !ok {
			return false
		}
		d = StartOfDay(d)
		if !start.IsZero() && d.Before(lo) {
			return false
		}
		if !end.IsZero() && d.After(hi) {
			return false
		}
		return true
	}
}

// Match reports whether row satisfies every predicate.
func Match(row dataset.Row, preds []Predicate) bool {
	for _, p := range preds {
		if !p(row) {
			return false
		}
	}
	return true
}

// ApplyWith returns the rows matching sel, resolving columns through r.
// The input slice is not modified and row order is preserved.
func ApplyWith(rows []dataset.Row, sel Selection, r alias.Resolver) []dataset.Row {
	preds := Predicates(sel, r)
	out := make([]dataset.Row, 0, len(rows))
	for _, row := range rows {
		if Match(row, preds) {
			out = append(out, row)
		}
	}
	return out
}

// Apply filters rows using aliases resolved against headers.
func Apply(rows []dataset.Row, sel Selection, headers []string) []dataset.Row {
	return ApplyWith(rows, sel, alias.Headers(headers))
}

// Platforms returns the distinct, non-empty platform values in ascending
// order. It returns nil when the platform alias does not resolve.
func Platforms(rows []dataset.Row, r alias.Resolver) []string {
	col, ok := r.Resolve(alias.Platform)
	if !ok {
		return nil
	}
	out := distinct(rows, col, nil)
	sort.Strings(out)
	return out
}

// Builds returns the distinct, non-empty build values among rows whose
// platform equals platform (All or empty means every row), newest first.
func Builds(rows []dataset.Row, r alias.Resolver, platform string) []string {
	col, ok := r.Resolve(alias.Build)
	if !ok {
		return nil
	}

	var keep func(dataset.Row) bool
	if isSet(platform) {
		pcol, ok := r.Resolve(alias.Platform)
		if ok {
			keep = func(row dataset.Row) bool {
				return row.Get(pcol).String() == platform
			}
		}
	}

	out := distinct(rows, col, keep)
	sort.SliceStable(out, func(i, j int) bool {
		return CompareBuilds(out[i], out[j]) > 0
	})
	return out
}

func distinct(rows []dataset.Row, col string, keep func(dataset.Row) bool) []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range rows {
		if keep != nil && !keep(row) {
			continue
		}
		v := strings.TrimSpace(row.Get(col).String())
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
