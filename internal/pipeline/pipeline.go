// Copyright 2026 The Qapulse Authors
// SPDX-License-Identifier: MIT

// Package pipeline turns tab states and a filter selection into the
// read-only views the presentation layer renders.
//
// Build is a pure function: the same state and selection always produce the
// same View, and nothing here is cached across selection changes.
package pipeline

import (
	"time"

	"github.com/davetashner/qapulse/internal/aggregate"
	"github.com/davetashner/qapulse/internal/alias"
	"github.com/davetashner/qapulse/internal/dataset"
	"github.com/davetashner/qapulse/internal/filter"
	"github.com/davetashner/qapulse/internal/refresh"
	"github.com/davetashner/qapulse/internal/source"
)

// Options controls how views are computed.
type Options struct {
	// TrendWindow caps the trend series. Zero means the aggregate default.
	TrendWindow int

	// Aliases prepends extra header names per field (see alias.WithOverrides).
	Aliases map[string][]string
}

// View is everything the presentation layer needs for one tab.
type View struct {
	Tab          source.Tab
	Err          error
	FetchedAt    time.Time
	CorrectedGID string

	// Dataset is nil until the tab has loaded once.
	Dataset *dataset.Dataset

	// Selection is the requested selection reconciled against Dataset.
	Selection filter.Selection

	Platforms []string
	Builds    []string

	// Rows are the filtered rows in source order.
	Rows []dataset.Row

	Snapshot aggregate.Snapshot
}

// Loaded reports whether the view has data.
func (v *View) Loaded() bool { return v.Dataset != nil }

// Build computes the view for one tab.
func Build(st refresh.TabState, sel filter.Selection, opts Options) View {
	v := View{
		Tab:          st.Tab,
		Err:          st.Err,
		FetchedAt:    st.FetchedAt,
		CorrectedGID: st.CorrectedGID,
		Dataset:      st.Dataset,
	}

	var rows []dataset.Row
	var r alias.Resolver = alias.Headers(nil)
	if st.Dataset != nil {
		rows = st.Dataset.Rows
		r = alias.WithOverrides(st.Dataset, opts.Aliases)
	}

	v.Selection = sel.Reconcile(rows, r)
	v.Platforms = filter.Platforms(rows, r)
	v.Builds = filter.Builds(rows, r, v.Selection.Platform)
	v.Rows = filter.ApplyWith(rows, v.Selection, r)
	v.Snapshot = aggregate.SummarizeWith(v.Rows, r, aggregate.Options{TrendWindow: opts.TrendWindow})
	return v
}

// BuildAll computes views for every state, preserving order.
func BuildAll(states []refresh.TabState, sel filter.Selection, opts Options) []View {
	views := make([]View, 0, len(states))
	for _, st := range states {
		views = append(views, Build(st, sel, opts))
	}
	return views
}

// Status classifies a set of views for exit-code purposes.
type Status int

const (
	// StatusOK means every tab loaded without error.
	StatusOK Status = iota
	// StatusPartial means at least one tab failed or has no data.
	StatusPartial
	// StatusNone means no tab has any data.
	StatusNone
)

// Classify reports how complete a set of views is.
func Classify(views []View) Status {
	loaded, clean := 0, 0
	for i := range views {
		if views[i].Loaded() {
			loaded++
			if views[i].Err == nil {
				clean++
			}
		}
	}
	switch {
	case loaded == 0:
		return StatusNone
	case clean < len(views):
		return StatusPartial
	default:
		return StatusOK
	}
}
