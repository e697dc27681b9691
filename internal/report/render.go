// Copyright 2026 The Qapulse Authors
// SPDX-License-Identifier: MIT

package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/davetashner/qapulse/internal/aggregate"
	"github.com/davetashner/qapulse/internal/filter"
	"github.com/davetashner/qapulse/internal/pipeline"
	"github.com/davetashner/qapulse/internal/redact"
)

// Options controls which sections are rendered and how the header reads.
type Options struct {
	// Sections restricts output to the named sections. Empty means all.
	Sections []string

	// Generated is stamped into the report header.
	Generated time.Time
}

// ReportJSON is the top-level JSON structure for --format json output.
type ReportJSON struct {
	Generated string    `json:"generated"`
	Tabs      []TabJSON `json:"tabs"`
}

// TabJSON is the JSON representation of one tab view.
type TabJSON struct {
	Name         string             `json:"name"`
	Label        string             `json:"label,omitempty"`
	GID          string             `json:"gid,omitempty"`
	CorrectedGID string             `json:"corrected_gid,omitempty"`
	Loaded       bool               `json:"loaded"`
	FetchedAt    string             `json:"fetched_at,omitempty"`
	Error        string             `json:"error,omitempty"`
	Selection    SelectionJSON      `json:"selection"`
	Platforms    []string           `json:"platforms"`
	Builds       []string           `json:"builds"`
	Snapshot     aggregate.Snapshot `json:"snapshot"`
	Sections     []SectionJSON      `json:"sections,omitempty"`
}

// SelectionJSON is the JSON representation of the applied filter.
type SelectionJSON struct {
	Platform string `json:"platform"`
	Build    string `json:"build"`
	Start    string `json:"start,omitempty"`
	End      string `json:"end,omitempty"`
}

// SectionJSON is the JSON representation of a single report section.
type SectionJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`            // "ok", "skipped"
	Content     string `json:"content,omitempty"` // rendered text
}

// RenderText writes a terminal-friendly report covering every view.
func RenderText(w io.Writer, views []pipeline.View, opts Options) error {
	_, _ = fmt.Fprintf(w, "QA Pulse Report\n")
	_, _ = fmt.Fprintf(w, "===============\n")
	_, _ = fmt.Fprintf(w, "Generated: %s\n\n", generated(opts))

	names := ResolveSections(opts.Sections)
	for i := range views {
		if err := renderTab(w, &views[i], names); err != nil {
			return err
		}
	}
	return nil
}

func renderTab(w io.Writer, v *pipeline.View, names []string) error {
	title := "Tab: " + v.Tab.DisplayName()
	_, _ = fmt.Fprintf(w, "%s\n%s\n", SectionTitle(title), strings.Repeat("=", len(title)))
	if v.CorrectedGID != "" {
		_, _ = fmt.Fprintf(w, "  Tab id corrected to %s\n", v.CorrectedGID)
	}
	_, _ = fmt.Fprintf(w, "  Filter:  %s\n", describeSelection(v.Selection))
	if v.Loaded() {
		_, _ = fmt.Fprintf(w, "  Rows:    %d of %d\n", len(v.Rows), v.Dataset.Len())
	}
	if !v.FetchedAt.IsZero() {
		_, _ = fmt.Fprintf(w, "  Fetched: %s\n", v.FetchedAt.Format(time.RFC3339))
	}
	if v.Err != nil {
		_, _ = fmt.Fprintf(w, "  %s %s\n", colorRed.Sprint("Error:"), redact.String(v.Err.Error()))
	}
	_, _ = fmt.Fprintf(w, "\n")

	if !v.Loaded() {
		_, _ = fmt.Fprintf(w, "  No data loaded.\n\n")
		return nil
	}

	for _, name := range names {
		sec := Get(name)
		if sec == nil {
			continue
		}
		if err := sec.Analyze(v); err != nil {
			if errors.Is(err, ErrDataNotAvailable) {
				slog.Debug("section skipped", "tab", v.Tab.Name, "section", name)
				continue
			}
			return fmt.Errorf("section %s: %w", name, err)
		}
		if err := sec.Render(w); err != nil {
			return fmt.Errorf("section %s render: %w", name, err)
		}
	}
	return nil
}

// RenderJSON writes the report as machine-readable JSON.
func RenderJSON(w io.Writer, views []pipeline.View, opts Options) error {
	out := ReportJSON{
		Generated: generated(opts),
		Tabs:      make([]TabJSON, 0, len(views)),
	}

	names := ResolveSections(opts.Sections)
	for i := range views {
		tj, err := tabJSON(&views[i], names)
		if err != nil {
			return err
		}
		out.Tabs = append(out.Tabs, tj)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("JSON marshal: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func tabJSON(v *pipeline.View, names []string) (TabJSON, error) {
	tj := TabJSON{
		Name:         v.Tab.Name,
		Label:        v.Tab.Label,
		GID:          v.Tab.GID,
		CorrectedGID: v.CorrectedGID,
		Loaded:       v.Loaded(),
		Selection:    selectionJSON(v.Selection),
		Platforms:    nonNil(v.Platforms),
		Builds:       nonNil(v.Builds),
		Snapshot:     v.Snapshot,
	}
	if !v.FetchedAt.IsZero() {
		tj.FetchedAt = v.FetchedAt.Format(time.RFC3339)
	}
	if v.Err != nil {
		tj.Error = redact.String(v.Err.Error())
	}

	for _, name := range names {
		sec := Get(name)
		if sec == nil {
			continue
		}
		sj := SectionJSON{Name: sec.Name(), Description: sec.Description()}
		if err := sec.Analyze(v); err != nil {
			if errors.Is(err, ErrDataNotAvailable) {
				sj.Status = "skipped"
				tj.Sections = append(tj.Sections, sj)
				continue
			}
			return tj, fmt.Errorf("section %s: %w", name, err)
		}

		sj.Status = "ok"
		var buf bytes.Buffer
		if err := sec.Render(&buf); err != nil {
			return tj, fmt.Errorf("section %s render: %w", name, err)
		}
		sj.Content = buf.String()
		tj.Sections = append(tj.Sections, sj)
	}
	return tj, nil
}

// ResolveSections determines which sections to run without printing warnings.
// If names is empty, all registered sections are used.
func ResolveSections(names []string) []string {
	if len(names) == 0 {
		return List()
	}

	available := make(map[string]bool)
	for _, name := range List() {
		available[name] = true
	}

	var out []string
	for _, name := range names {
		if available[name] {
			out = append(out, name)
		}
	}
	return out
}

func generated(opts Options) string {
	t := opts.Generated
	if t.IsZero() {
		t = time.Now()
	}
	return t.Format(time.RFC3339)
}

func describeSelection(sel filter.Selection) string {
	var b strings.Builder
	fmt.Fprintf(&b, "platform=%s build=%s", orAll(sel.Platform), orAll(sel.Build))
	if sel.DateSet() {
		fmt.Fprintf(&b, " dates=%s..%s", formatDay(sel.Start), formatDay(sel.End))
	}
	return b.String()
}

func selectionJSON(sel filter.Selection) SelectionJSON {
	out := SelectionJSON{Platform: orAll(sel.Platform), Build: orAll(sel.Build)}
	if !sel.Start.IsZero() {
		out.Start = sel.Start.Format(time.DateOnly)
	}
	if !sel.End.IsZero() {
		out.End = sel.End.Format(time.DateOnly)
	}
	return out
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return "*"
	}
	return t.Format(time.DateOnly)
}

func orAll(s string) string {
	if s == "" {
		return filter.All
	}
	return s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
