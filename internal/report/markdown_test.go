package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/qapulse/internal/filter"
	"github.com/davetashner/qapulse/internal/pipeline"
	"github.com/davetashner/qapulse/internal/refresh"
	"github.com/davetashner/qapulse/internal/source"
)

func TestRenderMarkdown(t *testing.T) {
	v := sampleView(t, filter.DefaultSelection())
	var buf bytes.Buffer
	require.NoError(t, RenderMarkdown(&buf, []pipeline.View{v}, Options{Generated: generatedAt}))

	out := buf.String()
	assert.Contains(t, out, "# QA Pulse Report\n\n_Generated 2026-10-19T12:00:00Z_")
	assert.Contains(t, out, "## Android Regression\n")
	assert.Contains(t, out, "**Filter:** `platform=All build=All` | **Rows:** 3 of 3")
	assert.Contains(t, out, "| Metric | Value |\n|---|---|\n")
	assert.Contains(t, out, "| Pass rate | 81.4% |")
	assert.Contains(t, out, "### Distribution")
	assert.Contains(t, out, "### Trend")
	assert.Contains(t, out, "| Critical | 1 | 33.3% |")
	assert.NotContains(t, out, "### Status", "empty breakdowns are omitted")
}

func TestRenderMarkdown_SectionFilter(t *testing.T) {
	v := sampleView(t, filter.DefaultSelection())
	var buf bytes.Buffer
	require.NoError(t, RenderMarkdown(&buf, []pipeline.View{v}, Options{Sections: []string{"trend"}}))

	out := buf.String()
	assert.Contains(t, out, "### Trend")
	assert.NotContains(t, out, "| Metric | Value |")
	assert.NotContains(t, out, "### Severity")
}

func TestRenderMarkdown_NotLoaded(t *testing.T) {
	st := refresh.TabState{Tab: source.Tab{Name: "ios|beta"}, Err: errors.New("status 404")}
	v := pipeline.Build(st, filter.DefaultSelection(), pipeline.Options{})

	var buf bytes.Buffer
	require.NoError(t, RenderMarkdown(&buf, []pipeline.View{v}, Options{Generated: generatedAt}))

	out := buf.String()
	assert.Contains(t, out, `## ios\|beta`)
	assert.Contains(t, out, "> **Error:** status 404")
	assert.Contains(t, out, "_No data loaded._")
}
