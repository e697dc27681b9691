// Copyright 2026 The Qapulse Authors
// SPDX-License-Identifier: MIT

package report

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestTable_BasicRender(t *testing.T) {
	tbl := NewTable(
		Column{Header: "Platform"},
		Column{Header: "Rows", Align: AlignRight},
	)
	tbl.AddRow("Android", "10")
	tbl.AddRow("Android TV", "5")

	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf))

	out := buf.String()
	assert.Contains(t, out, "Platform")
	assert.Contains(t, out, "Rows")
	assert.Contains(t, out, "----------")
	assert.Contains(t, out, "Android TV")
	assert.Equal(t, 2, tbl.Len())
}

func TestTable_ColumnAlignment(t *testing.T) {
	tbl := NewTable(
		Column{Header: "Left"},
		Column{Header: "Right", Align: AlignRight},
	)
	tbl.AddRow("a", "1")
	tbl.AddRow("bb", "22")

	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf))

	lines := splitLines(buf.String())
	require.Len(t, lines, 4)
	assert.Equal(t, "  a         1", lines[2])
	assert.Equal(t, "  bb       22", lines[3])
}

func TestTable_MissingAndExtraValues(t *testing.T) {
	tbl := NewTable(Column{Header: "A"}, Column{Header: "B"})
	tbl.AddRow("only-one")
	tbl.AddRow("x", "y", "extra-ignored")

	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf))
	assert.Contains(t, buf.String(), "only-one")
	assert.NotContains(t, buf.String(), "extra-ignored")
}

func TestTable_NoColumns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTable().Render(&buf))
	assert.Empty(t, buf.String())
}

func TestTable_RuneWidth(t *testing.T) {
	tbl := NewTable(Column{Header: "Name"}, Column{Header: "N", Align: AlignRight})
	tbl.AddRow("Ünïcødé", "1")
	tbl.AddRow("plain", "2")

	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf))

	lines := splitLines(buf.String())
	require.Len(t, lines, 4)
	assert.Equal(t, "  -------  -", lines[1])
	assert.Equal(t, "  plain    2", lines[3])
}

func TestTable_Footer(t *testing.T) {
	tbl := NewTable(Column{Header: "Bucket"}, Column{Header: "Count", Align: AlignRight})
	tbl.AddRow("Passed", "8")
	tbl.SetFooter("Total", "10")

	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf))

	lines := splitLines(buf.String())
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[3], "  ------"))
	assert.Equal(t, "  Total      10", lines[4])
}

func TestTable_ColorAppliedAfterPadding(t *testing.T) {
	tbl := NewTable(Column{Header: "V", Color: func(s string) string { return "<" + s + ">" }}, Column{Header: "W"})
	tbl.AddRow("a", "b")

	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf))
	assert.Contains(t, buf.String(), "<a>  b")
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if len(line) > 0 {
			lines = append(lines, line)
		}
	}
	return lines
}
