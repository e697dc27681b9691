// Copyright 2026 The Qapulse Authors
// SPDX-License-Identifier: MIT

package filter

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompareBuilds(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"5.10", "5.9", 1},
		{"5.1", "5.10", -1},
		{"5.2", "5.2", 0},
		{"v2.0.0", "v1.9.9", 1},
		{"2.0.0-rc1", "2.0.0", -1},
		{"RC 10", "RC 9", 1},
		{"RC 9", "RC 10", -1},
		{"build-007", "build-7", -1},
		{"alpha", "Beta", -1},
		{"RC", "RC 1", -1},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareBuilds(tt.a, tt.b))
			if tt.want != 0 {
				assert.Equal(t, -tt.want, CompareBuilds(tt.b, tt.a))
			}
		})
	}
}

func TestCompareBuilds_DescendingSort(t *testing.T) {
	in := []string{"RC 2", "RC 10", "RC 1", "RC 9"}
	sort.SliceStable(in, func(i, j int) bool { return CompareBuilds(in[i], in[j]) > 0 })
	assert.Equal(t, []string{"RC 10", "RC 9", "RC 2", "RC 1"}, in)
}

func TestCompareBuilds_MixedLabelsSortIndependentOfInputOrder(t *testing.T) {
	labels := []string{"2.0.0", "2.0.0 x", "2.0.0-rc1", "RC 9", "5.10"}
	want := []string{"5.10", "2.0.0", "2.0.0-rc1", "RC 9", "2.0.0 x"}

	for _, perm := range permutations(labels) {
		sort.SliceStable(perm, func(i, j int) bool { return CompareBuilds(perm[i], perm[j]) > 0 })
		assert.Equal(t, want, perm)
	}
}

func TestCompareBuilds_VersionRanksAboveFreeText(t *testing.T) {
	assert.Equal(t, 1, CompareBuilds("2.0.0", "2.0.0 x"))
	assert.Equal(t, 1, CompareBuilds("2.0.0-rc1", "2.0.0 x"))
	assert.Equal(t, -1, CompareBuilds("2.0.0-rc1", "2.0.0"))
}

func permutations(in []string) [][]string {
	if len(in) <= 1 {
		return [][]string{append([]string(nil), in...)}
	}
	var out [][]string
	for i := range in {
		rest := make([]string, 0, len(in)-1)
		rest = append(rest, in[:i]...)
		rest = append(rest, in[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]string{in[i]}, p...))
		}
	}
	return out
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"2024-03-05",
		"3/5/2024",
		"03/05/2024",
		"2024/03/05",
		"5-Mar-2024",
		"05-Mar-24",
		"Mar 5, 2024",
		"March 5, 2024",
		"5 Mar 2024",
		"20240305",
		" 2024-03-05 ",
	} {
		t.Run(in, func(t *testing.T) {
			got, ok := ParseDate(in)
			assert.True(t, ok)
			assert.True(t, want.Equal(got), "got %v", got)
		})
	}

	withTime, ok := ParseDate("2024-03-05 14:30")
	assert.True(t, ok)
	assert.Equal(t, 14, withTime.Hour())

	for _, bad := range []string{"", "soon", "13/45/2024", "2024-13-01"} {
		_, ok := ParseDate(bad)
		assert.False(t, ok, bad)
	}
}

func TestDayBounds(t *testing.T) {
	ts := time.Date(2024, 3, 5, 13, 14, 15, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), StartOfDay(ts))
	end := EndOfDay(ts)
	assert.Equal(t, 5, end.Day())
	assert.Equal(t, 23, end.Hour())
	assert.True(t, end.Add(time.Nanosecond).Equal(time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)))
}
