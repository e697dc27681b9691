// Copyright 2026 The Qapulse Authors
// SPDX-License-Identifier: MIT

package filter

import (
	"strings"

	"github.com/hashicorp/go-version"
)

// CompareBuilds orders build labels naturally, returning -1, 0, or 1.
// Labels that both parse as versions ("5.1", "v2.10.0-rc1") compare
// semantically; two non-version labels use a digit-aware comparison so that
// "RC 10" sorts after "RC 9". A version label always ranks above a
// non-version one, which keeps the ordering total for mixed columns.
func CompareBuilds(a, b string) int {
	if a == b {
		return 0
	}
	va, errA := version.NewVersion(a)
	vb, errB := version.NewVersion(b)
	switch {
	case errA == nil && errB != nil:
		return 1
	case errA != nil && errB == nil:
		return -1
	case errA == nil && errB == nil:
		if c := va.Compare(vb); c != 0 {
			return c
		}
		// Equal versions with different spellings ("5.1" vs "5.1.0").
		return strings.Compare(a, b)
	}
	return naturalCompare(a, b)
}

// naturalCompare compares strings chunk by chunk, treating runs of ASCII
// digits as numbers and everything else case-insensitively.
func naturalCompare(a, b string) int {
	for a != "" && b != "" {
		ca, restA := nextChunk(a)
		cb, restB := nextChunk(b)
		if c := compareChunk(ca, cb); c != 0 {
			return c
		}
		a, b = restA, restB
	}
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	default:
		return 1
	}
}

func nextChunk(s string) (chunk, rest string) {
	digit := isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == digit {
		i++
	}
	return s[:i], s[i:]
}

func compareChunk(a, b string) int {
	if isDigit(a[0]) && isDigit(b[0]) {
		ta := strings.TrimLeft(a, "0")
		tb := strings.TrimLeft(b, "0")
		if len(ta) != len(tb) {
			if len(ta) < len(tb) {
				return -1
			}
			return 1
		}
		if c := strings.Compare(ta, tb); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	}
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
