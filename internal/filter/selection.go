// Copyright 2026 The Qapulse Authors
// SPDX-License-Identifier: MIT

package filter

import (
	"slices"
	"time"

	"github.com/davetashner/qapulse/internal/alias"
	"github.com/davetashner/qapulse/internal/dataset"
)

// All is the sentinel meaning "no constraint" for platform and build.
const All = "All"

// Selection is the user's current platform, build, and date-range choice.
// It is a value type: every transition returns a new Selection.
type Selection struct {
	Platform string
	Build    string
	Start    time.Time // zero means no lower bound
	End      time.Time // zero means no upper bound
}

// DefaultSelection returns a Selection with no constraints.
func DefaultSelection() Selection {
	return Selection{Platform: All, Build: All}
}

// PlatformSet reports whether the platform dimension constrains rows.
func (s Selection) PlatformSet() bool { return isSet(s.Platform) }

// BuildSet reports whether the build dimension constrains rows.
func (s Selection) BuildSet() bool { return isSet(s.Build) }

// DateSet reports whether either date bound is present.
func (s Selection) DateSet() bool { return !s.Start.IsZero() || !s.End.IsZero() }

func isSet(v string) bool { return v != "" && v != All }

// WithPlatform selects a platform. The build choice survives only when it is
// still offered under the new platform; otherwise it resets to All.
func (s Selection) WithPlatform(platform string, rows []dataset.Row, r alias.Resolver) Selection {
	if platform == "" {
		platform = All
	}
	s.Platform = platform
	if s.BuildSet() && !slices.Contains(Builds(rows, r, platform), s.Build) {
		s.Build = All
	}
	return s
}

// WithBuild selects a build.
func (s Selection) WithBuild(build string) Selection {
	if build == "" {
		build = All
	}
	s.Build = build
	return s
}

// WithDateRange sets both date bounds. Zero values clear a bound.
func (s Selection) WithDateRange(start, end time.Time) Selection {
	s.Start, s.End = start, end
	return s
}

// Reconcile adapts the selection to a freshly loaded dataset: a platform that
// no longer appears resets to All, and so does a build no longer offered
// under the selected platform. Date bounds are kept.
func (s Selection) Reconcile(rows []dataset.Row, r alias.Resolver) Selection {
	if s.PlatformSet() && !slices.Contains(Platforms(rows, r), s.Platform) {
		s.Platform = All
	}
	if s.BuildSet() && !slices.Contains(Builds(rows, r, s.Platform), s.Build) {
		s.Build = All
	}
	if s.Platform == "" {
		s.Platform = All
	}
	if s.Build == "" {
		s.Build = All
	}
	return s
}
