// Copyright 2026 The Qapulse Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/davetashner/qapulse/internal/filter"
	"github.com/davetashner/qapulse/internal/source"
)

// SourceTabs converts the configured tabs. Relative paths are resolved
// against dir, the directory the project config was loaded from.
func (c *Config) SourceTabs(dir string) []source.Tab {
	tabs := make([]source.Tab, 0, len(c.Tabs))
	for _, t := range c.Tabs {
		path := t.Path
		if path != "" && !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		tabs = append(tabs, source.Tab{
			Name:  t.Name,
			Label: t.Label,
			GID:   t.GID,
			URL:   t.URL,
			Path:  path,
		})
	}
	return tabs
}

// Selection builds the initial filter selection. Call Validate first; an
// unparseable date is reported here too.
func (c *Config) Selection() (filter.Selection, error) {
	sel := filter.DefaultSelection()
	if c.Filter.Platform != "" {
		sel.Platform = c.Filter.Platform
	}
	if c.Filter.Build != "" {
		sel.Build = c.Filter.Build
	}

	for _, b := range []struct {
		key, val string
		dst      *time.Time
	}{
		{"filter.start", c.Filter.Start, &sel.Start},
		{"filter.end", c.Filter.End, &sel.End},
	} {
		if b.val == "" {
			continue
		}
		t, ok := filter.ParseDate(b.val)
		if !ok {
			return sel, fmt.Errorf("%s: unrecognized date %q", b.key, b.val)
		}
		*b.dst = t
	}
	return sel, nil
}
