// Copyright 2026 The Qapulse Authors
// SPDX-License-Identifier: MIT

package source

import (
	"context"
	"fmt"

	"github.com/davetashner/qapulse/internal/testable"
)

// FileFetcher reads tab CSV from local files. Useful for exported snapshots
// and for following a file that another tool keeps rewriting.
type FileFetcher struct {
	// FS is the file system to read from. Nil means testable.DefaultFS.
	FS testable.FileSystem
}

// Fetch reads tab.Path.
func (f FileFetcher) Fetch(ctx context.Context, tab Tab) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if tab.Path == "" {
		return "", fmt.Errorf("tab %q: no path configured", tab.Name)
	}
	fsys := f.FS
	if fsys == nil {
		fsys = testable.DefaultFS
	}
	data, err := fsys.ReadFile(tab.Path)
	if err != nil {
		return "", fmt.Errorf("tab %q: %w", tab.Name, err)
	}
	return string(data), nil
}

// MultiFetcher routes tabs with a Path to Files and every other tab to HTTP.
type MultiFetcher struct {
	HTTP  Fetcher
	Files Fetcher
}

// Fetch implements Fetcher.
func (m MultiFetcher) Fetch(ctx context.Context, tab Tab) (string, error) {
	if tab.Path != "" {
		if m.Files == nil {
			return FileFetcher{}.Fetch(ctx, tab)
		}
		return m.Files.Fetch(ctx, tab)
	}
	if m.HTTP == nil {
		return "", fmt.Errorf("tab %q: no remote source configured", tab.Name)
	}
	return m.HTTP.Fetch(ctx, tab)
}
