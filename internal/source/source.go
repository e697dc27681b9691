// Copyright 2026 The Qapulse Authors
// SPDX-License-Identifier: MIT

// Package source retrieves CSV text for logical spreadsheet tabs.
//
// A published spreadsheet exposes each tab as its own CSV export, addressed
// by a tab identifier (gid). Fetchers return the raw text; parsing happens
// elsewhere. Fetch failures are classified so that callers can tell an
// access problem or a stale tab identifier from a transient network error.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Tab describes one independently fetched CSV source.
type Tab struct {
	// Name is the stable key used in config, logs, and CLI flags.
	Name string

	// Label is the human-readable sheet title. Tab discovery maps labels to
	// fresh identifiers when GID goes stale.
	Label string

	// GID identifies the tab inside the published document.
	GID string

	// URL, when set, is fetched as-is instead of deriving one from GID.
	URL string

	// Path, when set, reads the CSV from a local file.
	Path string
}

// DisplayName returns the label when present, otherwise the name.
func (t Tab) DisplayName() string {
	if t.Label != "" {
		return t.Label
	}
	return t.Name
}

// Fetcher retrieves the CSV text for a tab.
type Fetcher interface {
	Fetch(ctx context.Context, tab Tab) (string, error)
}

// Discoverer recovers tab identifiers for a published document, keyed by
// tab label. Implementations live outside this module; qapulse only
// consumes the mapping for a single corrective retry.
type Discoverer interface {
	Discover(ctx context.Context) (map[string]string, error)
}

// ErrNotCSV indicates the source answered with an HTML page instead of CSV,
// which usually means the document is not published or requires sign-in.
var ErrNotCSV = errors.New("response is HTML, not CSV (is the sheet published to the web?)")

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s returned %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// IsInvalidTab reports whether err is consistent with a stale or unknown tab
// identifier: a 400/404 response or an HTML payload.
func IsInvalidTab(err error) bool {
	if errors.Is(err, ErrNotCSV) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusBadRequest || se.Code == http.StatusNotFound
	}
	return false
}

// looksLikeHTML reports whether body is an HTML document rather than CSV.
func looksLikeHTML(contentType, body string) bool {
	if strings.Contains(strings.ToLower(contentType), "text/html") {
		return true
	}
	head := strings.ToLower(strings.TrimSpace(body))
	if len(head) > 64 {
		head = head[:64]
	}
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}
