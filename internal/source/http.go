// Copyright 2026 The Qapulse Authors
// SPDX-License-Identifier: MIT

package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

const (
	defaultTimeout  = 30 * time.Second
	maxResponseSize = 32 * 1024 * 1024 // 32 MiB
)

// Compile-time check that HTTPFetcher implements Fetcher.
var _ Fetcher = (*HTTPFetcher)(nil)

// HTTPFetcher downloads CSV exports of a published spreadsheet.
type HTTPFetcher struct {
	client *http.Client
	docURL string
}

// NewHTTPFetcher returns a fetcher for the published document at docURL.
// A zero timeout selects 30s.
func NewHTTPFetcher(docURL string, timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := cleanhttp.DefaultPooledClient()
	client.Timeout = timeout
	return &HTTPFetcher{client: client, docURL: docURL}
}

// WithClient replaces the underlying HTTP client. Intended for tests.
func (f *HTTPFetcher) WithClient(c *http.Client) *HTTPFetcher {
	f.client = c
	return f
}

// ExportURL derives the CSV export URL for tab gid from a published
// document URL such as https://docs.google.com/spreadsheets/d/e/<key>/pubhtml.
func ExportURL(docURL, gid string) (string, error) {
	u, err := url.Parse(docURL)
	if err != nil {
		return "", fmt.Errorf("parse document url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("document url %q is not absolute", docURL)
	}

	p := strings.TrimSuffix(u.Path, "/")
	p = strings.TrimSuffix(p, "html") // pubhtml -> pub
	if !strings.HasSuffix(p, "/pub") {
		p += "/pub"
	}
	u.Path = p

	q := url.Values{}
	if gid != "" {
		q.Set("gid", gid)
	}
	q.Set("single", "true")
	q.Set("output", "csv")
	u.RawQuery = q.Encode()
	u.Fragment = ""
	return u.String(), nil
}

// URLFor returns the URL the fetcher would request for tab.
func (f *HTTPFetcher) URLFor(tab Tab) (string, error) {
	if tab.URL != "" {
		return tab.URL, nil
	}
	if f.docURL == "" {
		return "", fmt.Errorf("tab %q: no url and no source document configured", tab.Name)
	}
	if tab.GID == "" {
		return "", fmt.Errorf("tab %q: no gid configured", tab.Name)
	}
	return ExportURL(f.docURL, tab.GID)
}

// Fetch GETs the tab's CSV export. Non-2xx responses yield a *StatusError and
// HTML bodies yield ErrNotCSV.
func (f *HTTPFetcher) Fetch(ctx context.Context, tab Tab) (string, error) {
	target, err := f.URLFor(tab)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request to %s: %w", target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Read and discard body to allow connection reuse.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return "", &StatusError{URL: target, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", target, err)
	}
	if len(body) > maxResponseSize {
		return "", fmt.Errorf("tab %q: response exceeds %d bytes", tab.Name, maxResponseSize)
	}
	text := string(body)

	if looksLikeHTML(resp.Header.Get("Content-Type"), text) {
		return "", fmt.Errorf("tab %q: %w", tab.Name, ErrNotCSV)
	}

	slog.Debug("fetched tab", "tab", tab.Name, "bytes", len(body))
	return text, nil
}
