// Copyright 2026 The Qapulse Authors
// SPDX-License-Identifier: MIT

// Package dataset parses published spreadsheet CSV exports into typed rows.
//
// The parser is deliberately simple: it splits on commas without any quote
// handling and never fails. Malformed rows degrade to partial or empty
// cells rather than errors.
package dataset

import (
	"io"
	"strings"
	"sync"

	"github.com/davetashner/qapulse/internal/alias"
)

// Row maps a column name to its cell value.
type Row map[string]Value

// Get returns the cell for col, or an empty string Value when absent.
func (r Row) Get(col string) Value {
	return r[col]
}

// Dataset is an ordered header list plus rows in source order. A Dataset is
// never modified after Parse returns; refreshes replace it wholesale.
type Dataset struct {
	Headers []string
	Rows    []Row

	mu       sync.Mutex
	resolved map[string]resolution
}

type resolution struct {
	name string
	ok   bool
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// Resolve resolves an alias group against this dataset's headers. Results
// are memoized per group so repeated recomputation does not rescan headers.
func (d *Dataset) Resolve(g alias.Group) (string, bool) {
	if d == nil {
		return "", false
	}
	key := g.Key()

	d.mu.Lock()
	defer d.mu.Unlock()
	if r, ok := d.resolved[key]; ok {
		return r.name, r.ok
	}
	name, ok := alias.Resolve(d.Headers, g)
	if d.resolved == nil {
		d.resolved = make(map[string]resolution)
	}
	d.resolved[key] = resolution{name: name, ok: ok}
	return name, ok
}

// Parse converts CSV text into a Dataset. Blank lines are skipped, the first
// remaining line is the header row, and every following line becomes a row
// with one Value per header. Empty input yields an empty Dataset.
func Parse(text string) *Dataset {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}

	ds := &Dataset{Headers: []string{}, Rows: []Row{}}
	if len(lines) == 0 {
		return ds
	}

	ds.Headers = splitTrim(lines[0])
	ds.Rows = make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := splitTrim(line)
		row := make(Row, len(ds.Headers))
		for i, h := range ds.Headers {
			var text string
			if i < len(values) {
				text = values[i]
			}
			row[h] = Coerce(text)
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds
}

// ParseReader reads all of r and parses it. Only read errors are returned.
func ParseReader(r io.Reader) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(data)), nil
}

func splitTrim(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
