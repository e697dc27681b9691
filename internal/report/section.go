// Copyright 2026 The Qapulse Authors
// SPDX-License-Identifier: MIT

// Package report renders tab views as terminal text or JSON. Output is built
// from a registry of sections, each focused on one part of the dashboard.
package report

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/davetashner/qapulse/internal/pipeline"
)

// ErrDataNotAvailable indicates a section has nothing to show for a view,
// typically because the tab has not loaded or a column alias did not resolve.
var ErrDataNotAvailable = errors.New("data not available")

// Section is a pluggable report section.
type Section interface {
	// Name returns the unique identifier for this section (e.g., "trend").
	Name() string

	// Description returns a human-readable description of the section.
	Description() string

	// Analyze prepares the section for rendering the given view.
	// Returns ErrDataNotAvailable (wrapped) if the view lacks what it needs.
	Analyze(v *pipeline.View) error

	// Render writes the section output to w.
	Render(w io.Writer) error
}

var (
	mu       sync.RWMutex
	registry = make(map[string]func() Section)
	order    []string
)

// Register adds a section constructor to the global registry. A fresh
// section is built for every view so that rendering holds no shared state.
// It panics if a section with the same name is already registered.
func Register(newSection func() Section) {
	mu.Lock()
	defer mu.Unlock()
	name := newSection().Name()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("report section already registered: %s", name))
	}
	registry[name] = newSection
	order = append(order, name)
}

// Get returns a new instance of the named section, or nil if not found.
func Get(name string) Section {
	mu.RLock()
	defer mu.RUnlock()
	if fn, ok := registry[name]; ok {
		return fn()
	}
	return nil
}

// List returns the names of all registered sections in registration order.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, len(order))
	copy(out, order)
	return out
}

func init() {
	registerBuiltins()
}

// registerBuiltins registers the built-in sections in display order.
func registerBuiltins() {
	Register(func() Section { return &summarySection{} })
	Register(func() Section { return &distributionSection{} })
	Register(func() Section { return &trendSection{} })
	Register(newSeveritySection)
	Register(newStatusSection)
	Register(newBuildTypeSection)
}

// resetForTesting clears the registry. Only for use in tests.
func resetForTesting() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]func() Section)
	order = nil
}
