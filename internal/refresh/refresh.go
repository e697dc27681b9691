// Copyright 2026 The Qapulse Authors
// SPDX-License-Identifier: MIT

// Package refresh keeps one parsed dataset per logical tab up to date.
//
// Every fetch for a tab takes the next value of that tab's generation
// counter. When the fetch completes, its result is applied only if no newer
// fetch for the same tab has started in the meantime; otherwise it is
// dropped so that a slow automatic refresh can never overwrite the result
// of a later manual one. A failed fetch records the error but keeps the
// previous dataset.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/sync/errgroup"

	"github.com/davetashner/qapulse/internal/dataset"
	"github.com/davetashner/qapulse/internal/source"
)

// DefaultMaxParallel bounds concurrent tab fetches.
const DefaultMaxParallel = 4

// TabState is an immutable snapshot of one tab. A new value replaces the old
// one on every applied fetch.
type TabState struct {
	Tab source.Tab

	// Dataset is the most recently applied dataset, or nil before the first
	// successful fetch.
	Dataset *dataset.Dataset

	// Err is the error from the latest applied fetch, nil on success. A
	// failed fetch keeps the previous Dataset.
	Err error

	// Generation is the fetch generation that produced this state.
	Generation uint64

	// FetchID correlates this state with its log lines.
	FetchID string

	// FetchedAt is when Dataset was last replaced.
	FetchedAt time.Time

	// CorrectedGID is set when tab discovery replaced a stale GID.
	CorrectedGID string
}

// Loaded reports whether the tab has a dataset to show.
func (s TabState) Loaded() bool { return s.Dataset != nil }

type tabEntry struct {
	order int
	gen   atomic.Uint64

	mu    sync.Mutex // serializes apply against other applies
	tab   source.Tab
	state atomic.Pointer[TabState]
}

// Orchestrator fetches and parses tabs and holds the current state of each.
type Orchestrator struct {
	fetcher     source.Fetcher
	discoverer  source.Discoverer
	maxParallel int
	now         func() time.Time
	onApply     func(TabState)

	tabs  *xsync.MapOf[string, *tabEntry]
	names []string

	trigger chan struct{}
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithDiscoverer enables the single corrective retry on stale tab ids.
func WithDiscoverer(d source.Discoverer) Option {
	return func(o *Orchestrator) { o.discoverer = d }
}

// WithMaxParallel bounds concurrent fetches. Values < 1 are ignored.
func WithMaxParallel(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.maxParallel = n
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithOnApply registers a callback invoked after each applied state change.
func WithOnApply(fn func(TabState)) Option {
	return func(o *Orchestrator) { o.onApply = fn }
}

// New creates an Orchestrator for tabs. Tab names must be unique.
func New(fetcher source.Fetcher, tabs []source.Tab, opts ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		fetcher:     fetcher,
		maxParallel: DefaultMaxParallel,
		now:         time.Now,
		tabs:        xsync.NewMapOf[string, *tabEntry](),
		trigger:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(o)
	}

	for i, tab := range tabs {
		if tab.Name == "" {
			return nil, fmt.Errorf("tab %d: name is required", i)
		}
		e := &tabEntry{order: i, tab: tab}
		e.state.Store(&TabState{Tab: tab})
		if _, loaded := o.tabs.LoadOrStore(tab.Name, e); loaded {
			return nil, fmt.Errorf("duplicate tab name %q", tab.Name)
		}
		o.names = append(o.names, tab.Name)
	}
	return o, nil
}

// Tabs returns the tab names in configuration order.
func (o *Orchestrator) Tabs() []string {
	out := make([]string, len(o.names))
	copy(out, o.names)
	return out
}

// State returns the current state of the named tab.
func (o *Orchestrator) State(name string) (TabState, bool) {
	e, ok := o.tabs.Load(name)
	if !ok {
		return TabState{}, false
	}
	return *e.state.Load(), true
}

// States returns every tab's current state in configuration order.
func (o *Orchestrator) States() []TabState {
	out := make([]TabState, 0, len(o.names))
	for _, name := range o.names {
		if s, ok := o.State(name); ok {
			out = append(out, s)
		}
	}
	return out
}

// begin reserves the next generation for a tab.
func (e *tabEntry) begin() uint64 {
	return e.gen.Add(1)
}

// Ingest parses text and applies it to the named tab under a fresh
// generation. It is the entry point for callers that already hold CSV text.
func (o *Orchestrator) Ingest(name, text string) error {
	e, ok := o.tabs.Load(name)
	if !ok {
		return fmt.Errorf("unknown tab %q", name)
	}
	gen := e.begin()
	o.apply(e, gen, uuid.NewString(), dataset.Parse(text), nil, "")
	return nil
}

// apply installs a fetch outcome if gen is still the latest generation
// issued for the tab. It reports whether the outcome was applied.
func (o *Orchestrator) apply(e *tabEntry, gen uint64, fetchID string, ds *dataset.Dataset, fetchErr error, correctedGID string) bool {
	e.mu.Lock()
	if gen != e.gen.Load() {
		e.mu.Unlock()
		slog.Debug("discarding stale fetch", "tab", e.tab.Name, "generation", gen, "fetch_id", fetchID)
		return false
	}

	prev := e.state.Load()
	next := &TabState{
		Tab:          e.tab,
		Dataset:      prev.Dataset,
		Generation:   gen,
		FetchID:      fetchID,
		FetchedAt:    prev.FetchedAt,
		CorrectedGID: prev.CorrectedGID,
		Err:          fetchErr,
	}
	if correctedGID != "" {
		next.CorrectedGID = correctedGID
		e.tab.GID = correctedGID
		next.Tab = e.tab
	}
	if fetchErr == nil {
		next.Dataset = ds
		next.FetchedAt = o.now()
	}
	e.state.Store(next)
	e.mu.Unlock()

	if o.onApply != nil {
		o.onApply(*next)
	}
	return true
}

// RefreshTab fetches one tab and applies the result. The returned error is
// the fetch error, if any; it is also recorded on the tab state.
func (o *Orchestrator) RefreshTab(ctx context.Context, name string) error {
	e, ok := o.tabs.Load(name)
	if !ok {
		return fmt.Errorf("unknown tab %q", name)
	}

	gen := e.begin()
	fetchID := uuid.NewString()
	e.mu.Lock()
	tab := e.tab
	e.mu.Unlock()

	start := o.now()
	log := slog.With("tab", name, "generation", gen, "fetch_id", fetchID)
	log.Debug("fetching tab")

	text, corrected, err := o.fetch(ctx, tab)
	if err != nil {
		if ctx.Err() != nil {
			// Shutting down; leave the previous state untouched.
			return err
		}
		if o.apply(e, gen, fetchID, nil, err, "") {
			log.Warn("tab fetch failed", "error", err)
		}
		return err
	}

	ds := dataset.Parse(text)
	if o.apply(e, gen, fetchID, ds, nil, corrected) {
		log.Info("tab refreshed", "rows", ds.Len(), "duration", o.now().Sub(start).Round(time.Millisecond))
	}
	return nil
}

// fetch performs the fetch with at most one discovery-driven retry.
func (o *Orchestrator) fetch(ctx context.Context, tab source.Tab) (text, correctedGID string, err error) {
	text, err = o.fetcher.Fetch(ctx, tab)
	if err == nil || o.discoverer == nil || !source.IsInvalidTab(err) || tab.Path != "" || tab.URL != "" {
		return text, "", err
	}

	ids, derr := o.discoverer.Discover(ctx)
	if derr != nil {
		slog.Debug("tab discovery failed", "tab", tab.Name, "error", derr)
		return "", "", err
	}
	gid, ok := ids[tab.DisplayName()]
	if !ok || gid == "" || gid == tab.GID {
		return "", "", err
	}

	slog.Info("retrying with discovered tab id", "tab", tab.Name, "old_gid", tab.GID, "new_gid", gid)
	retry := tab
	retry.GID = gid
	text, rerr := o.fetcher.Fetch(ctx, retry)
	if rerr != nil {
		return "", "", errors.Join(err, fmt.Errorf("retry with discovered gid %s: %w", gid, rerr))
	}
	return text, gid, nil
}

// Result summarizes one refresh cycle.
type Result struct {
	Succeeded []string
	Failed    map[string]error
}

// Refresh fetches every tab concurrently and waits for all of them. One tab's
// failure does not stop the others; failures are reported in Result. The
// error is non-nil only when ctx ends before the cycle completes.
func (o *Orchestrator) Refresh(ctx context.Context) (Result, error) {
	var mu sync.Mutex
	res := Result{Failed: make(map[string]error)}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.maxParallel)
	for _, name := range o.names {
		name := name
		g.Go(func() error {
			err := o.RefreshTab(gctx, name)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Failed[name] = err
			} else {
				res.Succeeded = append(res.Succeeded, name)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return res, err
	}
	return res, nil
}

// Trigger requests an immediate refresh from Run. Requests made while one is
// already pending are coalesced.
func (o *Orchestrator) Trigger() {
	select {
	case o.trigger <- struct{}{}:
	default:
	}
}

// Run refreshes all tabs immediately and then on every tick of interval, or
// sooner when Trigger is called, until ctx is done. After each cycle,
// onCycle (if non-nil) receives the cycle result.
func (o *Orchestrator) Run(ctx context.Context, interval time.Duration, onCycle func(Result)) error {
	if interval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %s", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		res, err := o.Refresh(ctx)
		if err != nil {
			return err
		}
		if onCycle != nil {
			onCycle(res)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case <-o.trigger:
			slog.Debug("manual refresh requested")
		}
	}
}
