// Copyright 2026 The Qapulse Authors
// SPDX-License-Identifier: MIT

// Package alias maps loosely named spreadsheet columns to canonical fields.
//
// Spreadsheet tabs maintained by different teams rarely agree on column
// names: the build identifier may be "RC Build" in one tab and "Version" in
// another. A Group lists the acceptable names for one field in priority
// order, and Resolve picks the first one a dataset actually carries.
package alias

import "slices"

// Group is an ordered list of acceptable header names for one semantic field.
// Order encodes preference: the first name present in a header list wins.
type Group struct {
	Field string
	Names []string
}

// Key returns a string identifying the group's field and candidate names.
// Two groups with the same key always resolve identically.
func (g Group) Key() string {
	key := g.Field
	for _, n := range g.Names {
		key += "\x00" + n
	}
	return key
}

// Prepend returns a copy of g with extra names placed ahead of the built-in
// ones. Names already present keep only their new, earlier position.
func (g Group) Prepend(extra ...string) Group {
	if len(extra) == 0 {
		return g
	}
	names := make([]string, 0, len(extra)+len(g.Names))
	for _, n := range extra {
		if !slices.Contains(names, n) {
			names = append(names, n)
		}
	}
	for _, n := range g.Names {
		if !slices.Contains(names, n) {
			names = append(names, n)
		}
	}
	return Group{Field: g.Field, Names: names}
}

// Resolve returns the first name in g that is an exact, case-sensitive member
// of headers. It returns ("", false) when no candidate is present; callers
// treat that as "field absent" and skip whatever depends on it.
func Resolve(headers []string, g Group) (string, bool) {
	for _, name := range g.Names {
		if slices.Contains(headers, name) {
			return name, true
		}
	}
	return "", false
}

// Resolver resolves alias groups against one dataset's headers.
type Resolver interface {
	Resolve(g Group) (string, bool)
}

// Headers adapts a plain header list to the Resolver interface without
// any caching.
type Headers []string

// Resolve implements Resolver.
func (h Headers) Resolve(g Group) (string, bool) {
	return Resolve(h, g)
}

// overrideResolver prepends configured names before delegating.
type overrideResolver struct {
	base  Resolver
	extra map[string][]string
}

func (o overrideResolver) Resolve(g Group) (string, bool) {
	return o.base.Resolve(g.Prepend(o.extra[g.Field]...))
}

// WithOverrides returns a Resolver that consults extra names (keyed by
// Group.Field) ahead of each group's built-in names. A nil or empty map
// returns r unchanged.
func WithOverrides(r Resolver, extra map[string][]string) Resolver {
	if len(extra) == 0 {
		return r
	}
	return overrideResolver{base: r, extra: extra}
}
