// Copyright 2026 The Qapulse Authors
// SPDX-License-Identifier: MIT

// Package redact strips sensitive values from strings before they appear in
// output, logs, or error messages.
package redact

import (
	"os"
	"regexp"
	"strings"
	"sync"
)

// Placeholder replaces every redacted value.
const Placeholder = "[REDACTED]"

// sensitiveEnvVars lists environment variable names whose values must never
// appear in output.
var sensitiveEnvVars = []string{
	"QAPULSE_TOKEN",
	"QAPULSE_SOURCE_URL",
	"GOOGLE_API_KEY",
	"HTTPS_PROXY",
}

// docKey matches the document key of a Google Sheets URL, published
// (/d/e/<key>) or not (/d/<key>). Anyone holding a published key can read
// the sheet.
var docKey = regexp.MustCompile(`(/spreadsheets/d/(?:e/)?)([A-Za-z0-9_-]{16,})`)

var (
	cachedSecrets []string
	cacheOnce     sync.Once
)

func loadSecrets() {
	for _, envVar := range sensitiveEnvVars {
		val := os.Getenv(envVar)
		if val != "" && len(val) >= 4 {
			cachedSecrets = append(cachedSecrets, val)
		}
	}
}

// resetCache resets the cached secrets. Used by tests that change env vars
// between calls.
func resetCache() {
	cachedSecrets = nil
	cacheOnce = sync.Once{}
}

// ResetForTest resets the cached secrets so tests in other packages can
// verify redaction behavior after setting env vars with t.Setenv.
func ResetForTest() { resetCache() }

// String replaces sensitive environment variable values and spreadsheet
// document keys with Placeholder. Secret values are cached on first call.
func String(s string) string {
	cacheOnce.Do(loadSecrets)
	for _, secret := range cachedSecrets {
		s = strings.ReplaceAll(s, secret, Placeholder)
	}
	return DocKeys(s)
}

// DocKeys replaces only spreadsheet document keys, leaving the rest of any
// URL intact so that the tab id stays readable.
func DocKeys(s string) string {
	if !strings.Contains(s, "/spreadsheets/d/") {
		return s
	}
	return docKey.ReplaceAllString(s, "${1}"+Placeholder)
}
