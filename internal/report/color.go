// Copyright 2026 The Qapulse Authors
// SPDX-License-Identifier: MIT

package report

import (
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Shared color printers for report sections.
var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorBold   = color.New(color.Bold)
	colorFaint  = color.New(color.Faint)
)

// Pass-rate thresholds, in percent.
const (
	passRateGood    = 90.0
	passRateWarning = 75.0
)

// ColorPassRate colors a formatted percentage such as "82.5%".
func ColorPassRate(val string) string {
	rate, err := strconv.ParseFloat(strings.TrimSuffix(val, "%"), 64)
	if err != nil {
		return val
	}
	switch {
	case rate >= passRateGood:
		return colorGreen.Sprint(val)
	case rate >= passRateWarning:
		return colorYellow.Sprint(val)
	default:
		return colorRed.Sprint(val)
	}
}

// ColorIssues colors an issue count: 0 is green, anything else red.
func ColorIssues(val string) string {
	if val == "0" {
		return colorGreen.Sprint(val)
	}
	if _, err := strconv.ParseFloat(val, 64); err != nil {
		return val
	}
	return colorRed.Sprint(val)
}

// ColorBucket colors distribution bucket names.
func ColorBucket(val string) string {
	switch val {
	case "Passed":
		return colorGreen.Sprint(val)
	case "Failed":
		return colorRed.Sprint(val)
	case "Not Considered":
		return colorFaint.Sprint(val)
	default:
		return val
	}
}

// ColorSeverity colors common severity labels.
func ColorSeverity(val string) string {
	switch strings.ToLower(val) {
	case "critical", "blocker":
		return colorRed.Sprint(val)
	case "major", "high":
		return colorYellow.Sprint(val)
	default:
		return val
	}
}

// SectionTitle renders a bold section title.
func SectionTitle(title string) string {
	return colorBold.Sprint(title)
}
