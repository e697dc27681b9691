// Copyright 2026 The Qapulse Authors
// SPDX-License-Identifier: MIT

package dataset

import (
	"regexp"
	"strconv"
)

// numericPattern matches optionally signed integers and decimals.
var numericPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// Value is the content of one row/column intersection: either a number or a
// string. Numeric values keep their source text so that identifiers such as
// "5.10" stringify exactly as written.
type Value struct {
	text  string
	num   float64
	isNum bool
}

// Coerce builds a Value from trimmed cell text. Non-empty text that is
// entirely numeric becomes a number; everything else stays a string.
func Coerce(text string) Value {
	if text != "" && numericPattern.MatchString(text) {
		if n, err := strconv.ParseFloat(text, 64); err == nil {
			return Value{text: text, num: n, isNum: true}
		}
	}
	return Value{text: text}
}

// Number returns a numeric Value.
func Number(n float64) Value {
	return Value{text: strconv.FormatFloat(n, 'f', -1, 64), num: n, isNum: true}
}

// String returns a string Value.
func String(s string) Value {
	return Value{text: s}
}

// IsNumber reports whether the cell was coerced to a number.
func (v Value) IsNumber() bool { return v.isNum }

// IsEmpty reports whether the cell holds the empty string.
func (v Value) IsEmpty() bool { return !v.isNum && v.text == "" }

// Float returns the numeric value and true, or 0 and false for strings.
func (v Value) Float() (float64, bool) {
	return v.num, v.isNum
}

// Num returns the numeric value, or 0 for string cells.
func (v Value) Num() float64 {
	return v.num
}

// String returns the cell's text. For numbers this is the source text.
func (v Value) String() string { return v.text }
