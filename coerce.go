// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package lazyjson

import (
	"encoding"
	"math"
	"strconv"
	"strings"
)

var (
	commonUnescapes = []string{`\n`, "\n", `\r`, "\r", `\t`, "\t", `\\`, `\`}
	doubleUnescaper = strings.NewReplacer(append(commonUnescapes, `\"`, `"`)...)
	singleUnescaper = strings.NewReplacer(append(commonUnescapes, `\'`, `'`)...)
	bareUnescaper   = strings.NewReplacer(commonUnescapes...)

	stringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)
)

// AsString returns the node's text with one pair of outer quotes removed
// and the escapes \n, \r, \t, \\ and the escaped form of the removed quote
// replaced.  Other escapes are left alone.  A non-existent node yields def.
func (n *Node) AsString(def string) string {
	if !n.Exists() {
		return def
	}
	s, q := stripQuotes(n.leafText())
	switch q {
	case '"':
		return doubleUnescaper.Replace(s)
	case '\'':
		return singleUnescaper.Replace(s)
	}
	return bareUnescaper.Replace(s)
}

// AsInt returns the integer found at the start of the node's unquoted text,
// ignoring anything after it.  Text without a leading integer yields 0; a
// non-existent node yields def.
func (n *Node) AsInt(def int) int {
	if !n.Exists() {
		return def
	}
	return int(clampInt(n.cleanText()))
}

// AsInt64 is AsInt for 64-bit values.
func (n *Node) AsInt64(def int64) int64 {
	if !n.Exists() {
		return def
	}
	return clampInt(n.cleanText())
}

// AsFloat returns the decimal number found at the start of the node's
// unquoted text, or 0 when there is none.  A non-existent node yields def.
func (n *Node) AsFloat(def float64) float64 {
	if !n.Exists() {
		return def
	}
	return floatPrefix(n.cleanText())
}

// AsBool is true for the unquoted texts "true", "TRUE" and "True" and for
// text starting with a nonzero integer.  A non-existent node yields def.
func (n *Node) AsBool(def bool) bool {
	if !n.Exists() {
		return def
	}
	switch s := n.cleanText(); s {
	case "true", "TRUE", "True":
		return true
	default:
		return clampInt(s) != 0
	}
}

func (n *Node) cleanText() string {
	s, _ := stripQuotes(n.leafText())
	return s
}

// leafText is the raw text without comments or surrounding white space.
func (n *Node) leafText() string {
	return strings.Trim(stripComments(n.raw), whitespace)
}

// As builds a T from the node's string value, as returned by AsString,
// through T's UnmarshalText.  A non-existent node, or text that T rejects,
// yields def.
//
//	ip := lazyjson.As[netip.Addr](doc.Key("addr"), netip.Addr{})
func As[T any, PT interface {
	*T
	encoding.TextUnmarshaler
}](n *Node, def T) T {
	if !n.Exists() {
		return def
	}
	var v T
	if err := PT(&v).UnmarshalText([]byte(n.AsString(""))); err != nil {
		return def
	}
	return v
}

// Scalar lists the element types Slice and Map can coerce to.
type Scalar interface {
	string | int | int64 | float64 | bool
}

func coerce[T Scalar](n *Node) T {
	var v T
	switch p := any(&v).(type) {
	case *string:
		*p = n.AsString("")
	case *int:
		*p = n.AsInt(0)
	case *int64:
		*p = n.AsInt64(0)
	case *float64:
		*p = n.AsFloat(0)
	case *bool:
		*p = n.AsBool(false)
	}
	return v
}

// Slice treats n as an Array and coerces every element to T.  Placeholder
// elements coerce to T's zero value.  A non-existent node yields def.
func Slice[T Scalar](n *Node, def []T) []T {
	if !n.Exists() {
		return def
	}
	arr := n.AsArray(false)
	out := make([]T, 0, len(arr))
	for _, v := range arr {
		out = append(out, coerce[T](v))
	}
	return out
}

// Map treats n as an Object and coerces every value to T.  Like Slice, it
// keeps placeholder entries left by reads, with T's zero value.  A
// non-existent node yields def.
func Map[T Scalar](n *Node, def map[string]T) map[string]T {
	if !n.Exists() {
		return def
	}
	obj := n.AsObject(false)
	out := make(map[string]T, len(obj))
	for k, v := range obj {
		out[k] = coerce[T](v)
	}
	return out
}

// intPrefix scans an optionally signed run of digits after leading white
// space, the way C's atoi does.  strconv only accepts whole strings.
func intPrefix(s string) (string, bool) {
	s = strings.TrimLeft(s, whitespace)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return "", false
	}
	return s[:i], true
}

// clampInt converts the integer prefix of s, saturating on overflow.
func clampInt(s string) int64 {
	digits, ok := intPrefix(s)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		if digits[0] == '-' {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	return n
}

// floatPrefix converts the longest decimal floating point prefix of s.
func floatPrefix(s string) float64 {
	s = strings.TrimLeft(s, whitespace)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && s[k] >= '0' && s[k] <= '9' {
			k++
		}
		if k > j {
			end = k
		}
	}
	// Out of range values come back as ±Inf along with the error.
	f, _ := strconv.ParseFloat(s[:end], 64)
	return f
}

// quoteString renders s as a double quoted leaf that AsString maps back to
// s.
func quoteString(s string) string {
	return `"` + stringEscaper.Replace(s) + `"`
}
