// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package lazyjson

import (
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/xdg-go/lazyjson/internal/debug"
)

const indentTab = "    "

var numberPattern = regexp.MustCompile(`^[+-]?[0-9]*\.?[0-9]+$`)

type encodeOpts struct {
	comments  bool
	writeBack bool
	pretty    bool
	annotate  func(Type) string
}

// EncodeOption configures Text and Encode.
type EncodeOption func(*encodeOpts)

// WithPretty spreads objects and arrays over multiple lines, one entry per
// line, indented by four spaces per level.
func WithPretty(v bool) EncodeOption {
	return func(o *encodeOpts) { o.pretty = v }
}

// WithComments follows every object or array entry with a line comment
// naming the entry's type.  It has no effect together with WithPretty.
func WithComments(v bool) EncodeOption {
	return func(o *encodeOpts) { o.comments = v }
}

// WithWriteBack controls whether each rendered node stores its rendering as
// its new raw text.  It is on by default.
func WithWriteBack(v bool) EncodeOption {
	return func(o *encodeOpts) { o.writeBack = v }
}

// WithAnnotator replaces the comment text written by WithComments.  The
// function should return a complete line comment, such as "// object".
func WithAnnotator(f func(Type) string) EncodeOption {
	return func(o *encodeOpts) { o.annotate = f }
}

func defaultAnnotation(t Type) string {
	return lineComment + " " + t.String()
}

// Text renders the node in canonical form: keys and strings in double
// quotes, bare words that are not numbers, booleans or null quoted as
// strings, and single quoted strings converted to double quotes.  Object
// keys come out sorted.  Placeholders are cleaned up first and interior
// array placeholders render as null.
//
// Rendering reads the whole tree and, unless WithWriteBack(false) is given,
// replaces every rendered node's raw text with its canonical form.  The
// canonical form is a fixed point, so rendering again gives the same text.
func (n *Node) Text(opts ...EncodeOption) string {
	o := encodeOpts{writeBack: true, annotate: defaultAnnotation}
	for _, opt := range opts {
		opt(&o)
	}
	return n.render(&o)
}

// String renders the node like Text without writing anything back.
func (n *Node) String() string {
	return n.Text(WithWriteBack(false))
}

// Encode writes the node's Text and a newline to w.
func (n *Node) Encode(w io.Writer, opts ...EncodeOption) error {
	_, err := io.WriteString(w, n.Text(opts...)+"\n")
	return err
}

func (n *Node) render(o *encodeOpts) string {
	if !n.Exists() {
		return ""
	}
	n.Parse(false)
	n.parsed.cleanup()

	var ret string
	switch n.parsed.typ {
	case Object:
		keys := make([]string, 0, len(n.parsed.object))
		for k := range n.parsed.object {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]string, len(keys))
		for i, k := range keys {
			entries[i] = quoteKey(k) + ":" + n.parsed.object[k].render(o)
		}
		ret = joinEntries("{", "}", entries, func(i int) Type {
			return n.parsed.object[keys[i]].Type()
		}, o)
	case Array:
		entries := make([]string, len(n.parsed.array))
		for i, v := range n.parsed.array {
			if !v.Exists() {
				entries[i] = "null"
				continue
			}
			entries[i] = v.render(o)
		}
		ret = joinEntries("[", "]", entries, func(i int) Type {
			return n.parsed.array[i].Type()
		}, o)
	default:
		ret = canonicalLeaf(n.leafText())
	}

	if o.writeBack {
		n.raw = ret
	}
	return ret
}

func joinEntries(open, end string, entries []string, typeOf func(int) Type, o *encodeOpts) string {
	var b strings.Builder
	b.WriteString(open)
	if o.pretty {
		b.WriteByte('\n')
	}
	for i, e := range entries {
		if o.pretty {
			b.WriteString(indentTab)
			e = indentNewlines(e)
		}
		b.WriteString(e)
		if i < len(entries)-1 {
			b.WriteByte(',')
		}
		if o.comments && !o.pretty {
			// The newline ends the comment so the following entries stay
			// readable.
			b.WriteString(" " + o.annotate(typeOf(i)) + "\n")
		}
		if o.pretty {
			b.WriteByte('\n')
		}
	}
	b.WriteString(end)
	return b.String()
}

func indentNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", "\n"+indentTab)
}

func isNumber(s string) bool {
	return numberPattern.MatchString(s)
}

func isBoolean(s string) bool {
	return s == "true" || s == "false"
}

func isNull(s string) bool {
	return s == "null"
}

func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	for _, q := range quotePairs {
		if s[0] == q[0] && s[len(s)-1] == q[1] {
			return true
		}
	}
	return false
}

// canonicalLeaf quotes bare strings and rewrites quoted ones in double
// quote form.  Numbers, booleans and null pass through.  data comes
// without comments, as it does when classifying.
func canonicalLeaf(data string) string {
	if data == "" || (data[0] != '"' && data[0] != '\'') {
		if isNumber(data) || isBoolean(data) || isNull(data) {
			return data
		}
		if debug.Emit() {
			debug.Logf("quoting bare leaf %.40q\n", data)
		}
		return `"` + requote(data, 0) + `"`
	}
	if !isQuoted(data) {
		return data
	}
	return `"` + requote(data[1:len(data)-1], data[0]) + `"`
}

// requote rewrites the body of a string quoted with q (0 for a bare word)
// as the body of a double quoted string with the same AsString value.
// Escapes are paired left to right, so `\\'` is an escaped backslash
// followed by a quote.
func requote(inner string, q byte) string {
	if !strings.ContainsAny(inner, `"'\`) {
		return inner
	}
	b := make([]byte, 0, len(inner)+4)
	escaped := false
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if escaped {
			escaped = false
			switch {
			case c == q && c == '\'':
				b[len(b)-1] = c
				continue
			case c != q && (c == '"' || c == '\''):
				// Not an escape for this quote: AsString keeps the backslash.
				b = append(b, escapeChar)
				if c == '"' {
					b = append(b, escapeChar)
				}
			}
			b = append(b, c)
			continue
		}
		switch c {
		case escapeChar:
			escaped = true
		case '"':
			b = append(b, escapeChar)
		}
		b = append(b, c)
	}
	if escaped {
		b = append(b, escapeChar)
	}
	return string(b)
}

func quoteKey(k string) string {
	return `"` + requote(k, '"') + `"`
}
