// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package lazyjson

import "strings"

const (
	valueSeparator = ','
	nameSeparator  = ':'
	escapeChar     = '\\'
	lineComment    = "//"
)

var (
	bracketPairs = [...][2]byte{{'{', '}'}, {'[', ']'}}
	quotePairs   = [...][2]byte{{'"', '"'}, {'\'', '\''}}
)

func pairIndex(pairs [2][2]byte, ch byte) int {
	for i := range pairs {
		if pairs[i][0] == ch {
			return i
		}
	}
	return -1
}

// scanner tracks the nesting context while walking text one byte at a time.
// It never rejects input: an unclosed bracket or quote simply stays open.
type scanner struct {
	brackets []int
	quotes   []int
	escaped  bool
}

// topLevel reports whether the scanner is outside every bracket and quote.
func (s *scanner) topLevel() bool {
	return len(s.brackets) == 0 && len(s.quotes) == 0
}

func (s *scanner) reset() {
	s.brackets = s.brackets[:0]
	s.quotes = s.quotes[:0]
	s.escaped = false
}

// step consumes text[i] and returns the index of the next byte to consume
// along with whether text[i] is part of the content.  Comments are skipped
// and reported as not being content.
func (s *scanner) step(text string, i int) (next int, content bool) {
	if !s.inQuote() && strings.HasPrefix(text[i:], lineComment) {
		return skipComment(text, i), false
	}
	s.consume(text[i])
	return i + 1, true
}

func (s *scanner) inQuote() bool {
	return len(s.quotes) > 0
}

// consume updates the nesting state for one content byte.  A backslash
// inside quotes escapes the byte after it.
func (s *scanner) consume(ch byte) {
	if s.inQuote() {
		switch {
		case ch == escapeChar:
			s.escaped = !s.escaped
		case !s.escaped && ch == quotePairs[s.quotes[len(s.quotes)-1]][1]:
			s.quotes = s.quotes[:len(s.quotes)-1]
			s.escaped = false
		default:
			s.escaped = false
		}
		return
	}
	if q := pairIndex(quotePairs, ch); q >= 0 {
		s.quotes = append(s.quotes, q)
		return
	}
	if len(s.brackets) > 0 && ch == bracketPairs[s.brackets[len(s.brackets)-1]][1] {
		s.brackets = s.brackets[:len(s.brackets)-1]
		return
	}
	if b := pairIndex(bracketPairs, ch); b >= 0 {
		s.brackets = append(s.brackets, b)
	}
}

// skipComment returns the index just past the line terminator ending the
// comment that starts at i.  A '\r' only terminates the comment when the
// remaining text has no '\n' at all.
func skipComment(text string, i int) int {
	if nl := strings.IndexByte(text[i:], '\n'); nl >= 0 {
		return i + nl + 1
	}
	if cr := strings.IndexByte(text[i:], '\r'); cr >= 0 {
		return i + cr + 1
	}
	return len(text)
}

// Split breaks the interior of an object or array (the text between the
// outer brackets) into its top-level comma separated segments.  Commas
// nested in brackets or quotes do not split, and line comments are dropped.
// A trailing segment is returned even without a final delimiter, so a
// malformed interior comes back as a single unsplit segment instead of an
// error.
func Split(text string) []string {
	var (
		segs    []string
		current strings.Builder
		s       scanner
	)
	for i := 0; i < len(text); {
		if s.topLevel() && text[i] == valueSeparator {
			segs = append(segs, current.String())
			current.Reset()
			s.reset()
			i++
			continue
		}
		next, content := s.step(text, i)
		if content {
			current.WriteByte(text[i])
		}
		i = next
	}
	if current.Len() > 0 {
		segs = append(segs, current.String())
	}
	return segs
}

// findSeparator returns the byte offset of the first top-level key/value
// separator in seg, or -1 when there is none.
func findSeparator(seg string) int {
	var s scanner
	for i := 0; i < len(seg); {
		if s.topLevel() && seg[i] == nameSeparator {
			return i
		}
		i, _ = s.step(seg, i)
	}
	return -1
}

// stripComments removes line comments that sit outside quotes.
func stripComments(text string) string {
	if !strings.Contains(text, lineComment) {
		return text
	}
	var (
		out strings.Builder
		s   scanner
	)
	for i := 0; i < len(text); {
		next, content := s.step(text, i)
		if content {
			out.WriteByte(text[i])
		}
		i = next
	}
	return out.String()
}
