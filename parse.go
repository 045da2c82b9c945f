// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package lazyjson

import (
	"math"
	"strings"

	"github.com/xdg-go/lazyjson/internal/debug"
)

// FullDepth asks ParseFull to classify the whole tree.
const FullDepth = math.MaxInt

const whitespace = " \t\n\r"

// parsed is the materialized classification of a node.  Only one of object
// and array is meaningful, as selected by typ.
type parsed struct {
	typ    Type
	object map[string]*Node
	array  []*Node
}

// classify resolves text into one level of children.  With want set to
// Unknown it tries Object, then Array, then settles for Leaf.  With want set
// to Object or Array the node takes that shape even when the text does not
// describe one, in which case the collection starts out empty.
func (p *parsed) classify(text string, want Type) {
	p.object = nil
	p.array = nil
	content := strings.Trim(stripComments(text), whitespace)

	if want == Unknown || want == Object {
		if obj := parseObject(content); len(obj) > 0 {
			p.typ, p.object = Object, obj
			return
		}
		if want == Object {
			p.typ, p.object = Object, map[string]*Node{}
			return
		}
		if debug.Parse() {
			debug.Logf("no object pairs in %.40q\n", content)
		}
	}

	if want == Unknown || want == Array {
		if arr := parseArray(content); len(arr) > 0 {
			p.typ, p.array = Array, arr
			return
		}
		if want == Array {
			p.typ, p.array = Array, []*Node{}
			return
		}
		if debug.Parse() {
			debug.Logf("no array elements in %.40q\n", content)
		}
	}

	p.typ = Leaf
}

// interior strips exactly one layer of the given brackets.  It reports false
// unless both the opening and the closing bracket are present.
func interior(content string, open, end byte) (string, bool) {
	if len(content) < 2 || content[0] != open || content[len(content)-1] != end {
		return "", false
	}
	return strings.Trim(content[1:len(content)-1], whitespace), true
}

// promote turns a Leaf whose text is an empty "{}" or "[]" into an Object
// or Array once an entry of that shape has been written through Key or
// Index.
func (p *parsed) promote(text string) {
	if p.object == nil && p.array == nil {
		return
	}
	content := strings.Trim(stripComments(text), whitespace)
	if inner, ok := interior(content, '{', '}'); ok && inner == "" {
		for _, v := range p.object {
			if v.Exists() {
				p.typ = Object
				return
			}
		}
	}
	if inner, ok := interior(content, '[', ']'); ok && inner == "" {
		for _, v := range p.array {
			if v.Exists() {
				p.typ = Array
				return
			}
		}
	}
}

func parseObject(content string) map[string]*Node {
	inner, ok := interior(content, '{', '}')
	if !ok {
		return nil
	}
	var obj map[string]*Node
	for _, seg := range Split(inner) {
		sep := findSeparator(seg)
		if sep < 0 {
			continue
		}
		key, _ := stripQuotes(seg[:sep])
		if obj == nil {
			obj = make(map[string]*Node)
		}
		if _, dup := obj[key]; dup {
			continue
		}
		obj[key] = New(strings.Trim(seg[sep+1:], whitespace))
	}
	return obj
}

func parseArray(content string) []*Node {
	inner, ok := interior(content, '[', ']')
	if !ok || inner == "" {
		return nil
	}
	segs := Split(inner)
	arr := make([]*Node, 0, len(segs))
	for _, seg := range segs {
		arr = append(arr, New(strings.Trim(seg, whitespace)))
	}
	return arr
}

// stripQuotes trims white space and then one matching pair of outer quotes.
// It returns the quote character that was removed, or zero.
func stripQuotes(s string) (string, byte) {
	s = strings.Trim(s, whitespace)
	if len(s) < 2 {
		return s, 0
	}
	for _, q := range quotePairs {
		if s[0] == q[0] && s[len(s)-1] == q[1] {
			return s[1 : len(s)-1], q[0]
		}
	}
	return s, 0
}

// cleanup drops placeholders left behind by reads and returns the
// resulting size.  Objects lose every non-existent entry; arrays only lose
// a trailing run of them so that the indexes of the other elements hold.
func (p *parsed) cleanup() int {
	switch p.typ {
	case Object:
		for k, v := range p.object {
			if !v.Exists() {
				delete(p.object, k)
			}
		}
		return len(p.object)
	case Array:
		for len(p.array) > 0 && !p.array[len(p.array)-1].Exists() {
			p.array[len(p.array)-1] = nil
			p.array = p.array[:len(p.array)-1]
		}
		return len(p.array)
	case Leaf:
		return 1
	}
	return 0
}

func (p *parsed) clone() *parsed {
	c := &parsed{typ: p.typ}
	if p.object != nil {
		c.object = make(map[string]*Node, len(p.object))
		for k, v := range p.object {
			c.object[k] = v.Clone()
		}
	}
	if p.array != nil {
		c.array = make([]*Node, len(p.array))
		for i, v := range p.array {
			c.array[i] = v.Clone()
		}
	}
	return c
}

// Parse classifies the node's immediate level if that has not happened yet,
// or unconditionally when force is set.  Children stay unparsed.
func (n *Node) Parse(force bool) Type {
	if n.parsed == nil {
		n.parsed = &parsed{typ: Unknown}
	}
	if n.parsed.typ == Unknown || force {
		n.parsed.classify(n.raw, Unknown)
	}
	if n.parsed.typ == Leaf {
		n.parsed.promote(n.raw)
	}
	return n.parsed.typ
}

// ParseFull classifies the node and its descendants down to maxDepth levels
// (FullDepth for all of them; zero does nothing).  It returns the number of
// nodes visited.  This is meant for whole-tree consumers such as export;
// ordinary access stays lazy.
func (n *Node) ParseFull(force bool, maxDepth int) int {
	count := 0
	n.parseFull(force, maxDepth, &count)
	return count
}

func (n *Node) parseFull(force bool, depth int, count *int) {
	if depth <= 0 {
		return
	}
	n.Parse(force)
	*count++
	if debug.Parse() && *count%100 == 0 {
		debug.Logf("ParseFull: %d nodes\n", *count)
	}
	switch n.parsed.typ {
	case Object:
		for _, v := range n.parsed.object {
			v.parseFull(force, depth-1, count)
		}
	case Array:
		for _, v := range n.parsed.array {
			v.parseFull(force, depth-1, count)
		}
	}
}
