// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package lazyjson

import (
	"strconv"
	"strings"
)

// Node is a lazily parsed document value.  It holds the raw text it was
// created from and, once a structural method has been called, the
// classification of its immediate level.  Children are Nodes of their own
// and are only classified when they are accessed.
//
// A Node exclusively owns its children; nothing is shared between trees.
// Use Clone to get an independent copy.  Nodes are not safe for concurrent
// use, and that includes reads, since reading can parse and, through Text,
// rewrite the raw text.
//
// The zero Node is a non-existent placeholder.  Reads on it return defaults
// and writes make it exist.
type Node struct {
	raw    string
	exists bool
	parsed *parsed
}

// New returns an unparsed Node for text.
func New(text string) *Node {
	return &Node{raw: text, exists: true}
}

// Raw returns the node's current raw text.  This is the text the node was
// created from until Text with write-back replaces it with the canonical
// form.
func (n *Node) Raw() string {
	return n.raw
}

// Exists reports whether the node holds real data rather than being a
// placeholder created by a read.  A placeholder starts existing once any
// node below it is written.
func (n *Node) Exists() bool {
	if n.exists {
		return true
	}
	if n.parsed == nil {
		return false
	}
	switch n.parsed.typ {
	case Object:
		for _, v := range n.parsed.object {
			if v.Exists() {
				return true
			}
		}
	case Array:
		for _, v := range n.parsed.array {
			if v.Exists() {
				return true
			}
		}
	}
	return false
}

// IsParsed reports whether the node has a classification record yet.
func (n *Node) IsParsed() bool {
	return n.parsed != nil
}

// Type classifies the node if needed and returns its type.  Non-existent
// nodes are Uninitiated.
func (n *Node) Type() Type {
	if !n.Exists() {
		return Uninitiated
	}
	return n.Parse(false)
}

// Size returns the number of entries of an Object or Array, 1 for a Leaf
// and 0 for a non-existent node.  Placeholders left by reads are removed
// first, see Key and Index.
func (n *Node) Size() int {
	if !n.Exists() {
		return 0
	}
	n.Parse(false)
	return n.parsed.cleanup()
}

// AsObject returns the node's live key/child map, treating the node as an
// Object.  If the node is not already an Object, or if force is set, the
// raw text is classified again as an Object.  Force discards everything
// written since the text was last parsed.  Without force, text that does
// not describe an object yields the keys already set through Key, or an
// empty map that later writes are kept in.
func (n *Node) AsObject(force bool) map[string]*Node {
	n.reshape(Object, force)
	return n.parsed.object
}

// AsArray is like AsObject, for arrays.  The returned slice shares its
// elements with the node, but growing it does not grow the node; use Index
// for that.
func (n *Node) AsArray(force bool) []*Node {
	n.reshape(Array, force)
	return n.parsed.array
}

func (n *Node) reshape(want Type, force bool) {
	if !force {
		n.Parse(false)
	} else if n.parsed == nil {
		n.parsed = &parsed{typ: Unknown}
	}
	if !force && n.parsed.typ == want {
		return
	}
	obj, arr := n.parsed.object, n.parsed.array
	n.parsed.classify(n.raw, want)
	if force {
		return
	}
	if want == Object && len(n.parsed.object) == 0 && obj != nil {
		n.parsed.object = obj
	}
	if want == Array && len(n.parsed.array) == 0 && arr != nil {
		n.parsed.array = arr
	}
}

// Object returns the children of a node whose resolved type is Object.  It
// never reclassifies; any other type is reported as a *TypeError.
func (n *Node) Object() (map[string]*Node, error) {
	if got := n.Type(); got != Object {
		return nil, &TypeError{Want: Object, Got: got}
	}
	return n.parsed.object, nil
}

// Array returns the elements of a node whose resolved type is Array, or a
// *TypeError.
func (n *Node) Array() ([]*Node, error) {
	if got := n.Type(); got != Array {
		return nil, &TypeError{Want: Array, Got: got}
	}
	return n.parsed.array, nil
}

// Key returns the child stored under k, treating n as an Object.  A missing
// key is never an error: a non-existent placeholder is inserted and
// returned, so that
//
//	doc.Key("a").Key("b").AsInt(-1)
//
// yields -1 when either key is absent.  Placeholders are dropped again by
// Size and Text unless something was written to them.
//
// Key never changes the type of a node that holds data.  Asking a Leaf or
// an Array for a key returns a child kept aside from the node's value:
// reads give defaults and writes are not rendered.  The one exception is a
// Leaf whose text is "{}", which becomes an Object once a key is written.
func (n *Node) Key(k string) *Node {
	p := n.view(Object)
	if p.object == nil {
		p.object = map[string]*Node{}
	}
	child, ok := p.object[k]
	if !ok {
		child = &Node{}
		p.object[k] = child
	}
	return child
}

// Index returns element i, treating n as an Array.  Indexing past the end
// grows the array up to and including i, filling the new slots with
// non-existent placeholders.  A negative index returns a detached
// placeholder.  Like Key, Index leaves the type of an Object or Leaf alone,
// except that a "[]" Leaf becomes an Array once an element is written.
func (n *Node) Index(i int) *Node {
	if i < 0 {
		return &Node{}
	}
	p := n.view(Array)
	for len(p.array) <= i {
		p.array = append(p.array, &Node{})
	}
	return p.array[i]
}

// view classifies n for Key and Index.  Only a node without data is
// reshaped to want; anything else keeps its resolved type.
func (n *Node) view(want Type) *parsed {
	n.Parse(false)
	if n.parsed.typ != want && !n.Exists() {
		n.parsed.classify(n.raw, want)
	}
	return n.parsed
}

// Lookup walks a dot separated path of keys.  A segment made only of digits
// indexes into the current node when that node is an Array.  Lookup
// auto-vivifies like Key and Index do.
func (n *Node) Lookup(path string) *Node {
	cur := n
	if path == "" {
		return cur
	}
	for _, seg := range strings.Split(path, ".") {
		if i, err := strconv.Atoi(seg); err == nil && i >= 0 && cur.Type() == Array {
			cur = cur.Index(i)
			continue
		}
		cur = cur.Key(seg)
	}
	return cur
}

// Set replaces n's contents with a deep copy of v.  Writing v's contents
// into a placeholder makes it exist when v does.
func (n *Node) Set(v *Node) {
	c := v.Clone()
	n.raw, n.exists, n.parsed = c.raw, c.exists, c.parsed
}

// SetRaw replaces n with an unparsed node for text.
func (n *Node) SetRaw(text string) {
	n.raw, n.exists, n.parsed = text, true, nil
}

// SetString replaces n with a quoted string leaf whose AsString value is s.
func (n *Node) SetString(s string) {
	n.SetRaw(quoteString(s))
}

// Clone returns a deep copy of n, including everything parsed so far.
func (n *Node) Clone() *Node {
	c := &Node{raw: n.raw, exists: n.exists}
	if n.parsed != nil {
		c.parsed = n.parsed.clone()
	}
	return c
}
