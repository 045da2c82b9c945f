// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package lazyjson

// Interface converts the whole tree to plain Go values: map[string]any for
// objects, []any for arrays and, for leaves, nil, bool, int64, float64 or
// string, typed the same way as for BSON.  Interior array placeholders
// become nil and a non-existent node converts to nil.
func (n *Node) Interface() any {
	switch n.Type() {
	case Object:
		n.parsed.cleanup()
		m := make(map[string]any, len(n.parsed.object))
		for k, v := range n.parsed.object {
			m[k] = v.Interface()
		}
		return m
	case Array:
		n.parsed.cleanup()
		a := make([]any, len(n.parsed.array))
		for i, v := range n.parsed.array {
			a[i] = v.Interface()
		}
		return a
	case Leaf:
		return leafValue(n)
	}
	return nil
}

// MarshalYAML implements the yaml.InterfaceMarshaler interface of
// github.com/goccy/go-yaml.
func (n *Node) MarshalYAML() (any, error) {
	return n.Interface(), nil
}
