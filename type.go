// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package lazyjson

// Type is the resolved shape of a Node.
type Type int

const (
	// Uninitiated is reported for nodes that do not exist, such as the
	// placeholders created by Key and Index.
	Uninitiated Type = iota
	// Unknown is the type of a node that has not been classified yet.
	Unknown
	Object
	Array
	Leaf
)

var typeNames = [...]string{
	Uninitiated: "uninitiated",
	Unknown:     "unknown",
	Object:      "object",
	Array:       "array",
	Leaf:        "leaf",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return typeNames[Unknown]
	}
	return typeNames[t]
}
