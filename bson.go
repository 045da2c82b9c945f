// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package lazyjson

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// BSONEncoder converts documents to BSON.  Leaves are typed the way the
// serializer sees them: quoted text and bare words are strings, true/false
// are booleans, null is null, and numbers are int32 when they fit, int64
// when they don't, and doubles when they have a fractional part.
type BSONEncoder struct {
	extJSONAllowed bool
}

// NewBSONEncoder returns an encoder with Extended JSON interpretation off.
func NewBSONEncoder() *BSONEncoder {
	return &BSONEncoder{}
}

// ExtJSON toggles whether single-key objects in MongoDB Extended JSON form,
// such as {"$oid": "..."} or {"$numberLong": "..."}, become the BSON type
// they describe.  Objects whose value doesn't convert stay documents.
func (e *BSONEncoder) ExtJSON(b bool) {
	e.extJSONAllowed = b
}

// Encode appends n, which must be an Object, as a BSON document to dst and
// returns the extended buffer, just like with `append`.
func (e *BSONEncoder) Encode(n *Node, dst []byte) ([]byte, error) {
	if got := n.Type(); got != Object {
		return nil, &TypeError{Want: Object, Got: got}
	}
	return e.appendDocument(dst, n)
}

// MarshalBSON implements bson.Marshaler with Extended JSON off.
func (n *Node) MarshalBSON() ([]byte, error) {
	return NewBSONEncoder().Encode(n, make([]byte, 0, 256))
}

func sortedKeys(obj map[string]*Node) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (e *BSONEncoder) appendDocument(dst []byte, n *Node) ([]byte, error) {
	n.parsed.cleanup()
	idx, dst := bsoncore.AppendDocumentStart(dst)
	var err error
	for _, k := range sortedKeys(n.parsed.object) {
		dst, err = e.appendElement(dst, k, n.parsed.object[k])
		if err != nil {
			return nil, err
		}
	}
	return bsoncore.AppendDocumentEnd(dst, idx)
}

func (e *BSONEncoder) appendElement(dst []byte, key string, n *Node) ([]byte, error) {
	if strings.IndexByte(key, 0) >= 0 {
		return nil, fmt.Errorf("lazyjson: BSON key %q contains a null byte", key)
	}
	switch n.Type() {
	case Uninitiated:
		return bsoncore.AppendNullElement(dst, key), nil
	case Object:
		if e.extJSONAllowed {
			if buf, ok := appendExtJSON(dst, key, n); ok {
				return buf, nil
			}
		}
		n.parsed.cleanup()
		idx, dst := bsoncore.AppendDocumentElementStart(dst, key)
		var err error
		for _, k := range sortedKeys(n.parsed.object) {
			dst, err = e.appendElement(dst, k, n.parsed.object[k])
			if err != nil {
				return nil, err
			}
		}
		return bsoncore.AppendDocumentEnd(dst, idx)
	case Array:
		n.parsed.cleanup()
		idx, dst := bsoncore.AppendArrayElementStart(dst, key)
		var err error
		for i, v := range n.parsed.array {
			dst, err = e.appendElement(dst, strconv.Itoa(i), v)
			if err != nil {
				return nil, err
			}
		}
		return bsoncore.AppendArrayEnd(dst, idx)
	}
	return appendLeaf(dst, key, n), nil
}

func appendLeaf(dst []byte, key string, n *Node) []byte {
	switch v := leafValue(n).(type) {
	case nil:
		return bsoncore.AppendNullElement(dst, key)
	case bool:
		return bsoncore.AppendBooleanElement(dst, key, v)
	case int64:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return bsoncore.AppendInt64Element(dst, key, v)
		}
		return bsoncore.AppendInt32Element(dst, key, int32(v))
	case float64:
		return bsoncore.AppendDoubleElement(dst, key, v)
	case string:
		return bsoncore.AppendStringElement(dst, key, v)
	}
	return bsoncore.AppendStringElement(dst, key, n.AsString(""))
}

// leafValue types a leaf's text: nil, bool, int64, float64 or string.
// Integers too large for int64 become doubles.
func leafValue(n *Node) any {
	data := n.leafText()
	switch {
	case isQuoted(data):
		return n.AsString("")
	case isNull(data):
		return nil
	case isBoolean(data):
		return data == "true"
	case isNumber(data):
		if strings.IndexByte(data, '.') < 0 {
			if i, err := strconv.ParseInt(data, 10, 64); err == nil {
				return i
			}
		}
		f, _ := strconv.ParseFloat(data, 64)
		return f
	}
	return n.AsString("")
}

// appendExtJSON writes n as the BSON type its single Extended JSON key
// describes.  It reports false, leaving dst alone, when n is not an
// Extended JSON value it can convert.
func appendExtJSON(dst []byte, key string, n *Node) ([]byte, bool) {
	obj := n.parsed.object
	if n.parsed.cleanup() != 1 {
		return nil, false
	}
	var (
		name string
		v    *Node
	)
	for name, v = range obj {
	}
	if !strings.HasPrefix(name, "$") {
		return nil, false
	}
	text := v.AsString("")

	switch name {
	case "$oid":
		oid, err := primitive.ObjectIDFromHex(text)
		if err != nil {
			return nil, false
		}
		return bsoncore.AppendObjectIDElement(dst, key, oid), true
	case "$symbol":
		return bsoncore.AppendSymbolElement(dst, key, text), true
	case "$numberInt":
		i, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return nil, false
		}
		return bsoncore.AppendInt32Element(dst, key, int32(i)), true
	case "$numberLong":
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, false
		}
		return bsoncore.AppendInt64Element(dst, key, i), true
	case "$numberDouble":
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, false
		}
		// Go's NaN includes a payload, which is not canonical per the
		// Extended JSON specification, so we swap in the proper NaN.
		if math.IsNaN(f) {
			f = math.Float64frombits(canonicalNaN)
		}
		return bsoncore.AppendDoubleElement(dst, key, f), true
	case "$numberDecimal":
		d, err := primitive.ParseDecimal128(text)
		if err != nil {
			return nil, false
		}
		return bsoncore.AppendDecimal128Element(dst, key, d), true
	case "$maxKey":
		if v.AsInt(0) != 1 {
			return nil, false
		}
		return bsoncore.AppendMaxKeyElement(dst, key), true
	case "$minKey":
		if v.AsInt(0) != 1 {
			return nil, false
		}
		return bsoncore.AppendMinKeyElement(dst, key), true
	case "$undefined":
		if v.leafText() != "true" {
			return nil, false
		}
		return bsoncore.AppendUndefinedElement(dst, key), true
	case "$date":
		ms, ok := dateMillis(v)
		if !ok {
			return nil, false
		}
		return bsoncore.AppendDateTimeElement(dst, key, ms), true
	}
	return nil, false
}

// dateMillis accepts the canonical {"$numberLong": "..."} form, the relaxed
// ISO-8601 string form and, as a legacy v1 form, a bare integer.
func dateMillis(v *Node) (int64, bool) {
	switch v.Type() {
	case Object:
		obj := v.AsObject(false)
		long, ok := obj["$numberLong"]
		if !ok || len(obj) != 1 {
			return 0, false
		}
		ms, err := strconv.ParseInt(long.AsString(""), 10, 64)
		return ms, err == nil
	case Leaf:
		switch x := leafValue(v).(type) {
		case int64:
			return x, true
		case string:
			ms, err := parseISO8601toEpochMillis(x)
			return ms, err == nil
		}
	}
	return 0, false
}

const canonicalNaN = 0x7FF8000000000000

// Date conversion adapted from the MongoDB Go Driver: https://github.com/mongodb/mongo-go-driver
// Licensed under the Apache 2 license.
var timeFormats = []string{"2006-01-02T15:04:05.999Z07:00", "2006-01-02T15:04:05.999Z0700"}

func parseISO8601toEpochMillis(data string) (int64, error) {
	var t time.Time
	var err error
	for _, format := range timeFormats {
		t, err = time.Parse(format, data)
		if err == nil {
			break
		}
	}
	if err != nil {
		return 0, fmt.Errorf("invalid $date value string: %s", data)
	}

	return t.Unix()*1e3 + int64(t.Nanosecond())/1e6, nil
}
