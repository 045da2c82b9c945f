// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package lazyjson

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Some tests adapted from the MongoDB BSON Corpus, licensed CC by-sa-nc:
// https://github.com/mongodb/specifications/blob/master/source/bson-corpus/bson-corpus.rst
func TestMarshalBSON(t *testing.T) {
	t.Parallel()

	cases := []bsonTestCase{
		{label: "true", input: `{"b" : true}`, output: "090000000862000100"},
		{label: "false", input: `{"b" : false}`, output: "090000000862000000"},
		{label: "null", input: `{"a" : null}`, output: "080000000A610000"},
		{label: "empty string", input: `{"a" : ""}`, output: "0D000000026100010000000000"},
		{label: "single character", input: `{"a" : "b"}`, output: "0E00000002610002000000620000"},
		{label: "single quoted", input: `{a : 'b'}`, output: "0E00000002610002000000620000"},
		{label: "bare word", input: `{a : b}`, output: "0E00000002610002000000620000"},
		{label: "MinInt32", input: `{"i" : -2147483648}`, output: "0C0000001069000000008000"},
		{label: "MaxInt32", input: `{"i" : 2147483647}`, output: "0C000000106900FFFFFF7F00"},
		{label: "-1", input: `{"i" : -1}`, output: "0C000000106900FFFFFFFF00"},
		{label: "0", input: `{"i" : 0}`, output: "0C0000001069000000000000"},
		{label: "1", input: `{"i" : 1}`, output: "0C0000001069000100000000"},
		{label: "MinInt64", input: `{"a" : -9223372036854775808}`, output: "10000000126100000000000000008000"},
		{label: "MaxInt64", input: `{"a" : 9223372036854775807}`, output: "10000000126100FFFFFFFFFFFFFF7F00"},
		{label: "+1.0", input: `{"d" : 1.0}`, output: "10000000016400000000000000F03F00"},
		{label: "-1.0", input: `{"d" : -1.0}`, output: "10000000016400000000000000F0BF00"},
		{label: "multikey", input: `{"a":true, "b":false}`, output: "0d000000086100010862000000"},
		{label: "keys sorted", input: `{b:false, a:true}`, output: "0d000000086100010862000000"},
		{label: "multi-array", input: `{"a":["b","c"]}`, output: "1f000000046100170000000230000200000062000231000200000063000000"},
		{label: "not an object", input: `[1, 2]`, errStr: "expected object node, got array"},
		{label: "leaf", input: `5`, errStr: "expected object node, got leaf"},
		{label: "null byte in key", input: "{\"a\x00b\": 1}", errStr: "contains a null byte"},
	}

	testWithBSON(t, cases, false)
}

func TestExtJSON(t *testing.T) {
	t.Parallel()

	cases := []bsonTestCase{
		{
			label:  "$oid",
			input:  `{"a" : {"$oid" : "56e1fc72e0c917e9c4714161"}}`,
			output: "1400000007610056E1FC72E0C917E9C471416100",
		},
		{
			label:  "$symbol",
			input:  `{"a": {"$symbol": ""}}`,
			output: "0D0000000E6100010000000000",
		},
		{
			label:  "$numberInt",
			input:  `{"i" : {"$numberInt": "0"}}`,
			output: "0C0000001069000000000000",
		},
		{
			label:  "$numberLong",
			input:  `{"a" : {"$numberLong" : "-9223372036854775808"}}`,
			output: "10000000126100000000000000008000",
		},
		{
			label:  "$numberDouble",
			input:  `{"d" : {"$numberDouble": "1.23456789012345677E+18"}}`,
			output: "1000000001640081E97DF41022B14300",
		},
		{
			label:  "$numberDouble NaN",
			input:  `{"d": {"$numberDouble": "NaN"}}`,
			output: "10000000016400000000000000F87F00",
		},
		{
			label:  "$numberDouble Inf",
			input:  `{"d": {"$numberDouble": "Infinity"}}`,
			output: "10000000016400000000000000F07F00",
		},
		{
			label:  "$numberDouble -Inf",
			input:  `{"d": {"$numberDouble": "-Infinity"}}`,
			output: "10000000016400000000000000F0FF00",
		},
		{
			label:  "$numberDecimal",
			input:  `{"d" : {"$numberDecimal" : "0.1000000000000000000000000000000000"}}`,
			output: "18000000136400000000000A5BC138938D44C64D31FC2F00",
		},
		{
			label:  "$maxKey",
			input:  `{"a" : {"$maxKey" : 1}}`,
			output: "080000007F610000",
		},
		{
			label:  "$minKey",
			input:  `{"a" : {"$minKey" : 1}}`,
			output: "08000000FF610000",
		},
		{
			label:  "$undefined",
			input:  `{"a" : {"$undefined" : true}}`,
			output: "0800000006610000",
		},
		{
			label:  "bare keys and single quotes",
			input:  `{a : {$oid : '56e1fc72e0c917e9c4714161'}}`,
			output: "1400000007610056E1FC72E0C917E9C471416100",
		},
		{
			label:  "bad $oid stays a document",
			input:  `{"a" : {"$oid" : "xyz"}}`,
			output: "1B0000000361001300000002246F6964000400000078797A000000",
		},
	}

	testWithBSON(t, cases, true)
}

func TestExtJSONDates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		label string
		input string
		ms    int64
	}{
		{label: "ISO-8601", input: `{d: {$date: "1970-01-01T00:00:01.5Z"}}`, ms: 1500},
		{label: "ISO-8601 offset", input: `{d: {$date: "1970-01-01T01:00:00+01:00"}}`, ms: 0},
		{label: "$numberLong", input: `{d: {$date: {$numberLong: "-1000"}}}`, ms: -1000},
		{label: "integer", input: `{d: {$date: 42}}`, ms: 42},
	}

	for _, c := range cases {
		t.Run(c.label, func(t *testing.T) {
			t.Parallel()
			enc := NewBSONEncoder()
			enc.ExtJSON(true)
			buf, err := enc.Encode(New(c.input), nil)
			if err != nil {
				t.Fatal(err)
			}
			v := bson.Raw(buf).Lookup("d")
			if v.Type != bsontype.DateTime {
				t.Fatalf("expected a datetime, got %s", v.Type)
			}
			if got := v.DateTime(); got != c.ms {
				t.Errorf("expected %d ms, got %d", c.ms, got)
			}
		})
	}
}

// TestBSONAgainstDriver compares the encoder against the Go driver reading the
// canonical text of the same document.
func TestBSONAgainstDriver(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`{"q": 'hi', n: 5}`,
		`{b: 'x', a: [1, 2.5, y, true, null]}`,
		`{nested: {deep: {deeper: [[1], [2, 3]]}}, big: 3000000000, neg: -0.25}`,
		`{msg: 'say "hi"', path: 'C:\\dir', "it's": 'it\'s'}`,
		"{list: [1, 2 // trailing comment\n, 3]}",
		`{id: {$oid: "56e1fc72e0c917e9c4714161"}, count: {$numberLong: "12"}}`,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			enc := NewBSONEncoder()
			enc.ExtJSON(true)
			got, err := enc.Encode(New(in), nil)
			if err != nil {
				t.Fatal(err)
			}
			want, err := convertWithGoDriver([]byte(New(in).Text()))
			if err != nil {
				t.Fatalf("driver error: %v", err)
			}
			if !bytes.Equal(got, want) {
				t.Fatalf("BSON doesn't match Go driver:\nlazyjson: %v\nDriver:   %v", hex.EncodeToString(got), hex.EncodeToString(want))
			}
		})
	}
}

func TestMarshalBSONInterfaces(t *testing.T) {
	t.Parallel()

	doc := New(`{a: 1, b: [x, 2.5], c: {d: true}}`)
	viaDriver, err := bson.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	direct, err := doc.MarshalBSON()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(viaDriver, direct) {
		t.Errorf("bson.Marshal and MarshalBSON differ")
	}

	var m bson.M
	if err := bson.Unmarshal(direct, &m); err != nil {
		t.Fatal(err)
	}
	if got, ok := m["a"].(int32); !ok || got != 1 {
		t.Errorf("expected int32 1, got %#v", m["a"])
	}

	huge := New(`{n: 99999999999999999999}`)
	buf, err := huge.MarshalBSON()
	if err != nil {
		t.Fatal(err)
	}
	if v := bson.Raw(buf).Lookup("n"); v.Type != bsontype.Double || v.Double() != 1e20 {
		t.Errorf("integer beyond int64 should be a double, got %s", v)
	}

	_, err = New(`[1]`).MarshalBSON()
	var te *TypeError
	if !errors.As(err, &te) {
		t.Errorf("expected a TypeError, got %v", err)
	}
}

func TestBSONPlaceholders(t *testing.T) {
	t.Parallel()

	doc := New(`{}`)
	doc.Key("missing")
	doc.Key("arr").Index(2).SetRaw("3")
	buf, err := doc.MarshalBSON()
	if err != nil {
		t.Fatal(err)
	}
	want, err := convertWithGoDriver([]byte(`{"arr":[null,null,3]}`))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf, want) {
		t.Errorf("unexpected BSON:\nGot:    %v\nExpect: %v", hex.EncodeToString(buf), hex.EncodeToString(want))
	}
}
