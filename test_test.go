// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package lazyjson

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

type textTestCase struct {
	label  string
	input  string
	output string
}

func testWithText(t *testing.T, cases []textTestCase, opts ...EncodeOption) {
	t.Helper()

	for _, c := range cases {
		t.Run(c.label, func(t *testing.T) {
			t.Parallel()
			got := New(c.input).Text(opts...)
			if got != c.output {
				t.Errorf("Text doesn't match expected:\nGot:    %s\nExpect: %s", got, c.output)
			}
		})
	}
}

type bsonTestCase struct {
	label  string
	input  string
	output string
	errStr string
}

func testWithBSON(t *testing.T, cases []bsonTestCase, extJSON bool) {
	t.Helper()

	for _, c := range cases {
		t.Run(c.label, func(t *testing.T) {
			t.Parallel()

			enc := NewBSONEncoder()
			enc.ExtJSON(extJSON)
			buf, err := enc.Encode(New(c.input), make([]byte, 0, 256))
			if c.errStr != "" {
				var got string
				if err != nil {
					got = err.Error()
				}
				if !strings.Contains(got, c.errStr) {
					t.Errorf("expected error with '%s', but got %v", c.errStr, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			expect, err := hex.DecodeString(strings.ToLower(c.output))
			if err != nil {
				t.Fatalf("error decoding test output: %v", err)
			}
			if !bytes.Equal(expect, buf) {
				t.Fatalf("BSON doesn't match expected:\nGot:    %v\nExpect: %v", hex.EncodeToString(buf), c.output)
			}
		})
	}
}

func convertWithGoDriver(input []byte) ([]byte, error) {
	var got bson.Raw
	err := bson.UnmarshalExtJSON(input, false, &got)
	return got, err
}
