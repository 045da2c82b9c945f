// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package lazyjson

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	cases := []struct {
		label  string
		input  string
		output []string
	}{
		{label: "empty", input: "", output: nil},
		{label: "single", input: "a", output: []string{"a"}},
		{label: "three", input: "a,b,c", output: []string{"a", "b", "c"}},
		{label: "empty middle", input: "a,,b", output: []string{"a", "", "b"}},
		{label: "trailing delimiter", input: "a,b,", output: []string{"a", "b"}},
		{label: "nested array", input: "[1,2],3", output: []string{"[1,2]", "3"}},
		{label: "nested object", input: "{a:1,b:[2,3]},x", output: []string{"{a:1,b:[2,3]}", "x"}},
		{label: "double quoted", input: `"a,b",c`, output: []string{`"a,b"`, "c"}},
		{label: "single quoted", input: `'a,b',c`, output: []string{`'a,b'`, "c"}},
		{label: "escaped quote", input: `"a\",b",c`, output: []string{`"a\",b"`, "c"}},
		{label: "escaped backslash", input: `"a\\",b`, output: []string{`"a\\"`, "b"}},
		{label: "other quote inside", input: `"it's",x`, output: []string{`"it's"`, "x"}},
		{label: "brackets inside quotes", input: `"[",x`, output: []string{`"["`, "x"}},
		{label: "comment hides delimiters", input: "1, // a, b\n2", output: []string{"1", " 2"}},
		{label: "comment to end", input: "a // x, y", output: []string{"a "}},
		{label: "comment ended by CR", input: "1 // x, y\r,2", output: []string{"1 ", "2"}},
		{label: "comment marker in quotes", input: `"//",x`, output: []string{`"//"`, "x"}},
		{label: "unbalanced bracket", input: "[1,2", output: []string{"[1,2"}},
		{label: "unbalanced quote", input: `"a,b`, output: []string{`"a,b`}},
		{label: "stray closer", input: "]a,b", output: []string{"]a", "b"}},
	}

	for _, c := range cases {
		t.Run(c.label, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(c.output, Split(c.input)); diff != "" {
				t.Errorf("Split(%q) mismatch (-want +got):\n%s", c.input, diff)
			}
		})
	}
}

func TestSplitSegmentCount(t *testing.T) {
	t.Parallel()

	items := []string{"x", "[1,2]", "'a,b'", `"c,d"`, "{e:1,f:2}", "  7  "}
	for k := 0; k < len(items); k++ {
		text := strings.Join(items[:k+1], ",")
		if got := len(Split(text)); got != k+1 {
			t.Errorf("%d delimiters in %q: expected %d segments, got %d", k, text, k+1, got)
		}
	}
}

func TestFindSeparator(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input  string
		output int
	}{
		{input: "a:1", output: 1},
		{input: `"a:b":1`, output: 5},
		{input: `'a:b' : 1`, output: 6},
		{input: "{x:1}:2", output: 5},
		{input: "a", output: -1},
		{input: "[a:1]", output: -1},
		{input: "// c:\n a:1", output: 8},
	}

	for _, c := range cases {
		if got := findSeparator(c.input); got != c.output {
			t.Errorf("findSeparator(%q): expected %d, got %d", c.input, c.output, got)
		}
	}
}

func TestStripComments(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input  string
		output string
	}{
		{input: "a // c\nb", output: "a b"},
		{input: "a//c", output: "a"},
		{input: `"//not"`, output: `"//not"`},
		{input: `'// not' // yes`, output: `'// not' `},
		{input: "no comments", output: "no comments"},
		{input: "a / b", output: "a / b"},
	}

	for _, c := range cases {
		if got := stripComments(c.input); got != c.output {
			t.Errorf("stripComments(%q): expected %q, got %q", c.input, c.output, got)
		}
	}
}
