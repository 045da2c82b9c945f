// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package debug holds tracing switches read from the environment once at
// startup.
package debug

import (
	"fmt"
	"io"
	"os"
	"strconv"
)

type debug struct {
	Parse bool
	Emit  bool
}

var (
	d   *debug
	out io.Writer = os.Stderr
)

func init() {
	d = &debug{}
	d.Parse = boolEnv("LAZYJSON_DEBUG_PARSE")
	d.Emit = boolEnv("LAZYJSON_DEBUG_EMIT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Parse reports whether classification tracing is on.
func Parse() bool {
	return d.Parse
}

// Emit reports whether serializer tracing is on.
func Emit() bool {
	return d.Emit
}

// SetParse and SetEmit override the environment, mostly for tests.
func SetParse(v bool) { d.Parse = v }
func SetEmit(v bool)  { d.Emit = v }

// SetOutput redirects trace output and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	prev := out
	out = w
	return prev
}

func Logf(format string, args ...any) {
	fmt.Fprintf(out, "lazyjson: "+format, args...)
}
