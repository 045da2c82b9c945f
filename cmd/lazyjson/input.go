// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/xdg-go/lazyjson"
)

type docFunc func(i int, doc *lazyjson.Node) error

// eachDoc calls f for every document in the named files, or in in when
// there are none.  "-" names standard input.
func eachDoc(in io.Reader, files []string, f docFunc) error {
	if len(files) == 0 {
		return eachReaderDoc(in, f)
	}
	for _, file := range files {
		if err := eachFileDoc(file, f); err != nil {
			return err
		}
	}
	return nil
}

func eachFileDoc(file string, f docFunc) error {
	var (
		r   *os.File
		err error
	)
	if file != "-" {
		r, err = os.Open(file)
		if err != nil {
			return fmt.Errorf("could not open %q: %w", file, err)
		}
		defer r.Close()
	} else {
		r = os.Stdin
	}
	if err := eachReaderDoc(r, f); err != nil {
		return fmt.Errorf("error processing %s: %w", file, err)
	}
	return nil
}

func eachReaderDoc(r io.Reader, f docFunc) error {
	dec, err := lazyjson.NewDecoder(bufio.NewReader(r))
	if err != nil {
		return err
	}
	for i := 0; ; i++ {
		doc, err := dec.Decode()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("error decoding document %d: %w", i, err)
		}
		if err := f(i, doc); err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
	}
}
