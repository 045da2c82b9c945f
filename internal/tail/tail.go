// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package tail reads the last lines of a seekable input without reading
// the rest of it.
package tail

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

const blockSize = 4096

// Lines returns the last n lines of r, without their line terminators.  A
// final newline ends the last line rather than starting an empty one.
// Scanning starts at the end of r and moves backwards one block at a time,
// so only the tail of a large file is read.
func Lines(r io.ReadSeeker, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("error seeking input: %w", err)
	}

	var (
		tail  []byte
		block = make([]byte, blockSize)
		pos   = end
		start = int64(-1)
	)
	seen := 0
	for pos > 0 && start < 0 {
		size := int64(blockSize)
		if pos < size {
			size = pos
		}
		pos -= size
		if _, err := r.Seek(pos, io.SeekStart); err != nil {
			return nil, fmt.Errorf("error seeking input: %w", err)
		}
		if _, err := io.ReadFull(r, block[:size]); err != nil {
			return nil, fmt.Errorf("error reading input: %w", err)
		}
		for i := size - 1; i >= 0; i-- {
			if block[i] != '\n' {
				continue
			}
			// A newline as the very last byte only terminates the last line.
			if pos+i == end-1 {
				continue
			}
			seen++
			if seen == n {
				start = pos + i + 1
				break
			}
		}
		tail = append(append([]byte(nil), block[:size]...), tail...)
	}
	if start < 0 {
		start = 0
	}
	tail = tail[start-pos:]
	tail = bytes.TrimSuffix(tail, []byte("\n"))
	if len(tail) == 0 {
		return nil, nil
	}

	lines := strings.Split(string(tail), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines, nil
}
