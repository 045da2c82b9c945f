// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package lazyjson

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16BEBOM = []byte{0xFE, 0xFF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf32BEBOM = []byte{0x00, 0x00, 0xFE, 0xFF}
	utf32LEBOM = []byte{0xFF, 0xFE, 0x00, 0x00}
)

// Decoder reads successive top-level documents from a buffered input
// stream.  Documents may be separated by white space, commas or line
// comments.  A document is a bracketed object or array, a quoted string or
// a bare token; each one comes back as an unparsed Node, so the decoder only
// finds document boundaries and does not classify anything.
type Decoder struct {
	json       *bufio.Reader
	parseDepth int
}

// NewDecoder returns a new decoder.  If a UTF-8 byte-order-mark (BOM) exists,
// it will be stripped.  Because only UTF-8 is supported, other BOMs are
// errors.
func NewDecoder(json *bufio.Reader) (*Decoder, error) {
	err := handleBOM(json)
	if err != nil {
		return nil, err
	}
	return &Decoder{json: json}, nil
}

// ParseDepth makes Decode classify each document down to n levels before
// returning it.  The default of 0 leaves documents unparsed.
func (d *Decoder) ParseDepth(n int) {
	d.parseDepth = n
}

// Decode returns the next document from the input stream, or io.EOF when no
// documents remain.  Like the parser, Decode is permissive: input that ends
// inside an open bracket or quote yields what was read so far as the last
// document.
func (d *Decoder) Decode() (*Node, error) {
	ch, err := d.readAfterSeparators()
	if err != nil {
		// Before a document starts, EOF is valid.
		if err == io.EOF {
			return nil, err
		}
		return nil, newReadError(err)
	}

	var (
		buf    []byte
		s      scanner
		opened = pairIndex(bracketPairs, ch) >= 0 || pairIndex(quotePairs, ch) >= 0
	)
LOOP:
	for {
		if !s.inQuote() && ch == '/' {
			comment, err := d.skipComment()
			if err != nil && err != io.EOF {
				return nil, newReadError(err)
			}
			if comment {
				if s.topLevel() && !opened {
					break LOOP
				}
				buf = append(buf, '\n')
				if err == io.EOF {
					break LOOP
				}
				ch, err = d.json.ReadByte()
				if err == io.EOF {
					break LOOP
				}
				if err != nil {
					return nil, newReadError(err)
				}
				continue
			}
		}
		if s.topLevel() && !opened && len(buf) > 0 && isSeparator(ch) {
			break LOOP
		}

		s.consume(ch)
		buf = append(buf, ch)
		if opened && s.topLevel() && len(buf) > 1 {
			break LOOP
		}

		ch, err = d.json.ReadByte()
		if err == io.EOF {
			break LOOP
		}
		if err != nil {
			return nil, newReadError(err)
		}
	}

	n := New(string(bytes.TrimRight(buf, whitespace)))
	if d.parseDepth > 0 {
		n.ParseFull(false, d.parseDepth)
	}
	return n, nil
}

func isSeparator(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', valueSeparator:
		return true
	}
	return false
}

// readAfterSeparators returns the first byte that is not white space, a
// comma or part of a line comment.
func (d *Decoder) readAfterSeparators() (byte, error) {
	for {
		ch, err := d.json.ReadByte()
		if err != nil {
			return 0, err
		}
		switch ch {
		case ' ', '\t', '\n', '\r', valueSeparator:
			continue
		case '/':
			comment, err := d.skipComment()
			if comment {
				if err != nil {
					return 0, err
				}
				continue
			}
		}
		return ch, nil
	}
}

// skipComment is called after a '/' has been read.  If the next byte starts
// a line comment, it discards the rest of the line and reports true.
// Otherwise nothing is consumed.
func (d *Decoder) skipComment() (bool, error) {
	next, err := d.json.Peek(1)
	if err != nil || next[0] != lineComment[1] {
		return false, nil
	}
	_, err = d.json.ReadString('\n')
	return true, err
}

// NewReader reads all of r and returns it as an unparsed Node.  BOMs are
// handled as in NewDecoder.
func NewReader(r io.Reader) (*Node, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	if err := handleBOM(br); err != nil {
		return nil, err
	}
	text, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("error reading json: %w", err)
	}
	return New(string(text)), nil
}

// Unmarshal returns the first document in the input.  The function returns
// io.EOF if the input is empty.
func Unmarshal(in []byte) (*Node, error) {
	dec, err := NewDecoder(bufio.NewReader(bytes.NewReader(in)))
	if err != nil {
		return nil, err
	}
	return dec.Decode()
}

// detect/discard/error on BOM. Inability to peek is a NOP and
// will be handled by the normal reader
func handleBOM(r *bufio.Reader) error {
	// Peek 2 byte BOMs
	preamble, err := r.Peek(2)
	if err != nil {
		return nil
	}
	if bytes.Equal(preamble, utf16BEBOM) || bytes.Equal(preamble, utf16LEBOM) {
		// A UTF-32LE BOM starts with the UTF-16LE one.
		if long, err := r.Peek(4); err == nil && bytes.Equal(long, utf32LEBOM) {
			return errors.New("error: detected unsupported UTF-32 BOM")
		}
		return errors.New("error: detected unsupported UTF-16 BOM")
	}

	// Peek 3 byte BOM; UTF-8 is supported, so discard them if found.
	preamble, err = r.Peek(3)
	if err != nil {
		return nil
	}
	if bytes.Equal(preamble, utf8BOM) {
		_, _ = r.Discard(3)
		return nil
	}

	// Peek 4 byte BOMs
	preamble, err = r.Peek(4)
	if err != nil {
		return nil
	}
	if bytes.Equal(preamble, utf32BEBOM) {
		return errors.New("error: detected unsupported UTF-32 BOM")
	}

	return nil
}

// newReadError is used when we expect to be able to read and fail.  If the
// error is EOF, we convert it to UnexpectedEOF because we aren't between
// top-level documents.
func newReadError(err error) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("error reading json: %w", err)
}
