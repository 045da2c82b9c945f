// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package lazyjson is a lazy, permissive reader and writer for JSON-like
// documents.  A Node keeps its raw text and classifies it as an object, an
// array or a leaf only when a structural method asks, one level at a time.
// Children stay unparsed text until they are touched.
//
// # Grammar
//
// Anything JSON accepts is accepted, and also single quoted strings,
// unquoted keys and bare words, and `//` line comments.  Nothing is ever
// rejected: text that is not a well formed object or array is a leaf, a
// segment without a key/value separator is ignored, and numeric coercion of
// non-numeric text gives zero.
//
//	doc := lazyjson.New(`{"q": 'hi', n: 5 // five
//	}`)
//	doc.Key("q").AsString("")  // "hi"
//	doc.Key("n").AsInt(0)      // 5
//	doc.Key("x").AsInt(-1)     // -1, and doc.Key("x") does not exist
//
// Reads never fail.  A missing key or index yields a placeholder node that
// does not exist; coercing it gives the caller's default.  Placeholders are
// removed again by Size and Text unless something is written to them.
//
// # Serialization
//
// Text renders the canonical form: double quoted keys and strings, bare
// words quoted, sorted object keys.  By default it also stores that
// rendering as each node's raw text, which makes a second rendering
// identical to the first.  Text can pretty print or annotate each entry
// with a `// type` comment.
//
// # Streams and exports
//
// A Decoder splits a stream into successive top-level documents.  Objects
// convert to BSON with BSONEncoder and MarshalBSON, optionally reading
// MongoDB Extended JSON values, and any node converts to plain Go values
// with Interface, which is also what MarshalYAML returns.
//
// Nodes are not safe for concurrent use.
package lazyjson
