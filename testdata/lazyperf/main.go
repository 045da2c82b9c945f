// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/xdg-go/lazyjson"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: lazyperf <json file>")
	}
	jsonData, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	benchLazy(jsonData, "lazy split", 0, false)
	benchLazy(jsonData, "full parse", lazyjson.FullDepth, false)
	benchLazy(jsonData, "lazyjson->bson", lazyjson.FullDepth, true)
	benchMongoDriverRW(jsonData)
	benchNaive(jsonData)
}

func benchLazy(input []byte, label string, depth int, toBSON bool) {
	buf := make([]byte, 0, 256)

	dec, err := lazyjson.NewDecoder(bufio.NewReader(bytes.NewReader(input)))
	if err != nil {
		log.Fatal(err)
	}
	dec.ParseDepth(depth)
	enc := lazyjson.NewBSONEncoder()

	start := time.Now()
	for {
		doc, err := dec.Decode()
		if err != nil {
			if err == io.EOF {
				break
			}
			log.Fatal(err)
		}
		if toBSON && doc.Type() == lazyjson.Object {
			buf, err = enc.Encode(doc, buf[0:0])
			if err != nil {
				log.Fatal(err)
			}
		}
	}
	reportResult(label, len(input), time.Since(start))
}

func benchMongoDriverRW(input []byte) {
	vr, err := bsonrw.NewExtJSONValueReader(bytes.NewReader(input), false)
	if err != nil {
		log.Fatal(err)
	}

	copier := bsonrw.NewCopier()
	start := time.Now()
	for {
		_, err := copier.CopyDocumentToBytes(vr)
		if err != nil {
			if err == io.EOF {
				break
			}
			log.Fatal(err)
		}
	}
	reportResult("driver bsonrw", len(input), time.Since(start))
}

func benchNaive(input []byte) {
	dec := json.NewDecoder(bytes.NewReader(input))

	start := time.Now()
	for dec.More() {
		var m map[string]any
		if err := dec.Decode(&m); err != nil {
			log.Fatal(err)
		}
		if _, err := bson.Marshal(m); err != nil {
			log.Fatal(err)
		}
	}
	reportResult("naive json->bson", len(input), time.Since(start))
}

func reportResult(label string, size int, elapsed time.Duration) {
	throughput := float64(size) / float64(elapsed.Microseconds())
	fmt.Printf("%16s %.2f MB/s\n", label, throughput)
}
