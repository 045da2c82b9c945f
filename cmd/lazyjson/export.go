// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
	"github.com/xdg-go/lazyjson"
	"go.mongodb.org/mongo-driver/bson"
)

func toYAML(cfg *YAMLConfig, cc *cli.Context, args []string) error {
	args, err := cfg.YAML.Parse(cc, args)
	if err != nil {
		return err
	}
	return yamlDocs(cc.In, cc.Out, args)
}

func yamlDocs(in io.Reader, out io.Writer, files []string) error {
	return eachDoc(in, files, func(i int, doc *lazyjson.Node) error {
		if i > 0 {
			if _, err := fmt.Fprintln(out, "---"); err != nil {
				return err
			}
		}
		b, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("error encoding yaml: %w", err)
		}
		_, err = out.Write(b)
		return err
	})
}

func toBSON(cfg *BSONConfig, cc *cli.Context, args []string) error {
	args, err := cfg.BSON.Parse(cc, args)
	if err != nil {
		return err
	}
	return bsonDocs(cfg, cc.In, cc.Out, args)
}

func bsonDocs(cfg *BSONConfig, in io.Reader, out io.Writer, files []string) error {
	enc := lazyjson.NewBSONEncoder()
	enc.ExtJSON(cfg.ExtJSON)
	buf := make([]byte, 0, 256)
	return eachDoc(in, files, func(_ int, doc *lazyjson.Node) error {
		var err error
		buf, err = enc.Encode(doc, buf[:0])
		if err != nil {
			return err
		}
		if cfg.JSON {
			_, err = fmt.Fprintln(out, bson.Raw(buf).String())
			return err
		}
		_, err = fmt.Fprintln(out, hex.EncodeToString(buf))
		return err
	})
}
