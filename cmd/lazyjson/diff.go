// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/xdg-go/lazyjson"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	return diffDocs(cfg, cc.In, cc.Out, args)
}

func diffDocs(cfg *DiffConfig, in io.Reader, out io.Writer, files []string) error {
	colored := cfg.colors(out)
	dmp := diffpatch.New()
	return eachDoc(in, files, func(_ int, doc *lazyjson.Node) error {
		raw := doc.Raw()
		canon := doc.Text(lazyjson.WithPretty(cfg.Pretty))
		diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(raw, canon, false))
		if colored {
			_, err := fmt.Fprintln(out, dmp.DiffPrettyText(diffs))
			return err
		}
		_, err := fmt.Fprint(out, dmp.PatchToText(dmp.PatchMake(raw, diffs)))
		return err
	})
}
