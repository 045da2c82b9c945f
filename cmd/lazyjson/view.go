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
	"github.com/xdg-go/lazyjson"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	return viewDocs(cfg, cc.In, cc.Out, args)
}

func viewDocs(cfg *ViewConfig, in io.Reader, out io.Writer, files []string) error {
	if cfg.Pretty && cfg.Comments {
		return fmt.Errorf("%w: -p and -c cannot be combined", cli.ErrUsage)
	}
	opts := cfg.encOpts(out)
	return eachDoc(in, files, func(_ int, doc *lazyjson.Node) error {
		return doc.Encode(out, opts...)
	})
}

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	return getPath(cfg, cc.In, cc.Out, args)
}

func getPath(cfg *GetConfig, in io.Reader, out io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires a path", cli.ErrUsage)
	}
	path, files := args[0], args[1:]
	return eachDoc(in, files, func(_ int, doc *lazyjson.Node) error {
		v := doc.Lookup(path)
		if !v.Exists() {
			return fmt.Errorf("%q not found", path)
		}
		if v.Type() == lazyjson.Leaf && !cfg.Pretty {
			_, err := fmt.Fprintln(out, v.AsString(""))
			return err
		}
		return v.Encode(out, lazyjson.WithPretty(cfg.Pretty))
	})
}
