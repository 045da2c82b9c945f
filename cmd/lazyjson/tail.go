// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/scott-cotton/cli"
	"github.com/xdg-go/lazyjson"
	"github.com/xdg-go/lazyjson/internal/tail"
)

func tailFile(cfg *TailConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Tail.Parse(cc, args)
	if err != nil {
		return err
	}
	return tailDocs(cfg, cc.Out, args)
}

func tailDocs(cfg *TailConfig, out io.Writer, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: tail requires exactly one file", cli.ErrUsage)
	}
	if cfg.N < 0 {
		return fmt.Errorf("%w: -n must not be negative", cli.ErrUsage)
	}
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("could not open %q: %w", args[0], err)
	}
	defer f.Close()

	lines, err := tail.Lines(f, cfg.N)
	if err != nil {
		return err
	}
	opts := cfg.encOpts(out)
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := lazyjson.New(line).Encode(out, opts...); err != nil {
			return err
		}
	}
	return nil
}
