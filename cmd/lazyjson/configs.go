// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/xdg-go/lazyjson"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='color type comments and diffs'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// colors reports whether output to w should be colored: -color when given,
// otherwise whether w is a terminal.
func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Main == nil {
		return cfg.Color
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return cfg.Color
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

var typeColors = map[lazyjson.Type]func(string, ...any) string{
	lazyjson.Object:      color.RGB(74, 92, 138).SprintfFunc(),
	lazyjson.Array:       color.RGB(168, 0, 196).SprintfFunc(),
	lazyjson.Leaf:        color.BlueString,
	lazyjson.Uninitiated: color.RGB(96, 96, 96).SprintfFunc(),
}

func colorAnnotation(t lazyjson.Type) string {
	f, ok := typeColors[t]
	if !ok {
		f = color.CyanString
	}
	return f("// %s", t)
}

func (cfg *MainConfig) encOpts(w io.Writer) []lazyjson.EncodeOption {
	var res []lazyjson.EncodeOption
	if cfg.colors(w) {
		color.NoColor = false
		res = append(res, lazyjson.WithAnnotator(colorAnnotation))
	}
	return res
}

type ViewConfig struct {
	*MainConfig

	Pretty   bool `cli:"name=p desc='pretty print'"`
	Comments bool `cli:"name=c desc='annotate entries with their types'"`
	View     *cli.Command
}

func (cfg *ViewConfig) encOpts(w io.Writer) []lazyjson.EncodeOption {
	return append(cfg.MainConfig.encOpts(w),
		lazyjson.WithPretty(cfg.Pretty),
		lazyjson.WithComments(cfg.Comments))
}

type GetConfig struct {
	*MainConfig

	Pretty bool `cli:"name=p desc='pretty print'"`
	Get    *cli.Command
}

type YAMLConfig struct {
	*MainConfig

	YAML *cli.Command
}

type BSONConfig struct {
	*MainConfig

	ExtJSON bool `cli:"name=x desc='interpret MongoDB Extended JSON'"`
	JSON    bool `cli:"name=j desc='print the BSON as Extended JSON instead of hex'"`
	BSON    *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Pretty bool `cli:"name=p desc='diff against the pretty printed form'"`
	Diff   *cli.Command
}

type TailConfig struct {
	*MainConfig

	N    int `cli:"name=n desc='number of lines'"`
	Tail *cli.Command
}

type ServeConfig struct {
	*MainConfig

	Addr     string `cli:"name=addr desc='HTTP listen address'"`
	Template string `cli:"name=template desc='file holding the template document'"`
	Serve    *cli.Command
}
