// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package server

import "log/slog"

const (
	// DefaultAddr is used when Spec.Addr is empty.
	DefaultAddr = "127.0.0.1:9600"
	// DefaultTemplate is used when Spec.Template is empty.
	DefaultTemplate = `{'question':'',answer:'Hi there'}`
)

// Spec holds the runtime specification for the server.
type Spec struct {
	Addr     string
	Template string
	Log      *slog.Logger
}
