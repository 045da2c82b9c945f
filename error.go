// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package lazyjson

import "fmt"

// TypeError records a request for one shape of node when the node resolved
// to another.  Parsing itself never fails; only the strict accessors and
// exports that need a particular shape return it.
type TypeError struct {
	Want Type
	Got  Type
}

func (te *TypeError) Error() string {
	return fmt.Sprintf("lazyjson: expected %s node, got %s", te.Want, te.Got)
}
