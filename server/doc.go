// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package server serves lazyjson documents over HTTP.
//
// Every request starts from a fresh copy of a template document.  GET and
// form POST requests may set the template's "question" field; a POST with
// any other body replaces the template for that request; PATCH applies an
// RFC 7386 merge patch to it.  Responses carry the canonical text of the
// resulting document.
package server
