// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoHTTPHandler means the handlers carry no HTTP router to serve.
var errNoHTTPHandler = errors.New("server: no HTTP handler to serve")
