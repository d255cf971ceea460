// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

var (
	// errNoHandlersAreCreated is returned by NewHandlers when the server
	// configuration has no HTTP address. This is a fatal misconfiguration.
	errNoHandlersAreCreated = errors.New("no handlers are created")

	// errNoPeerAuthenticator means the federation API would have no way to
	// verify where peer requests come from.
	errNoPeerAuthenticator = errors.New("no peer authenticator")
)
