// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the request parsing helpers and middlewares. Callers can
// match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyFederationDomain is returned by the federation middleware when
	// a peer request does not name the domain it comes from.
	ErrEmptyFederationDomain = errors.New("empty `X-Federation-Domain` header")

	// ErrInvalidJSON means the request body could not be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	ErrInvalidChunkIndex = errors.New("invalid chunk index")
	ErrInvalidMailbox    = errors.New("box must be inbox or outbox")
	ErrNoUserID          = errors.New("no user ID was given")
)
