// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "errors"

var (
	// ErrNoSession is returned when an operation needs a login.
	ErrNoSession = errors.New("not logged in")

	// ErrSessionExpired means the saved token was rejected by the server.
	ErrSessionExpired = errors.New("session expired, log in again")

	// ErrEmptyMasterSecret is returned before any key is generated or unlocked.
	ErrEmptyMasterSecret = errors.New("master secret must not be empty")

	// ErrEmptyFile is returned for a zero-length send.
	ErrEmptyFile = errors.New("cannot send an empty file")

	// ErrRecipientKeyChanged means the recipient's public key differs from
	// the pinned one. Verify the new fingerprint out of band and re-pin.
	ErrRecipientKeyChanged = errors.New("recipient key changed since it was pinned")

	// ErrNotRecipient is returned when receiving a transfer addressed to
	// somebody else.
	ErrNotRecipient = errors.New("transfer is not addressed to this user")

	// ErrNotReceivable is returned for a transfer whose status rules out
	// downloading it.
	ErrNotReceivable = errors.New("transfer cannot be received")

	// ErrIntegrity means the downloaded file failed authentication. The
	// failure is reported to the server and nothing is written.
	ErrIntegrity = errors.New("file failed integrity check")

	// ErrUploadFailed wraps a failure after the transfer was created.
	ErrUploadFailed = errors.New("upload failed")
)
