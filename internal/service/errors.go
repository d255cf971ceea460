// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidDataProvided     = errors.New("invalid data provided")
	ErrWrongPassword           = errors.New("wrong password")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)

var (
	// ErrInvalidTransition is returned when a transfer is not in a state the
	// requested operation may start from.
	ErrInvalidTransition = errors.New("invalid transfer status transition")

	// ErrTransferNotFound hides transfers the caller takes no part in.
	ErrTransferNotFound = errors.New("transfer not found")

	// ErrForbidden is returned when the caller takes part in the transfer but
	// not in the role the operation requires.
	ErrForbidden = errors.New("operation is not permitted")

	// ErrRecipientNotFound is returned when the receiver address has no
	// account, locally or on the receiver's server.
	ErrRecipientNotFound = errors.New("recipient not found")

	// ErrKeysNotRegistered is returned when a user without keys sends,
	// receives or is looked up.
	ErrKeysNotRegistered = errors.New("user has no registered keys")

	// ErrSizeExceeded is returned when the chunks of a transfer add up to
	// more than its declared size.
	ErrSizeExceeded = errors.New("transfer size exceeded")

	// ErrInvalidChunk is returned for chunks whose shape does not fit the
	// transfer.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrChunkNotAvailable is returned when a chunk is requested outside the
	// states that expose chunks.
	ErrChunkNotAvailable = errors.New("chunk is not available")

	// ErrTransferUnavailable marks failures of federation peers or DNS.
	// Retrying later may succeed.
	ErrTransferUnavailable = errors.New("transfer temporarily unavailable")

	// ErrDomainMismatch is returned when a peer acts for a domain other than
	// the one it authenticated as.
	ErrDomainMismatch = errors.New("peer domain does not match transfer")
)
