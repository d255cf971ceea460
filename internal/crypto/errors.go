// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"errors"
	"fmt"
)

var (
	// ErrIncompleteTransfer is returned when no chunk of a non-empty set is
	// marked as the last one.
	ErrIncompleteTransfer = errors.New("incomplete transfer: no final chunk")

	// ErrMisplacedLastChunk is returned when the final-chunk flag is set on
	// more than one chunk or on a chunk that is not the highest index.
	ErrMisplacedLastChunk = errors.New("final chunk flag is not on the last index")

	// ErrWrongMasterSecret is the only error returned when a protected
	// private key cannot be opened. Wrong secrets and corrupted blobs are
	// deliberately indistinguishable.
	ErrWrongMasterSecret = errors.New("wrong master secret")

	// ErrUnwrapFailed is the only error returned when a wrapped symmetric key
	// cannot be opened with the given private key.
	ErrUnwrapFailed = errors.New("unable to unwrap symmetric key")

	// ErrInvalidKeyLength is returned by boundary validation when a key blob
	// does not have the fixed size of its kind.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrInvalidChunkSize is returned for a non-positive chunk size.
	ErrInvalidChunkSize = errors.New("invalid chunk size")

	// ErrEncryptorClosed is returned when an Encryptor is used after Close.
	ErrEncryptorClosed = errors.New("encryptor is closed")

	// ErrTooManyChunks is returned when a stream would overflow the chunk index.
	ErrTooManyChunks = errors.New("too many chunks")
)

// MissingChunkError reports the first index absent from an otherwise
// ordered chunk set.
type MissingChunkError struct {
	Index uint32
}

func (e *MissingChunkError) Error() string {
	return fmt.Sprintf("missing chunk %d", e.Index)
}

// DuplicateChunkError reports an index that appears more than once.
type DuplicateChunkError struct {
	Index uint32
}

func (e *DuplicateChunkError) Error() string {
	return fmt.Sprintf("duplicate chunk %d", e.Index)
}

// AuthenticationFailedError reports the chunk whose tag did not verify.
type AuthenticationFailedError struct {
	Index uint32
}

func (e *AuthenticationFailedError) Error() string {
	return fmt.Sprintf("authentication failed for chunk %d", e.Index)
}
