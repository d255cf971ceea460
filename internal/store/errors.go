// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when a new user collides with an
	// existing login.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a user lookup matches nothing.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrTransferAlreadyExists is returned when a transfer id is reused.
	ErrTransferAlreadyExists = errors.New("transfer already exists")

	// ErrTransferNotFound is returned when a transfer lookup matches nothing.
	ErrTransferNotFound = errors.New("transfer was not found")

	// ErrBlobNotFound is returned by blob backends for an absent key.
	ErrBlobNotFound = errors.New("blob was not found")

	// ErrBlobExists is returned by blob backends when Put targets a key
	// that is already stored.
	ErrBlobExists = errors.New("blob already exists")

	// ErrChunkConflict is returned when a chunk index is already stored
	// with different content.
	ErrChunkConflict = errors.New("chunk already stored with different content")

	// ErrChunkNotFound is returned when a requested chunk is not stored.
	ErrChunkNotFound = errors.New("chunk was not found")

	// ErrInvalidKey is returned for blob keys that would escape the store.
	ErrInvalidKey = errors.New("invalid blob key")

	// ErrCorruptedChunk is returned when a stored chunk cannot be decoded.
	ErrCorruptedChunk = errors.New("stored chunk is corrupted")

	// ErrStorageUnavailable marks failures classified as retryable, such as
	// lost connections or serialization conflicts.
	ErrStorageUnavailable = errors.New("storage temporarily unavailable")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning during multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
