// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates missing identity or token settings
	// (for example, an empty domain or token sign key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or an unknown chunk backend).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates invalid listener settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidFederationConfigs indicates invalid federation settings
	// (for example, a malformed static peer entry).
	ErrInvalidFederationConfigs = errors.New("invalid federation configuration")
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing server address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidWorkerConfigs indicates a zero sweep interval or window.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidCryptoConfigs indicates non-positive chunking or KDF settings.
	ErrInvalidCryptoConfigs = errors.New("invalid crypto configuration")
)
