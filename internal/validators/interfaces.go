// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks client and peer input before the service layer
// acts on it: credentials, key uploads, transfer requests, announcements
// and encrypted chunks.
//
// Validation is purely structural. Whether a transition or an upload is
// allowed is decided by the services.
package validators

import "context"

// Validator checks obj. When fields are given only those fields are
// checked, using the Field* names of this package.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
