// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// KeyPin records the public key fingerprint a client first saw for an
// address (trust on first use).
type KeyPin struct {
	Address     string    `json:"address"`
	Fingerprint string    `json:"fingerprint"`
	PinnedAt    time.Time `json:"pinnedAt"`
}

// StoredSession is the CLI login kept on disk between commands. It never
// holds key material.
type StoredSession struct {
	Token   string    `json:"token"`
	Address string    `json:"address"`
	SavedAt time.Time `json:"savedAt"`
}
