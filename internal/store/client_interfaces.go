// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-file-courier/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// TrustStore pins recipient key fingerprints on the client.
type TrustStore interface {
	// GetPin returns [ErrPinNotFound] for an address never pinned.
	GetPin(ctx context.Context, address string) (models.KeyPin, error)
	// Pin creates or replaces the pin of pin.Address.
	Pin(ctx context.Context, pin models.KeyPin) error
}

// SessionStore keeps the CLI login between invocations.
type SessionStore interface {
	SaveSession(ctx context.Context, session models.StoredSession) error
	// LoadSession returns [ErrLocalSessionNotFound] when nobody is logged in.
	LoadSession(ctx context.Context) (models.StoredSession, error)
	ClearSession(ctx context.Context) error
}

// LocalStore is the client's SQLite database.
type LocalStore interface {
	TrustStore
	SessionStore
	Close() error
}
