// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-file-courier/internal/logger"
	"github.com/MKhiriev/go-file-courier/models"
	sq "github.com/Masterminds/squirrel"
)

var (
	// ErrPinNotFound is returned when no fingerprint was pinned for an address.
	ErrPinNotFound = errors.New("no pinned key for address")

	// ErrLocalSessionNotFound is returned when no login is stored locally.
	ErrLocalSessionNotFound = errors.New("local session not found")
)

type localStore struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewLocalStore opens the client SQLite database at dsn.
func NewLocalStore(ctx context.Context, dsn string, log *logger.Logger) (LocalStore, error) {
	db, err := NewConnectSQLite(ctx, dsn, log)
	if err != nil {
		return nil, err
	}
	return newLocalStore(db, log), nil
}

func newLocalStore(db *sql.DB, log *logger.Logger) *localStore {
	return &localStore{db: db, logger: log}
}

func (s *localStore) GetPin(ctx context.Context, address string) (models.KeyPin, error) {
	query, args, err := sq.Select("address", "fingerprint", "pinned_at").
		From("key_pins").
		Where(sq.Eq{"address": address}).
		ToSql()
	if err != nil {
		return models.KeyPin{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var pin models.KeyPin
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&pin.Address, &pin.Fingerprint, &pin.PinnedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.KeyPin{}, ErrPinNotFound
	}
	if err != nil {
		s.logger.Err(err).Str("func", "*localStore.GetPin").Str("address", address).Msg("error reading pin")
		return models.KeyPin{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return pin, nil
}

func (s *localStore) Pin(ctx context.Context, pin models.KeyPin) error {
	if pin.PinnedAt.IsZero() {
		pin.PinnedAt = time.Now().UTC()
	}

	query, args, err := sq.Insert("key_pins").
		Columns("address", "fingerprint", "pinned_at").
		Values(pin.Address, pin.Fingerprint, pin.PinnedAt).
		Suffix("ON CONFLICT(address) DO UPDATE SET fingerprint = excluded.fingerprint, pinned_at = excluded.pinned_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "*localStore.Pin").Str("address", pin.Address).Msg("error saving pin")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (s *localStore) SaveSession(ctx context.Context, session models.StoredSession) error {
	if session.SavedAt.IsZero() {
		session.SavedAt = time.Now().UTC()
	}

	query, args, err := sq.Insert("session").
		Columns("id", "token", "address", "saved_at").
		Values(1, session.Token, session.Address, session.SavedAt).
		Suffix("ON CONFLICT(id) DO UPDATE SET token = excluded.token, address = excluded.address, saved_at = excluded.saved_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "*localStore.SaveSession").Msg("error saving session")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (s *localStore) LoadSession(ctx context.Context) (models.StoredSession, error) {
	query, args, err := sq.Select("token", "address", "saved_at").
		From("session").
		Where(sq.Eq{"id": 1}).
		ToSql()
	if err != nil {
		return models.StoredSession{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var session models.StoredSession
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&session.Token, &session.Address, &session.SavedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.StoredSession{}, ErrLocalSessionNotFound
	}
	if err != nil {
		return models.StoredSession{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return session, nil
}

func (s *localStore) ClearSession(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM session"); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func (s *localStore) Close() error {
	return s.db.Close()
}
