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
	"github.com/jackc/pgerrcode"
)

var userColumns = []string{
	"user_id", "login", "password_hash",
	"public_key", "protected_key", "protected_key_salt", "protected_key_nonce",
	"keys_updated_at", "created_at",
}

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new account and returns it with server-assigned
// fields. A duplicate login yields [ErrLoginAlreadyExists].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.Insert("users").
		Columns("login", "password_hash").
		Values(user.Login, user.Password).
		Suffix("RETURNING " + joinColumns(userColumns)).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("login", user.Login).Msg("error inserting user")
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrLoginAlreadyExists
		}
		return models.User{}, r.db.wrapQueryError(ErrExecutingQuery, err)
	}

	return created, nil
}

// FindUserByLogin returns the account with the given login or
// [ErrNoUserWasFound].
func (r *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByLogin", sq.Eq{"login": login})
}

// FindUserByID returns the account with the given id or [ErrNoUserWasFound].
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByID", sq.Eq{"user_id": userID})
}

// UpdateUserKeys registers or replaces the key material of an account.
func (r *userRepository) UpdateUserKeys(ctx context.Context, userID int64, publicKey []byte, protected models.ProtectedPrivateKey) error {
	log := logger.FromContext(ctx)

	query, args, err := psql.Update("users").
		Set("public_key", publicKey).
		Set("protected_key", protected.Ciphertext).
		Set("protected_key_salt", protected.Salt).
		Set("protected_key_nonce", protected.Nonce).
		Set("keys_updated_at", sq.Expr("now()")).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUserKeys").Int64("user_id", userID).Msg("error updating keys")
		return r.db.wrapQueryError(ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

func (r *userRepository) findOne(ctx context.Context, funcName string, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error selecting user")
		return models.User{}, r.db.wrapQueryError(ErrExecutingQuery, err)
	}

	return user, nil
}

func scanUser(row *sql.Row) (models.User, error) {
	var (
		user                        models.User
		publicKey, protectedKey     []byte
		protectedSalt, protectedNon []byte
		keysUpdatedAt               sql.NullTime
	)

	err := row.Scan(
		&user.UserID, &user.Login, &user.Password,
		&publicKey, &protectedKey, &protectedSalt, &protectedNon,
		&keysUpdatedAt, &user.CreatedAt,
	)
	if err != nil {
		return models.User{}, err
	}

	if len(publicKey) > 0 {
		user.PublicKey = publicKey
	}
	if len(protectedKey) > 0 {
		user.ProtectedPrivateKey = &models.ProtectedPrivateKey{
			Ciphertext: protectedKey,
			Salt:       protectedSalt,
			Nonce:      protectedNon,
		}
	}
	if keysUpdatedAt.Valid {
		t := keysUpdatedAt.Time.In(time.UTC)
		user.KeysUpdatedAt = &t
	}

	return user, nil
}
