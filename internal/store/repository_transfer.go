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
	"github.com/jackc/pgerrcode"
)

// transferRepository is the PostgreSQL-backed implementation of
// [TransferRepository].
type transferRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTransferRepository constructs a [TransferRepository].
func NewTransferRepository(db *DB, logger *logger.Logger) TransferRepository {
	logger.Debug().Msg("creating transfer repository")
	return &transferRepository{
		db:     db,
		logger: logger,
	}
}

func (r *transferRepository) CreateTransfer(ctx context.Context, transfer models.Transfer) (models.Transfer, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertTransferQuery(transfer)
	if err != nil {
		return models.Transfer{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanTransfer(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*transferRepository.CreateTransfer").Str("transfer_id", transfer.ID).Msg("error inserting transfer")
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Transfer{}, ErrTransferAlreadyExists
		}
		return models.Transfer{}, r.db.wrapQueryError(ErrExecutingQuery, err)
	}

	return created, nil
}

func (r *transferRepository) GetTransfer(ctx context.Context, id string) (models.Transfer, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectTransferQuery(id)
	if err != nil {
		return models.Transfer{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	transfer, err := scanTransfer(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Transfer{}, ErrTransferNotFound
	}
	if err != nil {
		// malformed uuid input surfaces as invalid_text_representation
		if postgresError(err) == pgerrcode.InvalidTextRepresentation {
			return models.Transfer{}, ErrTransferNotFound
		}
		log.Err(err).Str("func", "*transferRepository.GetTransfer").Str("transfer_id", id).Msg("error selecting transfer")
		return models.Transfer{}, r.db.wrapQueryError(ErrExecutingQuery, err)
	}

	return transfer, nil
}

// UpdateStatus performs the compare-and-set. Exactly one of several racing
// callers sees true.
func (r *transferRepository) UpdateStatus(ctx context.Context, change StatusChange) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildStatusChangeQuery(change)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*transferRepository.UpdateStatus").
			Str("transfer_id", change.ID).
			Str("to", string(change.To)).
			Msg("error updating transfer status")
		return false, r.db.wrapQueryError(ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return affected == 1, nil
}

func (r *transferRepository) ListByStatus(ctx context.Context, statuses []models.TransferStatus, before time.Time, limit uint64) ([]models.Transfer, error) {
	query, args, err := buildListByStatusQuery(statuses, before, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.list(ctx, "*transferRepository.ListByStatus", query, args)
}

func (r *transferRepository) ListForAddress(ctx context.Context, address string, box models.Mailbox) ([]models.Transfer, error) {
	query, args, err := buildListForAddressQuery(address, box)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.list(ctx, "*transferRepository.ListForAddress", query, args)
}

func (r *transferRepository) ListOutstandingForAddress(ctx context.Context, address string) ([]models.Transfer, error) {
	query, args, err := buildListOutstandingForAddressQuery(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.list(ctx, "*transferRepository.ListOutstandingForAddress", query, args)
}

func (r *transferRepository) list(ctx context.Context, funcName, query string, args []any) ([]models.Transfer, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error listing transfers")
		return nil, r.db.wrapQueryError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var transfers []models.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			log.Err(err).Str("func", funcName).Msg("error scanning transfer")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		transfers = append(transfers, t)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error iterating transfers")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return transfers, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransfer(row rowScanner) (models.Transfer, error) {
	var (
		t                    models.Transfer
		senderID, receiverID sql.NullInt64
		origin, status       string
	)

	err := row.Scan(
		&t.ID, &t.Sender, &t.Receiver, &senderID, &receiverID,
		&origin, &t.Filename, &t.Subject, &t.Size, &t.WrappedKey, &status,
		&t.ChunkCount, &t.ChunkSize, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return models.Transfer{}, err
	}

	if senderID.Valid {
		t.SenderID = &senderID.Int64
	}
	if receiverID.Valid {
		t.ReceiverID = &receiverID.Int64
	}
	t.Origin = models.TransferOrigin(origin)
	t.Status = models.TransferStatus(status)

	return t, nil
}
