// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-file-courier/internal/logger"
	"github.com/MKhiriev/go-file-courier/models"
	sq "github.com/Masterminds/squirrel"
)

type transferLogRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTransferLogRepository constructs a [TransferLogRepository].
func NewTransferLogRepository(db *DB, logger *logger.Logger) TransferLogRepository {
	logger.Debug().Msg("creating transfer log repository")
	return &transferLogRepository{
		db:     db,
		logger: logger,
	}
}

func (r *transferLogRepository) AppendLog(ctx context.Context, entry models.TransferLog) error {
	log := logger.FromContext(ctx)

	q := psql.Insert("transfer_logs").Columns("transfer_id", "kind", "actor")
	values := []any{entry.TransferID, string(entry.Kind), entry.Actor}
	if !entry.CreatedAt.IsZero() {
		q = q.Columns("created_at")
		values = append(values, entry.CreatedAt)
	}

	query, args, err := q.Values(values...).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*transferLogRepository.AppendLog").
			Str("transfer_id", entry.TransferID).
			Str("kind", string(entry.Kind)).
			Msg("error appending transfer log")
		return r.db.wrapQueryError(ErrExecutingQuery, err)
	}

	return nil
}

func (r *transferLogRepository) ListLogs(ctx context.Context, transferID string) ([]models.TransferLog, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.Select(transferLogColumns...).
		From("transfer_logs").
		Where(sq.Eq{"transfer_id": transferID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*transferLogRepository.ListLogs").Str("transfer_id", transferID).Msg("error listing logs")
		return nil, r.db.wrapQueryError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var entries []models.TransferLog
	for rows.Next() {
		var (
			e    models.TransferLog
			kind string
		)
		if err := rows.Scan(&e.ID, &e.TransferID, &kind, &e.Actor, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		e.Kind = models.EventKind(kind)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

func (r *transferLogRepository) DeleteLogsForTransfer(ctx context.Context, transferID string) (int64, error) {
	return r.delete(ctx, "*transferLogRepository.DeleteLogsForTransfer", sq.Eq{"transfer_id": transferID})
}

func (r *transferLogRepository) DeleteLogsBefore(ctx context.Context, before time.Time) (int64, error) {
	return r.delete(ctx, "*transferLogRepository.DeleteLogsBefore", sq.Lt{"created_at": before})
}

func (r *transferLogRepository) delete(ctx context.Context, funcName string, where sq.Sqlizer) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.Delete("transfer_logs").Where(where).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error deleting logs")
		return 0, r.db.wrapQueryError(ErrExecutingQuery, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return n, nil
}
