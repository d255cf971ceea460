// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-file-courier/internal/logger"
	"github.com/MKhiriev/go-file-courier/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransferRepo(t *testing.T) (*transferRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	l := logger.Nop()
	return &transferRepository{db: &DB{DB: db, logger: l}, logger: l}, mock
}

func transferRow(rows *sqlmock.Rows, id string, status models.TransferStatus) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(
		id, "alice@a.example", "bob@b.example", int64(1), nil,
		"local", "report.pdf", "q3", int64(1000), make([]byte, 80), string(status),
		0, 512*1024, now, now,
	)
}

// ── CreateTransfer ──────────────────────────────────────────────────────────

func TestTransferRepository_CreateTransfer(t *testing.T) {
	repo, mock := newTestTransferRepo(t)

	senderID := int64(1)
	in := models.Transfer{
		ID: "0190f0a0-0000-7000-8000-000000000001", Sender: "alice@a.example", Receiver: "bob@b.example",
		SenderID: &senderID, Origin: models.OriginLocal, Filename: "report.pdf", Subject: "q3",
		Size: 1000, WrappedKey: make([]byte, 80), Status: models.StatusCreated, ChunkSize: 512 * 1024,
	}

	mock.ExpectQuery("INSERT INTO transfers").
		WillReturnRows(transferRow(sqlmock.NewRows(transferColumns), in.ID, models.StatusCreated))

	out, err := repo.CreateTransfer(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, models.OriginLocal, out.Origin)
	require.NotNil(t, out.SenderID)
	assert.Nil(t, out.ReceiverID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRepository_CreateTransfer_Duplicate(t *testing.T) {
	repo, mock := newTestTransferRepo(t)

	mock.ExpectQuery("INSERT INTO transfers").WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateTransfer(context.Background(), models.Transfer{ID: "x"})
	assert.ErrorIs(t, err, ErrTransferAlreadyExists)
}

// ── GetTransfer ─────────────────────────────────────────────────────────────

func TestTransferRepository_GetTransfer(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT (.+) FROM transfers WHERE id = \\$1").
					WithArgs("t1").
					WillReturnRows(transferRow(sqlmock.NewRows(transferColumns), "t1", models.StatusSent))
			},
		},
		{
			name: "no rows",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT").WillReturnError(sql.ErrNoRows)
			},
			wantErr: ErrTransferNotFound,
		},
		{
			name: "malformed id",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT").WillReturnError(pgError(pgerrcode.InvalidTextRepresentation))
			},
			wantErr: ErrTransferNotFound,
		},
		{
			name: "serialization failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT").WillReturnError(pgError(pgerrcode.SerializationFailure))
			},
			wantErr: ErrStorageUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestTransferRepo(t)
			tt.setup(mock)

			got, err := repo.GetTransfer(context.Background(), "t1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.StatusSent, got.Status)
		})
	}
}

// ── UpdateStatus ────────────────────────────────────────────────────────────

func TestTransferRepository_UpdateStatus(t *testing.T) {
	t.Run("winner", func(t *testing.T) {
		repo, mock := newTestTransferRepo(t)
		count := 3

		mock.ExpectExec("UPDATE transfers SET status = \\$1, updated_at = now\\(\\), chunk_count = \\$2 WHERE").
			WithArgs("UPLOADED", 3, "t1", "CREATED").
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.UpdateStatus(context.Background(), StatusChange{
			ID: "t1", From: []models.TransferStatus{models.StatusCreated}, To: models.StatusUploaded, ChunkCount: &count,
		})
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("loser", func(t *testing.T) {
		repo, mock := newTestTransferRepo(t)

		mock.ExpectExec("UPDATE transfers").WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.UpdateStatus(context.Background(), StatusChange{
			ID: "t1", From: []models.TransferStatus{models.StatusSent, models.StatusUploaded}, To: models.StatusRefused,
		})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newTestTransferRepo(t)

		mock.ExpectExec("UPDATE transfers").WillReturnError(errors.New("boom"))

		_, err := repo.UpdateStatus(context.Background(), StatusChange{
			ID: "t1", From: []models.TransferStatus{models.StatusCreated}, To: models.StatusExpired,
		})
		assert.ErrorIs(t, err, ErrExecutingQuery)
	})

	t.Run("empty source states", func(t *testing.T) {
		repo, _ := newTestTransferRepo(t)

		_, err := repo.UpdateStatus(context.Background(), StatusChange{ID: "t1", To: models.StatusExpired})
		assert.ErrorIs(t, err, ErrBuildingSQLQuery)
	})
}

// ── listings ────────────────────────────────────────────────────────────────

func TestTransferRepository_ListForAddress(t *testing.T) {
	repo, mock := newTestTransferRepo(t)

	rows := sqlmock.NewRows(transferColumns)
	transferRow(rows, "t1", models.StatusSent)
	transferRow(rows, "t2", models.StatusAccepted)
	mock.ExpectQuery("SELECT (.+) FROM transfers WHERE receiver_address = \\$1 AND status <> \\$2 ORDER BY created_at DESC").
		WithArgs("bob@b.example", "DELETED").
		WillReturnRows(rows)

	got, err := repo.ListForAddress(context.Background(), "bob@b.example", models.Inbox)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "t2", got[1].ID)
}

func TestTransferRepository_ListByStatus_ScanError(t *testing.T) {
	repo, mock := newTestTransferRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM transfers").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("t1"))

	_, err := repo.ListByStatus(context.Background(), []models.TransferStatus{models.StatusCreated}, time.Now(), 10)
	assert.ErrorIs(t, err, ErrScanningRows)
}

func TestTransferRepository_ListOutstandingForAddress(t *testing.T) {
	repo, mock := newTestTransferRepo(t)

	mock.ExpectQuery("WHERE \\(sender_address = \\$1 OR receiver_address = \\$2\\) AND status IN").
		WithArgs("alice@a.example", "alice@a.example", "CREATED", "UPLOADED", "SENT", "ACCEPTED").
		WillReturnRows(transferRow(sqlmock.NewRows(transferColumns), "t1", models.StatusCreated))

	got, err := repo.ListOutstandingForAddress(context.Background(), "alice@a.example")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
