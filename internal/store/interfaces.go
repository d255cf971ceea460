// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-file-courier/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists accounts hosted on this server.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	UpdateUserKeys(ctx context.Context, userID int64, publicKey []byte, protected models.ProtectedPrivateKey) error
}

// StatusChange is a compare-and-set of a transfer status: it applies only
// while the stored status is one of From.
type StatusChange struct {
	ID   string
	From []models.TransferStatus
	To   models.TransferStatus

	// ChunkCount is recorded together with the status when set.
	ChunkCount *int
}

// TransferRepository persists transfer metadata. Status is written only
// through UpdateStatus.
type TransferRepository interface {
	CreateTransfer(ctx context.Context, transfer models.Transfer) (models.Transfer, error)
	GetTransfer(ctx context.Context, id string) (models.Transfer, error)

	// UpdateStatus reports whether this call performed the change. false with
	// a nil error means the stored status was not in From.
	UpdateStatus(ctx context.Context, change StatusChange) (bool, error)

	// ListByStatus returns up to limit transfers in one of statuses whose last
	// status change happened before the given time, oldest first.
	ListByStatus(ctx context.Context, statuses []models.TransferStatus, before time.Time, limit uint64) ([]models.Transfer, error)

	// ListForAddress returns the transfers where address is the receiver
	// (inbox) or the sender (outbox), newest first.
	ListForAddress(ctx context.Context, address string, box models.Mailbox) ([]models.Transfer, error)

	// ListOutstandingForAddress returns every transfer not yet delivered
	// (CREATED, UPLOADED, SENT or ACCEPTED) where address is the sender or
	// the receiver.
	ListOutstandingForAddress(ctx context.Context, address string) ([]models.Transfer, error)
}

// TransferLogRepository persists the append-only audit log.
type TransferLogRepository interface {
	AppendLog(ctx context.Context, entry models.TransferLog) error
	ListLogs(ctx context.Context, transferID string) ([]models.TransferLog, error)
	DeleteLogsForTransfer(ctx context.Context, transferID string) (int64, error)
	DeleteLogsBefore(ctx context.Context, before time.Time) (int64, error)
}

// BlobStore is a flat key/value object store. Put never replaces a stored
// key and returns [ErrBlobExists] instead. Delete of an absent key succeeds.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
}

// ChunkStore stores the encrypted chunks of transfers on top of a BlobStore.
type ChunkStore interface {
	// PutChunk is create-only: re-storing identical content succeeds,
	// different content yields [ErrChunkConflict].
	PutChunk(ctx context.Context, transferID string, chunk models.EncryptedChunk) error
	GetChunk(ctx context.Context, transferID string, index uint32) (models.EncryptedChunk, error)
	// ListChunks returns the stored indices in ascending order.
	ListChunks(ctx context.Context, transferID string) ([]uint32, error)
	// DeleteChunks removes every chunk of the transfer; absent chunks are
	// not an error.
	DeleteChunks(ctx context.Context, transferID string) error
}
