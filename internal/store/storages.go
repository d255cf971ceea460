// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-file-courier/internal/config"
	"github.com/MKhiriev/go-file-courier/internal/logger"
)

// Storages groups every server-side repository and the chunk store into a
// single value that is passed to the service layer.
type Storages struct {
	UserRepository        UserRepository
	TransferRepository    TransferRepository
	TransferLogRepository TransferLogRepository
	ChunkStore            ChunkStore

	db *DB
}

// NewStorages initialises the server storage layer:
//  1. connects to PostgreSQL and applies the embedded migrations;
//  2. opens the chunk backend selected by cfg.Chunks.Backend;
//  3. wires the repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	blobs, err := NewBlobStore(ctx, cfg.Chunks, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storages{
		UserRepository:        NewUserRepository(db, log),
		TransferRepository:    NewTransferRepository(db, log),
		TransferLogRepository: NewTransferLogRepository(db, log),
		ChunkStore:            NewChunkStore(blobs, log),
		db:                    db,
	}, nil
}

// NewBlobStore opens the blob backend named in cfg.
func NewBlobStore(ctx context.Context, cfg config.Chunks, log *logger.Logger) (BlobStore, error) {
	switch cfg.Backend {
	case config.ChunkBackendFS:
		log.Info().Str("dir", cfg.Dir).Msg("using directory chunk store")
		return NewFileBlobStore(cfg.Dir)
	case config.ChunkBackendS3:
		return NewS3BlobStore(ctx, cfg.S3, log)
	default:
		return nil, fmt.Errorf("unknown chunk backend %q", cfg.Backend)
	}
}

// Close releases the database pool.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
