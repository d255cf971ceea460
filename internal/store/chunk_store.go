// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-file-courier/internal/logger"
	"github.com/MKhiriev/go-file-courier/models"
)

const (
	chunkFormatVersion = 1
	chunkFlagLast      = 1 << 0
	chunkHeaderSize    = 3
)

// chunkStore maps transfer chunks onto blob keys
// "transfers/<id>/chunks/<index>" with a small binary header:
// version, flags, nonce length, nonce, ciphertext.
type chunkStore struct {
	blobs  BlobStore
	logger *logger.Logger
}

// NewChunkStore constructs a [ChunkStore] on top of blobs.
func NewChunkStore(blobs BlobStore, logger *logger.Logger) ChunkStore {
	return &chunkStore{blobs: blobs, logger: logger}
}

func chunkPrefix(transferID string) string {
	return "transfers/" + transferID + "/chunks/"
}

func chunkKey(transferID string, index uint32) string {
	return fmt.Sprintf("%s%010d", chunkPrefix(transferID), index)
}

func (s *chunkStore) PutChunk(ctx context.Context, transferID string, chunk models.EncryptedChunk) error {
	if err := validateKeySegment(transferID); err != nil {
		return err
	}

	key := chunkKey(transferID, chunk.Index)
	data := encodeChunk(chunk)
	err := s.blobs.Put(ctx, key, data)
	if errors.Is(err, ErrBlobExists) {
		return s.samePersisted(ctx, key, chunk.Index, data)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*chunkStore.PutChunk").
			Str("transfer_id", transferID).
			Uint32("chunk_index", chunk.Index).
			Msg("error storing chunk")
		return fmt.Errorf("error storing chunk %d: %w", chunk.Index, err)
	}

	return nil
}

// samePersisted turns a repeated put into success when the stored bytes
// match, so a retried upload is idempotent.
func (s *chunkStore) samePersisted(ctx context.Context, key string, index uint32, data []byte) error {
	stored, err := s.blobs.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("error loading stored chunk %d: %w", index, err)
	}
	if !bytes.Equal(stored, data) {
		logger.FromContext(ctx).Warn().Str("func", "*chunkStore.PutChunk").
			Uint32("chunk_index", index).
			Msg("refusing to replace stored chunk")
		return fmt.Errorf("%w: index %d", ErrChunkConflict, index)
	}
	return nil
}

func (s *chunkStore) GetChunk(ctx context.Context, transferID string, index uint32) (models.EncryptedChunk, error) {
	if err := validateKeySegment(transferID); err != nil {
		return models.EncryptedChunk{}, err
	}

	data, err := s.blobs.Get(ctx, chunkKey(transferID, index))
	if errors.Is(err, ErrBlobNotFound) {
		return models.EncryptedChunk{}, ErrChunkNotFound
	}
	if err != nil {
		return models.EncryptedChunk{}, fmt.Errorf("error loading chunk %d: %w", index, err)
	}

	return decodeChunk(index, data)
}

func (s *chunkStore) ListChunks(ctx context.Context, transferID string) ([]uint32, error) {
	if err := validateKeySegment(transferID); err != nil {
		return nil, err
	}

	prefix := chunkPrefix(transferID)
	keys, err := s.blobs.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("error listing chunks: %w", err)
	}

	indices := make([]uint32, 0, len(keys))
	for _, key := range keys {
		n, err := strconv.ParseUint(strings.TrimPrefix(key, prefix), 10, 32)
		if err != nil {
			s.logger.Warn().Str("func", "*chunkStore.ListChunks").Str("key", key).Msg("skipping foreign key under chunk prefix")
			continue
		}
		indices = append(indices, uint32(n))
	}
	slices.Sort(indices)

	return indices, nil
}

func (s *chunkStore) DeleteChunks(ctx context.Context, transferID string) error {
	if err := validateKeySegment(transferID); err != nil {
		return err
	}

	keys, err := s.blobs.List(ctx, chunkPrefix(transferID))
	if err != nil {
		return fmt.Errorf("error listing chunks: %w", err)
	}

	var errs []error
	for _, key := range keys {
		if err := s.blobs.Delete(ctx, key); err != nil && !errors.Is(err, ErrBlobNotFound) {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		logger.FromContext(ctx).Err(errors.Join(errs...)).Str("func", "*chunkStore.DeleteChunks").
			Str("transfer_id", transferID).
			Msg("error deleting chunks")
		return fmt.Errorf("error deleting chunks: %w", errors.Join(errs...))
	}

	return nil
}

func encodeChunk(c models.EncryptedChunk) []byte {
	var flags byte
	if c.IsLast {
		flags |= chunkFlagLast
	}

	out := make([]byte, 0, chunkHeaderSize+len(c.Nonce)+len(c.Ciphertext))
	out = append(out, chunkFormatVersion, flags, byte(len(c.Nonce)))
	out = append(out, c.Nonce...)
	return append(out, c.Ciphertext...)
}

func decodeChunk(index uint32, data []byte) (models.EncryptedChunk, error) {
	if len(data) < chunkHeaderSize || data[0] != chunkFormatVersion {
		return models.EncryptedChunk{}, fmt.Errorf("%w: chunk %d has a bad header", ErrCorruptedChunk, index)
	}

	nonceLen := int(data[2])
	if len(data) < chunkHeaderSize+nonceLen {
		return models.EncryptedChunk{}, fmt.Errorf("%w: chunk %d is truncated", ErrCorruptedChunk, index)
	}

	body := data[chunkHeaderSize:]
	return models.EncryptedChunk{
		Index:      index,
		Nonce:      slices.Clone(body[:nonceLen]),
		Ciphertext: slices.Clone(body[nonceLen:]),
		IsLast:     data[1]&chunkFlagLast != 0,
	}, nil
}

// validateKeySegment rejects ids that could address blobs outside the
// transfer's own prefix.
func validateKeySegment(s string) error {
	if s == "" || s == "." || s == ".." || strings.ContainsAny(s, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	return nil
}
