// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-file-courier/internal/crypto"
	"github.com/MKhiriev/go-file-courier/models"
	"golang.org/x/sync/errgroup"
)

// Receive runs the receive pipeline. Chunks are fetched and decrypted in
// parallel; nothing is written to w unless the whole file authenticates.
func (c *courier) Receive(ctx context.Context, s *Session, transferID string, w io.Writer) (models.Transfer, error) {
	log := c.logger.With().Str("func", "*courier.Receive").Str("transfer_id", transferID).Logger()

	if err := c.use(s); err != nil {
		return models.Transfer{}, err
	}

	transfer, err := c.server.GetTransfer(ctx, transferID)
	if err != nil {
		return models.Transfer{}, fmt.Errorf("read transfer: %w", err)
	}
	if transfer.Receiver != s.Address.String() {
		return transfer, ErrNotRecipient
	}

	switch transfer.Status {
	case models.StatusUploaded, models.StatusSent:
		if transfer, err = c.server.Accept(ctx, transferID); err != nil {
			return transfer, fmt.Errorf("accept transfer: %w", err)
		}
	case models.StatusAccepted, models.StatusRetrieved:
	default:
		return transfer, fmt.Errorf("%w: status is %s", ErrNotReceivable, transfer.Status)
	}

	chunks, err := c.fetchChunks(ctx, transferID)
	if err != nil {
		return transfer, err
	}

	plaintext, err := c.open(ctx, s, transfer, chunks)
	if err != nil {
		log.Err(err).Msg("downloaded file failed verification")
		if reportErr := c.server.ConfirmRetrieved(context.WithoutCancel(ctx), transferID, false); reportErr != nil {
			log.Warn().Err(reportErr).Msg("could not report integrity failure")
		}
		return transfer, fmt.Errorf("%w: %w", ErrIntegrity, err)
	}
	defer crypto.Wipe(plaintext)

	if _, err = w.Write(plaintext); err != nil {
		return transfer, fmt.Errorf("write file: %w", err)
	}

	if transfer.Status != models.StatusRetrieved {
		if err = c.server.ConfirmRetrieved(ctx, transferID, true); err != nil {
			return transfer, fmt.Errorf("confirm retrieval: %w", err)
		}
	}

	return c.server.GetTransfer(ctx, transferID)
}

// fetchChunks downloads every stored chunk of a transfer, keeping at most
// c.workers requests in flight.
func (c *courier) fetchChunks(ctx context.Context, transferID string) ([]models.EncryptedChunk, error) {
	indices, err := c.server.ListChunks(ctx, transferID)
	if err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}

	chunks := make([]models.EncryptedChunk, len(indices))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, index := range indices {
		g.Go(func() error {
			chunk, err := c.server.GetChunk(gctx, transferID, index)
			if err != nil {
				return fmt.Errorf("fetch chunk %d: %w", index, err)
			}
			chunks[i] = chunk
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}
	return chunks, nil
}

// open unwraps the file key and decrypts chunks into the whole file.
func (c *courier) open(ctx context.Context, s *Session, transfer models.Transfer, chunks []models.EncryptedChunk) ([]byte, error) {
	fileKey, err := c.keys.UnwrapSymmetricKey(transfer.WrappedKey, s.PrivateKey)
	if err != nil {
		return nil, err
	}
	defer crypto.Wipe(fileKey)

	plaintext, err := crypto.DecryptChunksParallel(ctx, chunks, fileKey, c.workers)
	if err != nil {
		return nil, err
	}
	if int64(len(plaintext)) != transfer.Size {
		crypto.Wipe(plaintext)
		return nil, fmt.Errorf("decrypted %d bytes, transfer declares %d", len(plaintext), transfer.Size)
	}
	return plaintext, nil
}

func (c *courier) Refuse(ctx context.Context, s *Session, transferID string) error {
	if err := c.use(s); err != nil {
		return err
	}
	return c.server.Refuse(ctx, transferID)
}

func (c *courier) Delete(ctx context.Context, s *Session, transferID string) error {
	if err := c.use(s); err != nil {
		return err
	}
	return c.server.DeleteTransfer(ctx, transferID)
}

func (c *courier) List(ctx context.Context, s *Session, box models.Mailbox) ([]models.Transfer, error) {
	if err := c.use(s); err != nil {
		return nil, err
	}
	return c.server.ListTransfers(ctx, box)
}
