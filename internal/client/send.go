// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-file-courier/internal/crypto"
	"github.com/MKhiriev/go-file-courier/models"
)

// Send runs the send pipeline: recipient key, pin check, one-time file key,
// transfer record, then encrypt-and-upload chunk by chunk. Plaintext is read
// once and never buffered beyond one chunk.
func (c *courier) Send(ctx context.Context, s *Session, req SendRequest) (models.Transfer, error) {
	log := c.logger.With().Str("func", "*courier.Send").Str("recipient", req.Recipient).Logger()

	if err := c.use(s); err != nil {
		return models.Transfer{}, err
	}
	if req.Size <= 0 || req.Body == nil {
		return models.Transfer{}, ErrEmptyFile
	}
	if _, err := models.ParseAddress(req.Recipient); err != nil {
		return models.Transfer{}, err
	}

	recipientKey, err := c.server.GetPublicKey(ctx, req.Recipient)
	if err != nil {
		return models.Transfer{}, fmt.Errorf("fetch recipient key: %w", err)
	}
	if err = crypto.ValidatePublicKey(recipientKey.PublicKey); err != nil {
		return models.Transfer{}, fmt.Errorf("recipient key: %w", err)
	}
	if err = c.checkPin(ctx, req.Recipient, recipientKey.PublicKey); err != nil {
		return models.Transfer{}, err
	}

	fileKey, err := c.keys.GenerateSymmetricKey()
	if err != nil {
		return models.Transfer{}, fmt.Errorf("generate file key: %w", err)
	}
	defer crypto.Wipe(fileKey)

	wrapped, err := c.keys.WrapSymmetricKey(fileKey, recipientKey.PublicKey)
	if err != nil {
		return models.Transfer{}, fmt.Errorf("wrap file key: %w", err)
	}

	transfer, err := c.server.CreateTransfer(ctx, models.CreateTransferRequest{
		Receiver:   req.Recipient,
		Filename:   req.Filename,
		Subject:    req.Subject,
		Size:       req.Size,
		WrappedKey: wrapped,
		ChunkSize:  c.chunkSize,
	})
	if err != nil {
		return models.Transfer{}, fmt.Errorf("create transfer: %w", err)
	}
	log.Debug().Str("transfer_id", transfer.ID).Msg("transfer created")

	err = crypto.EncryptStream(req.Body, fileKey, c.chunkSize, func(chunk models.EncryptedChunk) error {
		if err := c.server.UploadChunk(ctx, transfer.ID, chunk); err != nil {
			return fmt.Errorf("chunk %d: %w", chunk.Index, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("transfer_id", transfer.ID).Msg("upload aborted")
		// an abandoned CREATED transfer would otherwise wait for the sweeper
		if delErr := c.server.DeleteTransfer(context.WithoutCancel(ctx), transfer.ID); delErr != nil {
			log.Warn().Err(delErr).Str("transfer_id", transfer.ID).Msg("could not delete aborted transfer")
		}
		return transfer, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	return c.server.GetTransfer(ctx, transfer.ID)
}
