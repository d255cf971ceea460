// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-file-courier/internal/crypto"
	"github.com/MKhiriev/go-file-courier/internal/store"
	"github.com/MKhiriev/go-file-courier/models"
)

// checkPin pins an unknown address and rejects a key that differs from its
// pin.
func (c *courier) checkPin(ctx context.Context, address string, publicKey []byte) error {
	fingerprint := c.keys.FingerprintPublicKey(publicKey)

	pin, err := c.local.GetPin(ctx, address)
	switch {
	case errors.Is(err, store.ErrPinNotFound):
		c.logger.Info().Str("address", address).Str("fingerprint", fingerprint).Msg("pinning key on first use")
		_, err = c.pin(ctx, address, fingerprint)
		return err
	case err != nil:
		return fmt.Errorf("read pinned key: %w", err)
	case pin.Fingerprint != fingerprint:
		return fmt.Errorf("%w: %s was pinned as %s, server now returns %s",
			ErrRecipientKeyChanged, address, pin.Fingerprint, fingerprint)
	}
	return nil
}

func (c *courier) Fingerprint(ctx context.Context, s *Session, address string) (models.PublicKeyResponse, *models.KeyPin, error) {
	if err := c.use(s); err != nil {
		return models.PublicKeyResponse{}, nil, err
	}

	key, err := c.currentKey(ctx, address)
	if err != nil {
		return models.PublicKeyResponse{}, nil, err
	}

	pin, err := c.local.GetPin(ctx, address)
	if errors.Is(err, store.ErrPinNotFound) {
		return key, nil, nil
	}
	if err != nil {
		return key, nil, fmt.Errorf("read pinned key: %w", err)
	}
	return key, &pin, nil
}

func (c *courier) Pin(ctx context.Context, s *Session, address string) (models.KeyPin, error) {
	if err := c.use(s); err != nil {
		return models.KeyPin{}, err
	}

	key, err := c.currentKey(ctx, address)
	if err != nil {
		return models.KeyPin{}, err
	}
	return c.pin(ctx, address, key.Fingerprint)
}

// currentKey fetches the key of address and fingerprints it locally rather
// than trusting the fingerprint sent by the server.
func (c *courier) currentKey(ctx context.Context, address string) (models.PublicKeyResponse, error) {
	if _, err := models.ParseAddress(address); err != nil {
		return models.PublicKeyResponse{}, err
	}

	key, err := c.server.GetPublicKey(ctx, address)
	if err != nil {
		return models.PublicKeyResponse{}, fmt.Errorf("fetch key: %w", err)
	}
	if err = crypto.ValidatePublicKey(key.PublicKey); err != nil {
		return models.PublicKeyResponse{}, err
	}
	key.Fingerprint = c.keys.FingerprintPublicKey(key.PublicKey)
	return key, nil
}

func (c *courier) pin(ctx context.Context, address, fingerprint string) (models.KeyPin, error) {
	pin := models.KeyPin{Address: address, Fingerprint: fingerprint, PinnedAt: c.now().UTC()}
	if err := c.local.Pin(ctx, pin); err != nil {
		return models.KeyPin{}, fmt.Errorf("pin key: %w", err)
	}
	return pin, nil
}
