// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-file-courier/internal/adapter"
	"github.com/MKhiriev/go-file-courier/internal/config"
	"github.com/MKhiriev/go-file-courier/internal/crypto"
	"github.com/MKhiriev/go-file-courier/internal/logger"
	"github.com/MKhiriev/go-file-courier/internal/store"
	"github.com/MKhiriev/go-file-courier/internal/validators"
	"github.com/MKhiriev/go-file-courier/models"
)

// keyService is the concrete implementation of KeyService. The server only
// stores key material; it never sees a private key in the clear.
type keyService struct {
	users     store.UserRepository
	peers     adapter.PeerAdapter
	bus       *EventBus
	validator validators.Validator

	domain string

	logger *logger.Logger
}

func NewKeyService(users store.UserRepository, peers adapter.PeerAdapter, bus *EventBus, validator validators.Validator, cfg config.App, logger *logger.Logger) KeyService {
	return &keyService{
		users:     users,
		peers:     peers,
		bus:       bus,
		validator: validator,
		domain:    cfg.Domain,
		logger:    logger,
	}
}

// SetKeys stores the keys and, when the user already had keys, publishes
// KEYS_CHANGED after the new keys are committed.
func (s *keyService) SetKeys(ctx context.Context, userID int64, req models.KeysRequest) error {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("error finding user: %w", err)
	}

	if err := s.users.UpdateUserKeys(ctx, userID, req.PublicKey, req.ProtectedPrivateKey); err != nil {
		log.Err(err).Str("func", "*keyService.SetKeys").Int64("user_id", userID).Msg("error storing keys")
		return fmt.Errorf("error storing keys: %w", err)
	}

	if user.HasKeys() {
		address := models.Address{Login: user.Login, Domain: s.domain}
		log.Info().Str("address", address.String()).Msg("keys replaced")
		s.bus.Publish(ctx, Event{Kind: models.EventKeysChanged, Actor: address.String()})
	}

	return nil
}

func (s *keyService) GetOwnKeys(ctx context.Context, userID int64) (models.OwnKeysResponse, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return models.OwnKeysResponse{}, fmt.Errorf("error finding user: %w", err)
	}
	if !user.HasKeys() {
		return models.OwnKeysResponse{}, ErrKeysNotRegistered
	}

	return models.OwnKeysResponse{
		PublicKey:           user.PublicKey,
		ProtectedPrivateKey: *user.ProtectedPrivateKey,
	}, nil
}

func (s *keyService) GetPublicKey(ctx context.Context, address string) (models.PublicKeyResponse, error) {
	addr, err := models.ParseAddress(address)
	if err != nil {
		return models.PublicKeyResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if addr.Domain == s.domain {
		return s.GetLocalPublicKey(ctx, addr.Login)
	}

	resp, err := s.peers.FetchPublicKey(ctx, addr)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*keyService.GetPublicKey").
			Str("domain", addr.Domain).
			Msg("error fetching remote public key")
		if errors.Is(err, adapter.ErrNotFound) {
			return models.PublicKeyResponse{}, ErrRecipientNotFound
		}
		return models.PublicKeyResponse{}, peerError(err)
	}

	if err := crypto.ValidatePublicKey(resp.PublicKey); err != nil {
		return models.PublicKeyResponse{}, fmt.Errorf("%w: peer returned %w", ErrTransferUnavailable, err)
	}

	// the fingerprint is recomputed, never taken from the peer
	return models.PublicKeyResponse{
		Address:     addr.String(),
		PublicKey:   resp.PublicKey,
		Fingerprint: crypto.Fingerprint(resp.PublicKey),
	}, nil
}

func (s *keyService) GetLocalPublicKey(ctx context.Context, login string) (models.PublicKeyResponse, error) {
	user, err := s.users.FindUserByLogin(ctx, login)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.PublicKeyResponse{}, ErrRecipientNotFound
	}
	if err != nil {
		return models.PublicKeyResponse{}, fmt.Errorf("error finding user: %w", err)
	}
	if !user.HasKeys() {
		return models.PublicKeyResponse{}, ErrKeysNotRegistered
	}

	return models.PublicKeyResponse{
		Address:     models.Address{Login: user.Login, Domain: s.domain}.String(),
		PublicKey:   user.PublicKey,
		Fingerprint: crypto.Fingerprint(user.PublicKey),
	}, nil
}
