// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-file-courier/internal/adapter"
	"github.com/MKhiriev/go-file-courier/internal/config"
	"github.com/MKhiriev/go-file-courier/internal/crypto"
	"github.com/MKhiriev/go-file-courier/internal/logger"
	"github.com/MKhiriev/go-file-courier/internal/store"
	"github.com/MKhiriev/go-file-courier/models"
)

const defaultWorkers = 4

type courier struct {
	server adapter.ServerAdapter
	local  store.LocalStore
	keys   crypto.KeyCustodyService

	chunkSize int
	workers   int
	now       func() time.Time

	logger *logger.Logger
}

func NewCourier(server adapter.ServerAdapter, local store.LocalStore, keys crypto.KeyCustodyService, cfg config.ClientCrypto, logger *logger.Logger) Courier {
	workers := cfg.DecryptWorkers
	if workers <= 0 {
		workers = defaultWorkers
	}
	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = crypto.DefaultChunkSize
	}

	return &courier{
		server:    server,
		local:     local,
		keys:      keys,
		chunkSize: chunkSize,
		workers:   workers,
		now:       time.Now,
		logger:    logger,
	}
}

func (c *courier) Register(ctx context.Context, creds models.Credentials, masterSecret string) (*Session, error) {
	if masterSecret == "" {
		return nil, ErrEmptyMasterSecret
	}

	auth, err := c.server.Register(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("register on server: %w", err)
	}

	session, err := c.installKeys(ctx, auth.Token, auth.Address, masterSecret)
	if err != nil {
		c.logger.Err(err).Str("func", "*courier.Register").Str("address", auth.Address).Msg("account created without keys")
		return nil, err
	}

	if err = c.saveSession(ctx, session); err != nil {
		session.Close()
		return nil, err
	}
	return session, nil
}

func (c *courier) Login(ctx context.Context, creds models.Credentials, masterSecret string) (*Session, error) {
	if masterSecret == "" {
		return nil, ErrEmptyMasterSecret
	}

	auth, err := c.server.Login(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("login on server: %w", err)
	}

	session, err := c.unlock(ctx, auth.Token, auth.Address, masterSecret)
	if err != nil {
		return nil, err
	}

	if err = c.saveSession(ctx, session); err != nil {
		session.Close()
		return nil, err
	}
	return session, nil
}

func (c *courier) Resume(ctx context.Context, masterSecret string) (*Session, error) {
	if masterSecret == "" {
		return nil, ErrEmptyMasterSecret
	}

	stored, err := c.local.LoadSession(ctx)
	if errors.Is(err, store.ErrLocalSessionNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	session, err := c.unlock(ctx, stored.Token, stored.Address, masterSecret)
	if errors.Is(err, adapter.ErrUnauthorized) {
		return nil, ErrSessionExpired
	}
	return session, err
}

func (c *courier) Logout(ctx context.Context) error {
	c.server.SetToken("")
	if err := c.local.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (c *courier) RedoKeys(ctx context.Context, s *Session, masterSecret string) (*Session, error) {
	if err := c.use(s); err != nil {
		return nil, err
	}
	if masterSecret == "" {
		return nil, ErrEmptyMasterSecret
	}

	session, err := c.installKeys(ctx, s.Token, s.Address.String(), masterSecret)
	if err != nil {
		return nil, err
	}

	c.logger.Info().Str("address", s.Address.String()).Msg("keys replaced")
	s.Close()
	return session, nil
}

func (c *courier) Version(ctx context.Context) (models.VersionResponse, error) {
	return c.server.Version(ctx)
}

// installKeys generates a key pair and registers it under token.
func (c *courier) installKeys(ctx context.Context, token, address, masterSecret string) (*Session, error) {
	addr, err := models.ParseAddress(address)
	if err != nil {
		return nil, fmt.Errorf("server returned address: %w", err)
	}
	c.server.SetToken(token)

	pair, err := c.keys.GenerateKeyPair()
	if err != nil {
		return nil, fmt.Errorf("generate key pair: %w", err)
	}

	protected, err := c.keys.ProtectPrivateKey(pair.Private, masterSecret)
	if err != nil {
		crypto.Wipe(pair.Private)
		return nil, fmt.Errorf("protect private key: %w", err)
	}

	if err = c.server.PutKeys(ctx, models.KeysRequest{PublicKey: pair.Public, ProtectedPrivateKey: protected}); err != nil {
		crypto.Wipe(pair.Private)
		return nil, fmt.Errorf("upload keys: %w", err)
	}

	return &Session{Token: token, Address: addr, PublicKey: pair.Public, PrivateKey: pair.Private}, nil
}

// unlock downloads the protected private key and opens it.
func (c *courier) unlock(ctx context.Context, token, address, masterSecret string) (*Session, error) {
	addr, err := models.ParseAddress(address)
	if err != nil {
		return nil, fmt.Errorf("server returned address: %w", err)
	}
	c.server.SetToken(token)

	own, err := c.server.GetOwnKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("download keys: %w", err)
	}

	private, err := c.keys.UnlockPrivateKey(own.ProtectedPrivateKey, masterSecret)
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, Address: addr, PublicKey: own.PublicKey, PrivateKey: private}, nil
}

func (c *courier) saveSession(ctx context.Context, s *Session) error {
	err := c.local.SaveSession(ctx, models.StoredSession{
		Token:   s.Token,
		Address: s.Address.String(),
		SavedAt: c.now(),
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// use points the server adapter at the session's token.
func (c *courier) use(s *Session) error {
	if !s.unlocked() {
		return ErrNoSession
	}
	c.server.SetToken(s.Token)
	return nil
}
