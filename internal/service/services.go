// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-file-courier/internal/adapter"
	"github.com/MKhiriev/go-file-courier/internal/config"
	"github.com/MKhiriev/go-file-courier/internal/logger"
	"github.com/MKhiriev/go-file-courier/internal/store"
	"github.com/MKhiriev/go-file-courier/internal/validators"
	"github.com/MKhiriev/go-file-courier/models"
)

type Services struct {
	AuthService       AuthService
	KeyService        KeyService
	TransferService   TransferService
	FederationService FederationService
	RetentionService  RetentionService
	AppInfoService    AppInfoService

	Bus *EventBus

	// background tracks work started by event listeners. closed is set by
	// Wait under mu; no Add happens after it.
	mu         sync.Mutex
	closed     bool
	background sync.WaitGroup
}

func NewServices(
	storages *store.Storages,
	peers adapter.PeerAdapter,
	cfg config.StructuredConfig,
	buildInfo models.AppBuildInfo,
	logger *logger.Logger,
) *Services {
	bus := NewEventBus()
	validator := validators.NewTransferValidator()
	lifecycle := NewLifecycle(storages.TransferRepository, storages.ChunkStore, bus)

	federation := NewFederationService(lifecycle, storages.UserRepository, peers, validator, cfg, logger)
	transfers := NewTransferService(lifecycle, storages.UserRepository, federation, validator, cfg, logger)

	s := &Services{
		AuthService:       NewAuthService(storages.UserRepository, validator, cfg.App, logger),
		KeyService:        NewKeyService(storages.UserRepository, peers, bus, validator, cfg.App, logger),
		TransferService:   transfers,
		FederationService: federation,
		RetentionService:  NewRetentionService(lifecycle, storages.TransferLogRepository, federation, cfg, logger),
		AppInfoService:    NewAppInfoService(buildInfo, logger),
		Bus:               bus,
	}

	bus.Subscribe(NewAuditLogListener(storages.TransferLogRepository))
	bus.Subscribe(s.expireOnKeysChanged(logger), models.EventKeysChanged)

	return s
}

// Wait stops listeners from starting background work and blocks until the
// work already started is done. Listeners firing later run inline.
func (s *Services) Wait() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.background.Wait()
}

// goBackground runs fn on its own goroutine tracked by Wait, or inline once
// Wait has been called.
func (s *Services) goBackground(fn func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		fn()
		return
	}
	s.background.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.background.Done()
		fn()
	}()
}

// expireOnKeysChanged expires the user's outstanding transfers once new
// keys are committed: their wrapped keys can no longer be opened. It runs
// outside the request that changed the keys.
func (s *Services) expireOnKeysChanged(log *logger.Logger) EventListener {
	return func(ctx context.Context, event Event) {
		ctx = context.WithoutCancel(ctx)
		s.goBackground(func() {
			expired, err := s.TransferService.ExpireUserTransfers(ctx, event.Actor)
			if err != nil {
				log.Err(err).Str("address", event.Actor).Msg("error expiring transfers after key change")
				return
			}
			log.Info().Str("address", event.Actor).Int("expired", expired).Msg("transfers expired after key change")
		})
	}
}
