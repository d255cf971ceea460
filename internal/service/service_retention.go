// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-file-courier/internal/config"
	"github.com/MKhiriev/go-file-courier/internal/logger"
	"github.com/MKhiriev/go-file-courier/internal/store"
	"github.com/MKhiriev/go-file-courier/models"
)

const (
	sweepBatchSize = 100
	// retryBatchSize is larger because local transfers share the status.
	retryBatchSize = 1000
)

// retentionService is the concrete implementation of RetentionService.
type retentionService struct {
	*Lifecycle

	logs       store.TransferLogRepository
	federation FederationService

	createdGrace    time.Duration
	retentionWindow time.Duration
	logRetention    time.Duration
	domain          string

	// now is the sweeper clock; tests replace it.
	now func() time.Time

	logger *logger.Logger
}

func NewRetentionService(
	lifecycle *Lifecycle,
	logs store.TransferLogRepository,
	federation FederationService,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) RetentionService {
	return &retentionService{
		Lifecycle:       lifecycle,
		logs:            logs,
		federation:      federation,
		createdGrace:    cfg.Workers.CreatedGrace,
		retentionWindow: cfg.Workers.RetentionWindow,
		logRetention:    cfg.Workers.LogRetention,
		domain:          cfg.App.Domain,
		now:             time.Now,
		logger:          logger,
	}
}

// ExpireStaleCreated expires uploads abandoned for longer than the grace
// period and removes their partial chunks.
func (s *retentionService) ExpireStaleCreated(ctx context.Context) (int, error) {
	return s.sweep(ctx, "stale-created", transitionExpiredCreated, s.now().Add(-s.createdGrace), nil)
}

// ExpireRetained removes the chunks of transfers older than the retention
// window and keeps their metadata.
func (s *retentionService) ExpireRetained(ctx context.Context) (int, error) {
	return s.sweep(ctx, "retained", transitionExpiredRetained, s.now().Add(-s.retentionWindow), nil)
}

// PurgeOldLogs moves old EXPIRED and REFUSED transfers to DELETED, drops
// their logs, and then drops every log row older than the window.
func (s *retentionService) PurgeOldLogs(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.logRetention)

	purged, err := s.sweep(ctx, "purge", transitionPurged, cutoff, func(ctx context.Context, t models.Transfer) error {
		_, err := s.logs.DeleteLogsForTransfer(ctx, t.ID)
		return err
	})
	if err != nil {
		return purged, err
	}

	rows, err := s.logs.DeleteLogsBefore(ctx, cutoff)
	if err != nil {
		return purged, fmt.Errorf("error purging logs: %w", err)
	}

	return purged + int(rows), nil
}

// RetryAnnouncements announces again every UPLOADED transfer whose receiver
// lives on another domain.
func (s *retentionService) RetryAnnouncements(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	transfers, err := s.transfers.ListByStatus(ctx, []models.TransferStatus{models.StatusUploaded}, s.now(), retryBatchSize)
	if err != nil {
		return 0, fmt.Errorf("error listing uploaded transfers: %w", err)
	}

	var sent int
	for _, t := range transfers {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}
		if t.Origin != models.OriginLocal || s.isLocal(t.Receiver) {
			continue
		}

		if _, err := s.federation.AnnounceTransfer(ctx, t); err != nil {
			log.Warn().Err(err).Str("func", "*retentionService.RetryAnnouncements").Str("transfer_id", t.ID).Msg("announcement retry failed")
			continue
		}
		sent++
	}

	return sent, nil
}

// sweep applies tr to every transfer in one of its source states whose last
// change happened before cutoff. after runs for every transfer this sweep
// changed.
func (s *retentionService) sweep(
	ctx context.Context,
	name string,
	tr transition,
	cutoff time.Time,
	after func(ctx context.Context, t models.Transfer) error,
) (int, error) {
	log := logger.FromContext(ctx).With().Str("sweep", name).Logger()

	var (
		changed int
		errs    []error
	)
	for {
		batch, err := s.transfers.ListByStatus(ctx, tr.from, cutoff, sweepBatchSize)
		if err != nil {
			return changed, fmt.Errorf("error listing transfers for %s sweep: %w", name, err)
		}

		progress := 0
		for _, t := range batch {
			if ctx.Err() != nil {
				return changed, ctx.Err()
			}

			updated, won, err := s.advance(ctx, t.ID, tr, "", nil)
			if err != nil {
				if !errors.Is(err, ErrInvalidTransition) {
					log.Err(err).Str("transfer_id", t.ID).Msg("error applying sweep")
					errs = append(errs, err)
				}
				continue
			}
			if !won {
				continue
			}

			progress++
			changed++
			if after != nil {
				if err := after(ctx, updated); err != nil {
					log.Err(err).Str("transfer_id", t.ID).Msg("error after sweep")
					errs = append(errs, err)
				}
			}
		}

		if len(batch) < sweepBatchSize || progress == 0 {
			break
		}
	}

	if changed > 0 {
		log.Info().Int("changed", changed).Msg("sweep finished")
	}

	return changed, errors.Join(errs...)
}

func (s *retentionService) isLocal(address string) bool {
	a, err := models.ParseAddress(address)
	return err == nil && a.Domain == s.domain
}
