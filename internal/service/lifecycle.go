// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-file-courier/internal/logger"
	"github.com/MKhiriev/go-file-courier/internal/store"
	"github.com/MKhiriev/go-file-courier/models"
)

// transition is one edge of the transfer state machine.
type transition struct {
	from  []models.TransferStatus
	to    models.TransferStatus
	event models.EventKind
	// dropChunks removes the stored chunks once the change is committed.
	dropChunks bool
}

var outstandingStatuses = []models.TransferStatus{
	models.StatusCreated,
	models.StatusUploaded,
	models.StatusSent,
	models.StatusAccepted,
}

var (
	transitionUploaded = transition{
		from:  []models.TransferStatus{models.StatusCreated},
		to:    models.StatusUploaded,
		event: models.EventTransferUploaded,
	}
	transitionSent = transition{
		from:  []models.TransferStatus{models.StatusUploaded},
		to:    models.StatusSent,
		event: models.EventTransferSent,
	}
	transitionAccepted = transition{
		from:  []models.TransferStatus{models.StatusUploaded, models.StatusSent},
		to:    models.StatusAccepted,
		event: models.EventTransferAccepted,
	}
	transitionRetrieved = transition{
		from:  []models.TransferStatus{models.StatusAccepted},
		to:    models.StatusRetrieved,
		event: models.EventTransferRetrieved,
	}
	transitionRefused = transition{
		from:       []models.TransferStatus{models.StatusUploaded, models.StatusSent, models.StatusAccepted},
		to:         models.StatusRefused,
		event:      models.EventTransferRefused,
		dropChunks: true,
	}
	transitionExpiredCreated = transition{
		from:       []models.TransferStatus{models.StatusCreated},
		to:         models.StatusExpired,
		event:      models.EventTransferExpired,
		dropChunks: true,
	}
	transitionExpiredRetained = transition{
		from:       []models.TransferStatus{models.StatusUploaded, models.StatusSent, models.StatusAccepted, models.StatusRetrieved},
		to:         models.StatusExpired,
		event:      models.EventTransferExpired,
		dropChunks: true,
	}
	transitionExpiredOutstanding = transition{
		from:       outstandingStatuses,
		to:         models.StatusExpired,
		event:      models.EventTransferExpired,
		dropChunks: true,
	}
	transitionDeleted = transition{
		from:       []models.TransferStatus{models.StatusCreated, models.StatusUploaded, models.StatusSent, models.StatusAccepted, models.StatusRetrieved},
		to:         models.StatusDeleted,
		event:      models.EventTransferDeleted,
		dropChunks: true,
	}
	transitionPurged = transition{
		from:       []models.TransferStatus{models.StatusExpired, models.StatusRefused},
		to:         models.StatusDeleted,
		event:      models.EventTransferDeleted,
		dropChunks: true,
	}
)

// Lifecycle applies state machine transitions to stored transfers. It is
// shared by the client-facing, federation and retention services.
type Lifecycle struct {
	transfers store.TransferRepository
	chunks    store.ChunkStore
	bus       *EventBus
}

func NewLifecycle(transfers store.TransferRepository, chunks store.ChunkStore, bus *EventBus) *Lifecycle {
	return &Lifecycle{
		transfers: transfers,
		chunks:    chunks,
		bus:       bus,
	}
}

// advance moves the transfer along tr. won reports whether this call made
// the change; side effects run only when it did. Losing to an identical
// change returns the current record and a nil error, losing to anything else
// returns ErrInvalidTransition.
func (l *Lifecycle) advance(ctx context.Context, id string, tr transition, actor string, chunkCount *int) (models.Transfer, bool, error) {
	log := logger.FromContext(ctx)

	won, err := l.transfers.UpdateStatus(ctx, store.StatusChange{
		ID:         id,
		From:       tr.from,
		To:         tr.to,
		ChunkCount: chunkCount,
	})
	if err != nil {
		return models.Transfer{}, false, fmt.Errorf("error moving transfer to %s: %w", tr.to, err)
	}

	if won {
		if tr.dropChunks {
			if err := l.chunks.DeleteChunks(ctx, id); err != nil {
				// the status change is committed; retention retries deletion
				log.Err(err).Str("func", "*Lifecycle.advance").Str("transfer_id", id).Msg("error deleting chunks")
			}
		}
		l.bus.Publish(ctx, Event{Kind: tr.event, TransferID: id, Actor: actor})
	}

	current, err := l.transfers.GetTransfer(ctx, id)
	if err != nil {
		return models.Transfer{}, won, fmt.Errorf("error reading transfer after status change: %w", err)
	}

	if !won && current.Status != tr.to {
		return current, false, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current.Status, tr.to)
	}

	return current, won, nil
}

// record publishes an event that comes without a status change.
func (l *Lifecycle) record(ctx context.Context, kind models.EventKind, id, actor string) {
	l.bus.Publish(ctx, Event{Kind: kind, TransferID: id, Actor: actor})
}

// getTransfer maps the store's not-found error to the service one.
func (l *Lifecycle) getTransfer(ctx context.Context, id string) (models.Transfer, error) {
	t, err := l.transfers.GetTransfer(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return models.Transfer{}, ErrTransferNotFound
		}
		return models.Transfer{}, fmt.Errorf("error reading transfer: %w", err)
	}
	return t, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrTransferNotFound)
}
