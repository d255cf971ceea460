// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-file-courier/internal/logger"
	"github.com/MKhiriev/go-file-courier/internal/store"
	"github.com/MKhiriev/go-file-courier/models"
)

// Event is something that happened to a transfer or a user.
type Event struct {
	Kind       models.EventKind
	TransferID string
	// Actor is the address that caused the event, empty for sweeps.
	Actor string
	At    time.Time
}

// EventListener handles a published event. Listeners run synchronously in
// publish order and must not block.
type EventListener func(ctx context.Context, event Event)

// EventBus fans lifecycle events out to in-process listeners.
type EventBus struct {
	mu        sync.RWMutex
	listeners map[models.EventKind][]EventListener
	all       []EventListener
	now       func() time.Time
}

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[models.EventKind][]EventListener),
		now:       time.Now,
	}
}

// Subscribe registers l for the given kinds, or for every kind when none
// are given.
func (b *EventBus) Subscribe(l EventListener, kinds ...models.EventKind) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(kinds) == 0 {
		b.all = append(b.all, l)
		return
	}
	for _, kind := range kinds {
		b.listeners[kind] = append(b.listeners[kind], l)
	}
}

func (b *EventBus) Publish(ctx context.Context, event Event) {
	if event.At.IsZero() {
		event.At = b.now()
	}

	b.mu.RLock()
	listeners := make([]EventListener, 0, len(b.all)+len(b.listeners[event.Kind]))
	listeners = append(listeners, b.all...)
	listeners = append(listeners, b.listeners[event.Kind]...)
	b.mu.RUnlock()

	for _, l := range listeners {
		l(ctx, event)
	}
}

// NewAuditLogListener persists every transfer event to the audit log.
// Failures are logged; the lifecycle change they describe has already been
// committed.
func NewAuditLogListener(logs store.TransferLogRepository) EventListener {
	return func(ctx context.Context, event Event) {
		if event.TransferID == "" {
			return
		}

		err := logs.AppendLog(ctx, models.TransferLog{
			TransferID: event.TransferID,
			Kind:       event.Kind,
			Actor:      event.Actor,
			CreatedAt:  event.At,
		})
		if err != nil {
			logger.FromContext(ctx).Err(err).
				Str("func", "auditLogListener").
				Str("transfer_id", event.TransferID).
				Str("kind", string(event.Kind)).
				Msg("error appending transfer log")
		}
	}
}
