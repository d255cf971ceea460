// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"

	"github.com/MKhiriev/go-file-courier/internal/config"
	"github.com/MKhiriev/go-file-courier/internal/logger"
	"github.com/MKhiriev/go-file-courier/internal/service"
)

// Workers starts and stops a set of jobs together.
type Workers struct {
	workers []Worker
}

// NewRetentionWorkers schedules every sweep of the retention service on its
// configured interval.
func NewRetentionWorkers(retention service.RetentionService, cfg config.Workers, logger *logger.Logger) *Workers {
	return &Workers{workers: []Worker{
		NewTickerJob("expire-stale-created", cfg.StaleCreatedInterval, retention.ExpireStaleCreated, logger),
		NewTickerJob("expire-retained", cfg.RetainedInterval, retention.ExpireRetained, logger),
		NewTickerJob("purge-old-logs", cfg.LogPurgeInterval, retention.PurgeOldLogs, logger),
		NewTickerJob("retry-announcements", cfg.AnnounceRetryInterval, retention.RetryAnnouncements, logger),
	}}
}

func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

// Stop stops every job and waits for runs in progress.
func (w *Workers) Stop() {
	for _, worker := range w.workers {
		worker.Stop()
	}
}
