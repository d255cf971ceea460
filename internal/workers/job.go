// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-file-courier/internal/logger"
)

// defaultInterval is used when a job is configured with a non-positive
// interval.
const defaultInterval = time.Hour

// RunFunc is one pass of a job. It reports how many records it changed.
type RunFunc func(ctx context.Context) (int, error)

type tickerJob struct {
	name     string
	interval time.Duration
	run      RunFunc
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTickerJob creates a job that calls run every interval. The job is idle
// until Start is called.
func NewTickerJob(name string, interval time.Duration, run RunFunc, logger *logger.Logger) Worker {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &tickerJob{name: name, interval: interval, run: run, logger: logger}
}

// Start stops any previous run of the job, then launches a goroutine that
// calls run on every tick until ctx is cancelled or Stop is called.
func (j *tickerJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.runOnce(jobCtx)
			}
		}
	}()
}

func (j *tickerJob) runOnce(ctx context.Context) {
	log := j.logger.With().Str("job", j.name).Logger()
	started := time.Now()

	changed, err := j.run(log.WithContext(ctx))
	if err != nil {
		log.Err(err).Int("changed", changed).Msg("job run failed")
		return
	}
	log.Debug().
		Int("changed", changed).
		Dur("took", time.Since(started)).
		Msg("job run finished")
}

// Stop cancels the job and blocks until its goroutine has exited.
func (j *tickerJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
