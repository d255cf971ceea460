// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-file-courier/internal/config"
	"github.com/MKhiriev/go-file-courier/internal/logger"
	"github.com/MKhiriev/go-file-courier/internal/mock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// spyWorker records Start and Stop calls.
type spyWorker struct {
	starts atomic.Int32
	stops  atomic.Int32
}

func (s *spyWorker) Start(context.Context) { s.starts.Add(1) }
func (s *spyWorker) Stop()                 { s.stops.Add(1) }

func TestWorkers_StartStop_AllWorkersAreCalled(t *testing.T) {
	w1, w2, w3 := &spyWorker{}, &spyWorker{}, &spyWorker{}
	ws := &Workers{workers: []Worker{w1, w2, w3}}

	ws.Start(context.Background())
	ws.Stop()

	for i, w := range []*spyWorker{w1, w2, w3} {
		assert.Equal(t, int32(1), w.starts.Load(), "worker[%d] starts", i)
		assert.Equal(t, int32(1), w.stops.Load(), "worker[%d] stops", i)
	}
}

func TestWorkers_Empty(t *testing.T) {
	ws := &Workers{}

	assert.NotPanics(t, func() {
		ws.Start(context.Background())
		ws.Stop()
	})
}

func TestTickerJob_RunsOnEveryTick(t *testing.T) {
	var calls atomic.Int64
	job := NewTickerJob("test", 10*time.Millisecond, func(context.Context) (int, error) {
		calls.Add(1)
		return 0, nil
	}, logger.Nop())

	job.Start(context.Background())
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	assert.GreaterOrEqual(t, calls.Load(), int64(3))
}

func TestTickerJob_ErrorsDoNotStopTheJob(t *testing.T) {
	var calls atomic.Int64
	job := NewTickerJob("failing", 10*time.Millisecond, func(context.Context) (int, error) {
		calls.Add(1)
		return 0, errors.New("db down")
	}, logger.Nop())

	job.Start(context.Background())
	time.Sleep(45 * time.Millisecond)
	job.Stop()

	assert.GreaterOrEqual(t, calls.Load(), int64(2))
}

func TestTickerJob_StopStopsGoroutine(t *testing.T) {
	var calls atomic.Int64
	job := NewTickerJob("test", 10*time.Millisecond, func(context.Context) (int, error) {
		calls.Add(1)
		return 1, nil
	}, logger.Nop())

	job.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	afterStop := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, afterStop, calls.Load())
}

func TestTickerJob_StopBeforeStart(t *testing.T) {
	job := NewTickerJob("idle", time.Hour, func(context.Context) (int, error) { return 0, nil }, logger.Nop())
	assert.NotPanics(t, job.Stop)
}

func TestTickerJob_ContextCancelStopsJob(t *testing.T) {
	var calls atomic.Int64
	job := NewTickerJob("test", 10*time.Millisecond, func(context.Context) (int, error) {
		calls.Add(1)
		return 0, nil
	}, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	job.Start(ctx)
	cancel()
	job.Stop()

	afterCancel := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, afterCancel, calls.Load())
}

func TestNewRetentionWorkers_SchedulesEverySweep(t *testing.T) {
	ctrl := gomock.NewController(t)
	retention := mock.NewMockRetentionService(ctrl)

	retention.EXPECT().ExpireStaleCreated(gomock.Any()).Return(0, nil).MinTimes(1)
	retention.EXPECT().ExpireRetained(gomock.Any()).Return(0, nil).MinTimes(1)
	retention.EXPECT().PurgeOldLogs(gomock.Any()).Return(0, nil).MinTimes(1)
	retention.EXPECT().RetryAnnouncements(gomock.Any()).Return(0, nil).MinTimes(1)

	ws := NewRetentionWorkers(retention, config.Workers{
		StaleCreatedInterval:  5 * time.Millisecond,
		RetainedInterval:      5 * time.Millisecond,
		LogPurgeInterval:      5 * time.Millisecond,
		AnnounceRetryInterval: 5 * time.Millisecond,
	}, logger.Nop())

	ws.Start(context.Background())
	time.Sleep(40 * time.Millisecond)
	ws.Stop()
}
