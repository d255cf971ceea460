// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/MKhiriev/go-file-courier/internal/config"
	"github.com/MKhiriev/go-file-courier/internal/handler"
	"github.com/MKhiriev/go-file-courier/internal/logger"
)

const defaultShutdownTimeout = 15 * time.Second

type server struct {
	httpServer *httpServer
	background Background
	// waitServices blocks until asynchronous service work has finished.
	waitServices func()

	shutdownTimeout time.Duration
	listen          func(network, address string) (net.Listener, error)

	shutdownOnce sync.Once
	shutdownErr  error

	logger *logger.Logger
}

// NewServer builds the HTTP server around handlers. background runs for the
// lifetime of the listener; waitServices, when not nil, is called last during
// shutdown.
func NewServer(handlers *handler.Handlers, background Background, waitServices func(), cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoHTTPHandler
	}

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &server{
		httpServer:      newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		background:      background,
		waitServices:    waitServices,
		shutdownTimeout: timeout,
		listen:          net.Listen,
		logger:          logger,
	}, nil
}

// RunServer listens, starts the background workers and blocks until ctx is
// done or serving fails. It always shuts down before returning.
func (s *server) RunServer(ctx context.Context) error {
	ln, err := s.listen("tcp", s.httpServer.server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.server.Addr, err)
	}

	workersCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	if s.background != nil {
		s.background.Start(workersCtx)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.serve(ln)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("shutdown requested")
	case runErr = <-serveErr:
		if runErr != nil {
			s.logger.Err(runErr).Msg("HTTP server stopped")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, err)
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return runErr
}

// Shutdown stops accepting requests, waits for in-flight ones, then stops
// the workers and waits for background service work. It runs once.
func (s *server) Shutdown(ctx context.Context) error {
	s.shutdownOnce.Do(func() {
		s.shutdownErr = s.httpServer.shutdown(ctx)

		if s.background != nil {
			s.background.Stop()
		}
		if s.waitServices != nil {
			s.waitServices()
		}
	})
	return s.shutdownErr
}
