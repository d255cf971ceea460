// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"github.com/MKhiriev/go-file-courier/internal/config"
	"github.com/MKhiriev/go-file-courier/internal/handler/http"
	"github.com/MKhiriev/go-file-courier/internal/logger"
	"github.com/MKhiriev/go-file-courier/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds the transport handlers. The HTTP handler serves both
// the client API and the federation API, so a listening address is
// required.
func NewHandlers(services *service.Services, peers http.PeerAuthenticator, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}
	if peers == nil {
		return nil, errNoPeerAuthenticator
	}

	return &Handlers{
		HTTP: http.NewHandler(services, peers, cfg, logger),
	}, nil
}
