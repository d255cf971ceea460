// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/netip"
	"time"

	"github.com/MKhiriev/go-file-courier/internal/config"
	"github.com/MKhiriev/go-file-courier/internal/logger"
	"github.com/MKhiriev/go-file-courier/internal/service"
)

// PeerAuthenticator checks that a request claiming to come from a
// federation domain originates from that domain's server.
type PeerAuthenticator interface {
	Authenticate(ctx context.Context, claimedDomain string, originIP netip.Addr) error
}

type Handler struct {
	services *service.Services
	peers    PeerAuthenticator

	// trustForwardedFor takes the origin from X-Forwarded-For, read from
	// the right past any trustedProxies.
	trustForwardedFor bool
	trustedProxies    []netip.Prefix
	requestTimeout    time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, peers PeerAuthenticator, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	proxies, err := cfg.Federation.ProxyPrefixes()
	if err != nil {
		logger.Warn().Err(err).Msg("ignoring trusted proxies")
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services:          services,
		peers:             peers,
		trustForwardedFor: cfg.Federation.TrustForwardedFor,
		trustedProxies:    proxies,
		requestTimeout:    cfg.Server.RequestTimeout,
		logger:            logger,
	}
}
