// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"strconv"

	"github.com/MKhiriev/go-file-courier/internal/config"
	"github.com/MKhiriev/go-file-courier/internal/logger"
	"github.com/MKhiriev/go-file-courier/internal/utils"
	"github.com/MKhiriev/go-file-courier/models"
	"github.com/go-resty/resty/v2"
)

// ServerResolver finds the "host[:port]" of a domain's federation server.
type ServerResolver interface {
	ResolveServerDomain(ctx context.Context, domain string) (string, error)
}

type httpPeerAdapter struct {
	client    *utils.HTTPClient
	resolver  ServerResolver
	scheme    string
	ownDomain string
	logger    *logger.Logger
}

// NewHTTPPeerAdapter constructs a [PeerAdapter] that identifies itself as
// ownDomain.
func NewHTTPPeerAdapter(cfg config.Federation, ownDomain string, resolver ServerResolver, logger *logger.Logger) PeerAdapter {
	client := utils.NewHTTPClient(cfg.RequestTimeout)
	client.SetHeader(FederationDomainHeader, ownDomain)

	scheme := cfg.Scheme
	if scheme == "" {
		scheme = "https"
	}

	return &httpPeerAdapter{
		client:    client,
		resolver:  resolver,
		scheme:    scheme,
		ownDomain: ownDomain,
		logger:    logger,
	}
}

func (p *httpPeerAdapter) request(ctx context.Context, domain string) (*resty.Request, string, error) {
	host, err := p.resolver.ResolveServerDomain(ctx, domain)
	if err != nil {
		return nil, "", err
	}
	return p.client.R().SetContext(ctx), p.scheme + "://" + host, nil
}

// Announce delivers transfer metadata and the wrapped key to the
// receiver's server.
func (p *httpPeerAdapter) Announce(ctx context.Context, domain string, announcement models.Announcement) error {
	req, base, err := p.request(ctx, domain)
	if err != nil {
		return err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(announcement).
		Post(base + "/federation/transfers")
	if err = mapPeerError(resp, err); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*httpPeerAdapter.Announce").
			Str("domain", domain).
			Str("transfer_id", announcement.ID).
			Msg("announcement failed")
		return fmt.Errorf("announce transfer %s: %w", announcement.ID, err)
	}

	return nil
}

func (p *httpPeerAdapter) ListChunks(ctx context.Context, domain, transferID string) ([]uint32, error) {
	req, base, err := p.request(ctx, domain)
	if err != nil {
		return nil, err
	}

	var list models.ChunkListResponse
	resp, err := req.
		SetPathParam("id", transferID).
		SetResult(&list).
		Get(base + "/federation/transfers/{id}/chunks")
	if err = mapPeerError(resp, err); err != nil {
		return nil, fmt.Errorf("list remote chunks of %s: %w", transferID, err)
	}

	return list.Indices, nil
}

func (p *httpPeerAdapter) FetchChunk(ctx context.Context, domain, transferID string, index uint32) (models.EncryptedChunk, error) {
	req, base, err := p.request(ctx, domain)
	if err != nil {
		return models.EncryptedChunk{}, err
	}

	var chunk models.EncryptedChunk
	resp, err := req.
		SetPathParam("id", transferID).
		SetPathParam("index", strconv.FormatUint(uint64(index), 10)).
		SetResult(&chunk).
		Get(base + "/federation/transfers/{id}/chunks/{index}")
	if err = mapPeerError(resp, err); err != nil {
		return models.EncryptedChunk{}, fmt.Errorf("fetch remote chunk %d of %s: %w", index, transferID, err)
	}
	if chunk.Index != index {
		return models.EncryptedChunk{}, fmt.Errorf("%w: asked for chunk %d, got %d", ErrBadGateway, index, chunk.Index)
	}

	return chunk, nil
}

func (p *httpPeerAdapter) NotifyStatus(ctx context.Context, domain, transferID string, status models.TransferStatus) error {
	req, base, err := p.request(ctx, domain)
	if err != nil {
		return err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", transferID).
		SetBody(models.StatusNotification{Status: status}).
		Post(base + "/federation/transfers/{id}/status")
	if err = mapPeerError(resp, err); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*httpPeerAdapter.NotifyStatus").
			Str("domain", domain).
			Str("transfer_id", transferID).
			Str("status", string(status)).
			Msg("status notification failed")
		return fmt.Errorf("notify %s of %s: %w", status, transferID, err)
	}

	return nil
}

func (p *httpPeerAdapter) FetchPublicKey(ctx context.Context, address models.Address) (models.PublicKeyResponse, error) {
	req, base, err := p.request(ctx, address.Domain)
	if err != nil {
		return models.PublicKeyResponse{}, err
	}

	var key models.PublicKeyResponse
	resp, err := req.
		SetPathParam("login", address.Login).
		SetResult(&key).
		Get(base + "/federation/keys/{login}")
	if err = mapPeerError(resp, err); err != nil {
		return models.PublicKeyResponse{}, fmt.Errorf("fetch public key of %s: %w", address, err)
	}

	return key, nil
}
