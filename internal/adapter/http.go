// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-file-courier/internal/config"
	"github.com/MKhiriev/go-file-courier/internal/logger"
	"github.com/MKhiriev/go-file-courier/internal/utils"
	"github.com/MKhiriev/go-file-courier/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	token  string
	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises the base URL from adapterCfg.HTTPAddress
// (adding "http://" when no scheme is given) and applies the request timeout.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(adapterCfg.RequestTimeout)
	client.SetBaseURL(baseURL)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	return h.token
}

// Register creates the account and stores the returned token.
func (h *httpServerAdapter) Register(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/user/register", creds)
}

// Login stores the returned token.
func (h *httpServerAdapter) Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/user/login", creds)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, path string, creds models.Credentials) (models.AuthResponse, error) {
	var auth models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		SetResult(&auth).
		Post(path)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	if auth.Token == "" {
		if auth.Token, err = utils.ParseBearerToken(resp.Header().Get("Authorization")); err != nil {
			return models.AuthResponse{}, fmt.Errorf("parse bearer token: %w", err)
		}
	}

	h.SetToken(auth.Token)
	return auth, nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (models.VersionResponse, error) {
	var v models.VersionResponse
	resp, err := h.client.R().SetContext(ctx).SetResult(&v).Get("/api/version")
	if err != nil {
		return models.VersionResponse{}, fmt.Errorf("version request: %w", err)
	}
	return v, mapHTTPError(resp)
}

func (h *httpServerAdapter) PutKeys(ctx context.Context, req models.KeysRequest) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Put("/api/keys")
	if err != nil {
		return fmt.Errorf("put keys request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) GetOwnKeys(ctx context.Context) (models.OwnKeysResponse, error) {
	var keys models.OwnKeysResponse
	resp, err := h.authedRequest(ctx).SetResult(&keys).Get("/api/keys")
	if err != nil {
		return models.OwnKeysResponse{}, fmt.Errorf("get keys request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.OwnKeysResponse{}, err
	}
	return keys, nil
}

func (h *httpServerAdapter) GetPublicKey(ctx context.Context, address string) (models.PublicKeyResponse, error) {
	var key models.PublicKeyResponse
	resp, err := h.authedRequest(ctx).
		SetPathParam("address", address).
		SetResult(&key).
		Get("/api/keys/{address}")
	if err != nil {
		return models.PublicKeyResponse{}, fmt.Errorf("get public key request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PublicKeyResponse{}, err
	}
	return key, nil
}

func (h *httpServerAdapter) CreateTransfer(ctx context.Context, req models.CreateTransferRequest) (models.Transfer, error) {
	var transfer models.Transfer
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&transfer).
		Post("/api/transfers")
	if err != nil {
		return models.Transfer{}, fmt.Errorf("create transfer request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Transfer{}, err
	}
	return transfer, nil
}

func (h *httpServerAdapter) UploadChunk(ctx context.Context, transferID string, chunk models.EncryptedChunk) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", transferID).
		SetBody(chunk).
		Post("/api/transfers/{id}/chunks")
	if err != nil {
		return fmt.Errorf("upload chunk %d request: %w", chunk.Index, err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) ListChunks(ctx context.Context, transferID string) ([]uint32, error) {
	var list models.ChunkListResponse
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", transferID).
		SetResult(&list).
		Get("/api/transfers/{id}/chunks")
	if err != nil {
		return nil, fmt.Errorf("list chunks request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return list.Indices, nil
}

func (h *httpServerAdapter) GetChunk(ctx context.Context, transferID string, index uint32) (models.EncryptedChunk, error) {
	var chunk models.EncryptedChunk
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", transferID).
		SetPathParam("index", strconv.FormatUint(uint64(index), 10)).
		SetResult(&chunk).
		Get("/api/transfers/{id}/chunks/{index}")
	if err != nil {
		return models.EncryptedChunk{}, fmt.Errorf("get chunk %d request: %w", index, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.EncryptedChunk{}, err
	}
	return chunk, nil
}

func (h *httpServerAdapter) GetTransfer(ctx context.Context, transferID string) (models.Transfer, error) {
	var transfer models.Transfer
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", transferID).
		SetResult(&transfer).
		Get("/api/transfers/{id}")
	if err != nil {
		return models.Transfer{}, fmt.Errorf("get transfer request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Transfer{}, err
	}
	return transfer, nil
}

func (h *httpServerAdapter) ListTransfers(ctx context.Context, box models.Mailbox) ([]models.Transfer, error) {
	var transfers []models.Transfer
	resp, err := h.authedRequest(ctx).
		SetQueryParam("box", string(box)).
		SetResult(&transfers).
		Get("/api/transfers")
	if err != nil {
		return nil, fmt.Errorf("list transfers request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return transfers, nil
}

func (h *httpServerAdapter) DeleteTransfer(ctx context.Context, transferID string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", transferID).
		Delete("/api/transfers/{id}")
	if err != nil {
		return fmt.Errorf("delete transfer request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Accept(ctx context.Context, transferID string) (models.Transfer, error) {
	var transfer models.Transfer
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", transferID).
		SetResult(&transfer).
		Post("/api/transfers/{id}/accept")
	if err != nil {
		return models.Transfer{}, fmt.Errorf("accept request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Transfer{}, err
	}
	return transfer, nil
}

func (h *httpServerAdapter) Refuse(ctx context.Context, transferID string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", transferID).
		Post("/api/transfers/{id}/refuse")
	if err != nil {
		return fmt.Errorf("refuse request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) ConfirmRetrieved(ctx context.Context, transferID string, success bool) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", transferID).
		SetBody(models.RetrievedRequest{Success: success}).
		Post("/api/transfers/{id}/retrieved")
	if err != nil {
		return fmt.Errorf("retrieved request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
