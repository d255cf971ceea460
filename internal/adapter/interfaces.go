// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound HTTP transports of file-courier.
//
// [ServerAdapter] is used by the CLI to talk to its home server.
// [PeerAdapter] is used by a server to talk to the servers of other
// federation domains; every request carries the X-Federation-Domain header
// that the receiving side verifies against the request origin.
//
// Error values defined in errors.go are mapped from HTTP status codes so that
// callers can use [errors.Is] (e.g. [ErrConflict] for 409, [ErrUnauthorized]
// for 401, [ErrPeerUnavailable] for unreachable peers).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-file-courier/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// FederationDomainHeader names the domain a peer request claims to come from.
const FederationDomainHeader = "X-Federation-Domain"

// ServerAdapter is the CLI's view of its home server.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)
	Token() string

	Register(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)
	Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)
	Version(ctx context.Context) (models.VersionResponse, error)

	PutKeys(ctx context.Context, req models.KeysRequest) error
	GetOwnKeys(ctx context.Context) (models.OwnKeysResponse, error)
	GetPublicKey(ctx context.Context, address string) (models.PublicKeyResponse, error)

	CreateTransfer(ctx context.Context, req models.CreateTransferRequest) (models.Transfer, error)
	UploadChunk(ctx context.Context, transferID string, chunk models.EncryptedChunk) error
	ListChunks(ctx context.Context, transferID string) ([]uint32, error)
	GetChunk(ctx context.Context, transferID string, index uint32) (models.EncryptedChunk, error)
	GetTransfer(ctx context.Context, transferID string) (models.Transfer, error)
	ListTransfers(ctx context.Context, box models.Mailbox) ([]models.Transfer, error)
	DeleteTransfer(ctx context.Context, transferID string) error

	Accept(ctx context.Context, transferID string) (models.Transfer, error)
	Refuse(ctx context.Context, transferID string) error
	ConfirmRetrieved(ctx context.Context, transferID string, success bool) error
}

// PeerAdapter performs the outbound half of the federation protocol. Every
// method takes the peer's federation domain and resolves its server.
type PeerAdapter interface {
	Announce(ctx context.Context, domain string, announcement models.Announcement) error
	ListChunks(ctx context.Context, domain, transferID string) ([]uint32, error)
	FetchChunk(ctx context.Context, domain, transferID string, index uint32) (models.EncryptedChunk, error)
	NotifyStatus(ctx context.Context, domain, transferID string, status models.TransferStatus) error
	FetchPublicKey(ctx context.Context, address models.Address) (models.PublicKeyResponse, error)
}
