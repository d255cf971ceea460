// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the business logic of the file-courier server: the
// transfer lifecycle state machine, the federation protocol, accounts and
// keys, and the retention sweeps.
//
// Every status change of a transfer goes through a compare-and-set in the
// metadata store. The caller that wins the swap runs the side effects (chunk
// deletion, audit log entry, peer notification); a caller that loses to an
// identical change gets the current record back without side effects.
package service

import (
	"context"

	"github.com/MKhiriev/go-file-courier/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

type AuthService interface {
	RegisterUser(ctx context.Context, creds models.Credentials) (models.User, error)
	Login(ctx context.Context, creds models.Credentials) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	// Address returns the federated address of a local user.
	Address(user models.User) models.Address
}

// KeyService manages the key material users register with their server.
type KeyService interface {
	// SetKeys stores the user's public key and protected private key.
	// Replacing existing keys expires every outstanding transfer of the user.
	SetKeys(ctx context.Context, userID int64, req models.KeysRequest) error
	GetOwnKeys(ctx context.Context, userID int64) (models.OwnKeysResponse, error)

	// GetPublicKey looks up a local user or asks the user's server.
	GetPublicKey(ctx context.Context, address string) (models.PublicKeyResponse, error)
	// GetLocalPublicKey looks up a user hosted on this server by login.
	GetLocalPublicKey(ctx context.Context, login string) (models.PublicKeyResponse, error)
}

// TransferService is the client-facing half of the transfer lifecycle.
type TransferService interface {
	CreateTransfer(ctx context.Context, userID int64, req models.CreateTransferRequest) (models.Transfer, error)
	UploadChunk(ctx context.Context, userID int64, transferID string, chunk models.EncryptedChunk) (models.Transfer, error)
	ListChunkIndices(ctx context.Context, userID int64, transferID string) ([]uint32, error)
	GetChunk(ctx context.Context, userID int64, transferID string, index uint32) (models.EncryptedChunk, error)

	GetTransfer(ctx context.Context, userID int64, transferID string) (models.Transfer, error)
	ListInbox(ctx context.Context, userID int64) ([]models.Transfer, error)
	ListOutbox(ctx context.Context, userID int64) ([]models.Transfer, error)

	AcceptTransfer(ctx context.Context, userID int64, transferID string) (models.Transfer, error)
	RefuseTransfer(ctx context.Context, userID int64, transferID string) (models.Transfer, error)
	// ConfirmRetrieved records the receiver's report. A failed report is
	// logged and leaves the status unchanged.
	ConfirmRetrieved(ctx context.Context, userID int64, transferID string, success bool) (models.Transfer, error)
	DeleteTransfer(ctx context.Context, userID int64, transferID string) (models.Transfer, error)

	// ExpireUserTransfers expires every outstanding transfer where address is
	// the sender or the receiver and returns how many changed.
	ExpireUserTransfers(ctx context.Context, address string) (int, error)
}

// FederationService implements both halves of the server-to-server
// protocol. Inbound methods take the peer domain established by origin
// authentication.
type FederationService interface {
	// AnnounceTransfer offers an UPLOADED transfer to the receiver's server
	// and moves it to SENT once acknowledged.
	AnnounceTransfer(ctx context.Context, transfer models.Transfer) (models.Transfer, error)
	// FetchRemoteTransfer copies every chunk of a transfer from the sender's
	// server into the local chunk store and returns the chunk count. On
	// failure no chunk of the transfer is left behind.
	FetchRemoteTransfer(ctx context.Context, transfer models.Transfer) (int, error)
	// AcceptRemoteTransfer fetches the chunks of a transfer from another
	// domain, moves it to ACCEPTED and tells the sender's server.
	AcceptRemoteTransfer(ctx context.Context, transfer models.Transfer) (models.Transfer, error)
	// NotifyStatus tells the server on the other side of the transfer.
	NotifyStatus(ctx context.Context, transfer models.Transfer, status models.TransferStatus) error

	ReceiveAnnouncement(ctx context.Context, peerDomain string, announcement models.Announcement) (models.Transfer, error)
	ListChunksForPeer(ctx context.Context, peerDomain, transferID string) ([]uint32, error)
	GetChunkForPeer(ctx context.Context, peerDomain, transferID string, index uint32) (models.EncryptedChunk, error)
	ReceiveStatus(ctx context.Context, peerDomain, transferID string, status models.TransferStatus) (models.Transfer, error)
}

// RetentionService runs the periodic sweeps. Every sweep is idempotent and
// returns the number of transfers or log rows it changed.
type RetentionService interface {
	ExpireStaleCreated(ctx context.Context) (int, error)
	ExpireRetained(ctx context.Context) (int, error)
	PurgeOldLogs(ctx context.Context) (int, error)
	RetryAnnouncements(ctx context.Context) (int, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.VersionResponse
}
