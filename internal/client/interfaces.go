// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"io"

	"github.com/MKhiriev/go-file-courier/models"
)

// Courier is the client application: account and key management plus the
// send and receive pipelines.
type Courier interface {
	// Register creates the account, generates a key pair and uploads the
	// public key with the private key sealed under masterSecret.
	Register(ctx context.Context, creds models.Credentials, masterSecret string) (*Session, error)
	// Login authenticates and unlocks the private key with masterSecret.
	Login(ctx context.Context, creds models.Credentials, masterSecret string) (*Session, error)
	// Resume unlocks the login saved by a previous Register or Login.
	Resume(ctx context.Context, masterSecret string) (*Session, error)
	Logout(ctx context.Context) error
	// RedoKeys replaces the key pair. The server expires every outstanding
	// transfer of the user. s is closed and the returned session replaces it.
	RedoKeys(ctx context.Context, s *Session, masterSecret string) (*Session, error)

	// Send encrypts req.Body for the recipient and uploads it.
	Send(ctx context.Context, s *Session, req SendRequest) (models.Transfer, error)
	// Receive accepts the transfer if needed, fetches and decrypts every
	// chunk, writes the file to w and reports the outcome to the server.
	Receive(ctx context.Context, s *Session, transferID string, w io.Writer) (models.Transfer, error)
	Refuse(ctx context.Context, s *Session, transferID string) error
	Delete(ctx context.Context, s *Session, transferID string) error
	List(ctx context.Context, s *Session, box models.Mailbox) ([]models.Transfer, error)

	// Fingerprint returns the current key of address and its pin, if any.
	Fingerprint(ctx context.Context, s *Session, address string) (models.PublicKeyResponse, *models.KeyPin, error)
	// Pin trusts the key address currently has, replacing an older pin.
	Pin(ctx context.Context, s *Session, address string) (models.KeyPin, error)

	Version(ctx context.Context) (models.VersionResponse, error)
}

// SendRequest describes one file to send.
type SendRequest struct {
	Recipient string
	Filename  string
	Subject   string
	// Size is the exact plaintext length of Body.
	Size int64
	Body io.Reader
}
