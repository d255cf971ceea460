// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// TransferStatus is the lifecycle state of a Transfer.
type TransferStatus string

const (
	// StatusCreated means metadata and the wrapped key are stored and chunks
	// are being uploaded.
	StatusCreated TransferStatus = "CREATED"
	// StatusUploaded means every chunk is persisted and contiguous.
	StatusUploaded TransferStatus = "UPLOADED"
	// StatusSent means the receiver's server acknowledged the announcement.
	// Only reachable when the receiver is remote.
	StatusSent TransferStatus = "SENT"
	// StatusAccepted means the receiver agreed to take the file.
	StatusAccepted TransferStatus = "ACCEPTED"
	// StatusRetrieved means the receiver fetched and decrypted every chunk.
	StatusRetrieved TransferStatus = "RETRIEVED"
	// StatusRefused is terminal: the receiver declined.
	StatusRefused TransferStatus = "REFUSED"
	// StatusExpired is terminal: retention removed the chunks.
	StatusExpired TransferStatus = "EXPIRED"
	// StatusDeleted is terminal: the record is kept only as a tombstone.
	StatusDeleted TransferStatus = "DELETED"
)

// IsTerminal reports whether no further transition may leave s, except the
// bookkeeping moves of retention (EXPIRED/REFUSED to DELETED).
func (s TransferStatus) IsTerminal() bool {
	switch s {
	case StatusRefused, StatusExpired, StatusDeleted:
		return true
	}
	return false
}

// TransferOrigin tells whether a transfer record was created by a local
// sender or is the shadow of an announcement from another server.
type TransferOrigin string

const (
	OriginLocal  TransferOrigin = "local"
	OriginRemote TransferOrigin = "remote"
)

// Transfer is the metadata of one file sent from Sender to Receiver.
//
// WrappedKey is written exactly once, at creation. Status changes only
// through lifecycle transitions.
type Transfer struct {
	ID       string `json:"id"`
	Sender   string `json:"senderAddress"`
	Receiver string `json:"recipientAddress"`

	// SenderID and ReceiverID are set when the party is a local account.
	SenderID   *int64 `json:"-"`
	ReceiverID *int64 `json:"-"`

	Origin     TransferOrigin `json:"origin"`
	Filename   string         `json:"filename"`
	Subject    string         `json:"subject"`
	Size       int64          `json:"size"`
	WrappedKey []byte         `json:"symmetricKeyEncrypted"`
	Status     TransferStatus `json:"status"`
	ChunkCount int            `json:"chunkCount"`
	ChunkSize  int            `json:"chunkSize"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// TableName returns the name of the database table associated with Transfer.
func (t Transfer) TableName() string {
	return "transfers"
}

// CreateTransferRequest is submitted by a sender before uploading chunks.
type CreateTransferRequest struct {
	Receiver   string `json:"recipientAddress"`
	Filename   string `json:"filename"`
	Subject    string `json:"subject"`
	Size       int64  `json:"size"`
	WrappedKey []byte `json:"symmetricKeyEncrypted"`
	ChunkSize  int    `json:"chunkSize"`
}

// RetrievedRequest is the receiver's report after decrypting a transfer.
// Success=false records an integrity failure without changing the status.
type RetrievedRequest struct {
	Success bool `json:"success"`
}

// Mailbox selects which side of a user's transfers to list.
type Mailbox string

const (
	Inbox  Mailbox = "inbox"
	Outbox Mailbox = "outbox"
)
