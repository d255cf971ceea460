// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// EventKind names a lifecycle event recorded in the transfer audit log.
type EventKind string

const (
	EventTransferCreated         EventKind = "TRANSFER_CREATED"
	EventTransferUploaded        EventKind = "TRANSFER_UPLOADED"
	EventTransferSent            EventKind = "TRANSFER_SENT"
	EventTransferSentFailed      EventKind = "TRANSFER_SENT_FAILED"
	EventTransferAccepted        EventKind = "TRANSFER_ACCEPTED"
	EventTransferAcceptedFailed  EventKind = "TRANSFER_ACCEPTED_FAILED"
	EventTransferRetrieved       EventKind = "TRANSFER_RETRIEVED"
	EventTransferRetrievedFailed EventKind = "TRANSFER_RETRIEVED_FAILED"
	EventTransferRefused         EventKind = "TRANSFER_REFUSED"
	EventTransferExpired         EventKind = "TRANSFER_EXPIRED"
	EventTransferDeleted         EventKind = "TRANSFER_DELETED"
	EventKeysChanged             EventKind = "KEYS_CHANGED"
)

// TransferLog is one append-only audit entry. Entries are removed only by
// the retention purge.
type TransferLog struct {
	ID         int64     `json:"id"`
	TransferID string    `json:"transferId"`
	Kind       EventKind `json:"kind"`
	Actor      string    `json:"actor,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName returns the name of the database table associated with TransferLog.
func (l TransferLog) TableName() string {
	return "transfer_logs"
}
