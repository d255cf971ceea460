// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Announcement is sent by the sender's server to the receiver's server once
// a transfer for a remote receiver is fully uploaded. Size is a decimal
// string on the wire.
type Announcement struct {
	ID               string `json:"id"`
	WrappedKey       []byte `json:"symmetric_key_encrypted"`
	Filename         string `json:"filename"`
	Subject          string `json:"subject"`
	Size             string `json:"size"`
	SenderAddress    string `json:"senderAddress"`
	RecipientAddress string `json:"recipientAddress"`
	ChunkSize        int    `json:"chunkSize,omitempty"`
}

// StatusNotification propagates a receiver-side lifecycle change back to the
// sender's server.
type StatusNotification struct {
	Status TransferStatus `json:"status"`
}
