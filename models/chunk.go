// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EncryptedChunk is one independently authenticated piece of an encrypted
// file. Indices are dense and 0-based; exactly one chunk of a complete set
// has IsLast set, and it carries the highest index.
//
// The JSON form is the wire shape shared by clients and federation peers;
// byte slices travel as standard base64.
type EncryptedChunk struct {
	Index      uint32 `json:"chunkIndex"`
	Ciphertext []byte `json:"encryptedData"`
	Nonce      []byte `json:"iv"`
	IsLast     bool   `json:"isLastChunk"`
}

// ChunkListResponse lists the chunk indices persisted for a transfer.
type ChunkListResponse struct {
	TransferID string   `json:"transferId"`
	Indices    []uint32 `json:"indices"`
}
