// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// KeyPair is an asymmetric key pair generated on the client. Private never
// leaves the client unprotected.
type KeyPair struct {
	Public  []byte
	Private []byte
}

// ProtectedPrivateKey is a private key sealed under a key derived from the
// user's master secret. The server stores it opaquely so the user can unlock
// it from any client.
type ProtectedPrivateKey struct {
	// Ciphertext is the AEAD-sealed private key including the tag.
	Ciphertext []byte `json:"ciphertext"`
	// Salt is the per-key KDF salt.
	Salt []byte `json:"salt"`
	// Nonce is the AEAD nonce used to seal Ciphertext.
	Nonce []byte `json:"nonce"`
}

// KeysRequest is the body of PUT /api/keys. When the user already has keys
// the request replaces them.
type KeysRequest struct {
	PublicKey           []byte              `json:"publicKey"`
	ProtectedPrivateKey ProtectedPrivateKey `json:"protectedPrivateKey"`
}

// OwnKeysResponse returns the caller's own key material for unlocking.
type OwnKeysResponse struct {
	PublicKey           []byte              `json:"publicKey"`
	ProtectedPrivateKey ProtectedPrivateKey `json:"protectedPrivateKey"`
}

// PublicKeyResponse describes the public key of any federated address.
type PublicKeyResponse struct {
	Address     string `json:"address"`
	PublicKey   []byte `json:"publicKey"`
	Fingerprint string `json:"fingerprint"`
}
