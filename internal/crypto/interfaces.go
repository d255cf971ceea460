// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "github.com/MKhiriev/go-file-courier/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/key_custody_mock.go -package=mock

// KeyCustodyService owns every asymmetric operation of the client: it
// creates key pairs, protects the private key with the user's master secret,
// and moves one-time file keys to recipients. It knows nothing about the
// network, storage or users.
//
// Flow:
//
//	pair      = GenerateKeyPair()
//	protected = ProtectPrivateKey(pair.Private, masterSecret)   (stored on the server)
//	fileKey   = GenerateSymmetricKey()
//	wrapped   = WrapSymmetricKey(fileKey, recipientPublicKey)  (stored on the transfer)
//	fileKey   = UnwrapSymmetricKey(wrapped, recipientPrivateKey)
type KeyCustodyService interface {
	// GenerateKeyPair returns a fresh X25519 key pair.
	GenerateKeyPair() (models.KeyPair, error)

	// GenerateSymmetricKey returns a fresh 32-byte one-time file key.
	GenerateSymmetricKey() ([]byte, error)

	// ProtectPrivateKey seals privateKey under an Argon2id key derived from
	// masterSecret with a fresh salt and nonce.
	ProtectPrivateKey(privateKey []byte, masterSecret string) (models.ProtectedPrivateKey, error)

	// UnlockPrivateKey reverses ProtectPrivateKey. Any failure is
	// ErrWrongMasterSecret.
	UnlockPrivateKey(protected models.ProtectedPrivateKey, masterSecret string) ([]byte, error)

	// WrapSymmetricKey seals symmetricKey so that only the holder of the
	// matching private key can open it.
	WrapSymmetricKey(symmetricKey, recipientPublicKey []byte) ([]byte, error)

	// UnwrapSymmetricKey opens a wrapped key. Any failure is ErrUnwrapFailed.
	UnwrapSymmetricKey(wrapped, privateKey []byte) ([]byte, error)

	// FingerprintPublicKey returns a stable digest for out-of-band comparison.
	FingerprintPublicKey(publicKey []byte) string
}
