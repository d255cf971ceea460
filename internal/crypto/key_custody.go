// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/MKhiriev/go-file-courier/models"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/box"
)

const (
	// PublicKeySize and PrivateKeySize are the X25519 key sizes.
	PublicKeySize  = 32
	PrivateKeySize = 32

	// WrappedKeySize is the size of a symmetric key sealed to a public key.
	WrappedKeySize = SymmetricKeySize + box.AnonymousOverhead

	// SaltSize is the Argon2id salt size for protected private keys.
	SaltSize = 16

	// ProtectedKeySize is the sealed private key size including the tag.
	ProtectedKeySize = PrivateKeySize + TagSize
)

// KDFParams are the Argon2id cost parameters. They are fixed per deployment:
// changing them makes existing protected keys unreadable.
type KDFParams struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
}

// DefaultKDFParams returns the Argon2id parameters recommended by OWASP:
// one pass, 64 MiB, four lanes.
func DefaultKDFParams() KDFParams {
	return KDFParams{
		Time:      1,
		MemoryKiB: 64 * 1024,
		Threads:   4,
	}
}

// keyCustody is the private implementation of [KeyCustodyService].
type keyCustody struct {
	params KDFParams
	rand   io.Reader
}

// NewKeyCustody constructs a [KeyCustodyService] deriving key-protection keys
// with params. Zero fields fall back to DefaultKDFParams.
func NewKeyCustody(params KDFParams) KeyCustodyService {
	def := DefaultKDFParams()
	if params.Time == 0 {
		params.Time = def.Time
	}
	if params.MemoryKiB == 0 {
		params.MemoryKiB = def.MemoryKiB
	}
	if params.Threads == 0 {
		params.Threads = def.Threads
	}

	return &keyCustody{params: params, rand: rand.Reader}
}

func (k *keyCustody) GenerateKeyPair() (models.KeyPair, error) {
	pub, priv, err := box.GenerateKey(k.rand)
	if err != nil {
		return models.KeyPair{}, fmt.Errorf("error generating key pair: %w", err)
	}

	return models.KeyPair{Public: pub[:], Private: priv[:]}, nil
}

func (k *keyCustody) GenerateSymmetricKey() ([]byte, error) {
	key := make([]byte, SymmetricKeySize)
	if _, err := io.ReadFull(k.rand, key); err != nil {
		return nil, fmt.Errorf("error generating symmetric key: %w", err)
	}
	return key, nil
}

func (k *keyCustody) ProtectPrivateKey(privateKey []byte, masterSecret string) (models.ProtectedPrivateKey, error) {
	if len(privateKey) != PrivateKeySize {
		return models.ProtectedPrivateKey{}, fmt.Errorf("%w: private key must be %d bytes", ErrInvalidKeyLength, PrivateKeySize)
	}

	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(k.rand, salt); err != nil {
		return models.ProtectedPrivateKey{}, fmt.Errorf("error generating salt: %w", err)
	}
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(k.rand, nonce); err != nil {
		return models.ProtectedPrivateKey{}, fmt.Errorf("error generating nonce: %w", err)
	}

	aead, err := k.masterAEAD(masterSecret, salt)
	if err != nil {
		return models.ProtectedPrivateKey{}, err
	}

	return models.ProtectedPrivateKey{
		Ciphertext: aead.Seal(nil, nonce, privateKey, nil),
		Salt:       salt,
		Nonce:      nonce,
	}, nil
}

func (k *keyCustody) UnlockPrivateKey(protected models.ProtectedPrivateKey, masterSecret string) ([]byte, error) {
	if ValidateProtectedPrivateKey(protected) != nil {
		return nil, ErrWrongMasterSecret
	}

	aead, err := k.masterAEAD(masterSecret, protected.Salt)
	if err != nil {
		return nil, ErrWrongMasterSecret
	}

	priv, err := aead.Open(nil, protected.Nonce, protected.Ciphertext, nil)
	if err != nil {
		return nil, ErrWrongMasterSecret
	}

	return priv, nil
}

func (k *keyCustody) WrapSymmetricKey(symmetricKey, recipientPublicKey []byte) ([]byte, error) {
	if len(symmetricKey) != SymmetricKeySize {
		return nil, fmt.Errorf("%w: symmetric key must be %d bytes", ErrInvalidKeyLength, SymmetricKeySize)
	}
	if err := ValidatePublicKey(recipientPublicKey); err != nil {
		return nil, err
	}

	wrapped, err := box.SealAnonymous(nil, symmetricKey, (*[PublicKeySize]byte)(recipientPublicKey), k.rand)
	if err != nil {
		return nil, fmt.Errorf("error wrapping symmetric key: %w", err)
	}

	return wrapped, nil
}

func (k *keyCustody) UnwrapSymmetricKey(wrapped, privateKey []byte) ([]byte, error) {
	if len(wrapped) != WrappedKeySize || len(privateKey) != PrivateKeySize {
		return nil, ErrUnwrapFailed
	}

	pub, err := curve25519.X25519(privateKey, curve25519.Basepoint)
	if err != nil {
		return nil, ErrUnwrapFailed
	}

	key, ok := box.OpenAnonymous(nil, wrapped, (*[PublicKeySize]byte)(pub), (*[PrivateKeySize]byte)(privateKey))
	if !ok || len(key) != SymmetricKeySize {
		Wipe(key)
		return nil, ErrUnwrapFailed
	}

	return key, nil
}

func (k *keyCustody) FingerprintPublicKey(publicKey []byte) string {
	return Fingerprint(publicKey)
}

func (k *keyCustody) masterAEAD(masterSecret string, salt []byte) (cipher.AEAD, error) {
	kek := argon2.IDKey([]byte(masterSecret), salt, k.params.Time, k.params.MemoryKiB, k.params.Threads, SymmetricKeySize)
	defer Wipe(kek)

	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, fmt.Errorf("error creating cipher: %w", err)
	}

	return cipher.NewGCM(block)
}

// Fingerprint returns the lower-case hex SHA-256 digest of a public key.
func Fingerprint(publicKey []byte) string {
	sum := sha256.Sum256(publicKey)
	return hex.EncodeToString(sum[:])
}

// ValidatePublicKey checks the fixed public key size.
func ValidatePublicKey(publicKey []byte) error {
	if len(publicKey) != PublicKeySize {
		return fmt.Errorf("%w: public key must be %d bytes, got %d", ErrInvalidKeyLength, PublicKeySize, len(publicKey))
	}
	return nil
}

// ValidateWrappedKey checks the fixed wrapped symmetric key size.
func ValidateWrappedKey(wrapped []byte) error {
	if len(wrapped) != WrappedKeySize {
		return fmt.Errorf("%w: wrapped key must be %d bytes, got %d", ErrInvalidKeyLength, WrappedKeySize, len(wrapped))
	}
	return nil
}

// ValidateProtectedPrivateKey checks the sizes of every protected key part.
func ValidateProtectedPrivateKey(p models.ProtectedPrivateKey) error {
	switch {
	case len(p.Ciphertext) != ProtectedKeySize:
		return fmt.Errorf("%w: protected key ciphertext must be %d bytes", ErrInvalidKeyLength, ProtectedKeySize)
	case len(p.Salt) != SaltSize:
		return fmt.Errorf("%w: salt must be %d bytes", ErrInvalidKeyLength, SaltSize)
	case len(p.Nonce) != NonceSize:
		return fmt.Errorf("%w: nonce must be %d bytes", ErrInvalidKeyLength, NonceSize)
	}
	return nil
}
