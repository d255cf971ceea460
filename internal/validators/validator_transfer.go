// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/MKhiriev/go-file-courier/internal/crypto"
	"github.com/MKhiriev/go-file-courier/internal/utils"
	"github.com/MKhiriev/go-file-courier/models"
)

const (
	FieldLogin        = "login"
	FieldPassword     = "password"
	FieldID           = "id"
	FieldSender       = "sender"
	FieldReceiver     = "receiver"
	FieldFilename     = "filename"
	FieldSubject      = "subject"
	FieldSize         = "size"
	FieldChunkSize    = "chunk_size"
	FieldWrappedKey   = "wrapped_key"
	FieldPublicKey    = "public_key"
	FieldProtectedKey = "protected_key"
	FieldNonce        = "nonce"
	FieldCiphertext   = "ciphertext"
)

const (
	MinLoginLength    = 3
	MaxLoginLength    = 64
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MaxFilenameLength = 255
	MaxSubjectLength  = 1000

	// MaxChunkSize bounds the plaintext size of one chunk.
	MaxChunkSize = 16 << 20
)

// TransferValidator checks the shape of requests entering the server before
// any of them reach storage or crypto.
type TransferValidator struct {
}

func NewTransferValidator() Validator {
	return &TransferValidator{}
}

func (v *TransferValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Credentials:
		return v.validateCredentials(value, fields...)
	case *models.Credentials:
		return v.validateCredentials(*value, fields...)

	case models.CreateTransferRequest:
		return v.validateCreateTransferRequest(value, fields...)
	case *models.CreateTransferRequest:
		return v.validateCreateTransferRequest(*value, fields...)

	case models.Announcement:
		return v.validateAnnouncement(value, fields...)
	case *models.Announcement:
		return v.validateAnnouncement(*value, fields...)

	case models.KeysRequest:
		return v.validateKeysRequest(value, fields...)
	case *models.KeysRequest:
		return v.validateKeysRequest(*value, fields...)

	case models.EncryptedChunk:
		return v.validateChunk(value, fields...)
	case *models.EncryptedChunk:
		return v.validateChunk(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *TransferValidator) validateCredentials(creds models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogin, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldLogin:
			if !validLogin(creds.Login) {
				return ErrInvalidLogin
			}
		case FieldPassword:
			n := utf8.RuneCountInString(creds.Password)
			if n < MinPasswordLength || n > MaxPasswordLength {
				return ErrInvalidPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *TransferValidator) validateCreateTransferRequest(req models.CreateTransferRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldReceiver, FieldFilename, FieldSubject, FieldSize, FieldChunkSize, FieldWrappedKey}
	}

	for _, f := range fields {
		switch f {
		case FieldReceiver:
			if _, err := models.ParseAddress(req.Receiver); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidAddress, err)
			}
		case FieldFilename:
			if err := validateFilename(req.Filename); err != nil {
				return err
			}
		case FieldSubject:
			if utf8.RuneCountInString(req.Subject) > MaxSubjectLength {
				return ErrSubjectTooLong
			}
		case FieldSize:
			if req.Size <= 0 {
				return ErrInvalidSize
			}
		case FieldChunkSize:
			// zero selects the server default
			if req.ChunkSize < 0 || req.ChunkSize > MaxChunkSize {
				return ErrInvalidChunkSize
			}
		case FieldWrappedKey:
			if err := crypto.ValidateWrappedKey(req.WrappedKey); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidWrappedKey, err)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *TransferValidator) validateAnnouncement(a models.Announcement, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldSender, FieldReceiver, FieldFilename, FieldSubject, FieldSize, FieldChunkSize, FieldWrappedKey}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if !utils.IsUUID(a.ID) {
				return ErrInvalidTransferID
			}
		case FieldSender:
			if _, err := models.ParseAddress(a.SenderAddress); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidAddress, err)
			}
		case FieldReceiver:
			if _, err := models.ParseAddress(a.RecipientAddress); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidAddress, err)
			}
		case FieldFilename:
			if err := validateFilename(a.Filename); err != nil {
				return err
			}
		case FieldSubject:
			if utf8.RuneCountInString(a.Subject) > MaxSubjectLength {
				return ErrSubjectTooLong
			}
		case FieldSize:
			size, err := strconv.ParseInt(a.Size, 10, 64)
			if err != nil || size <= 0 {
				return ErrInvalidSize
			}
		case FieldChunkSize:
			if a.ChunkSize < 0 || a.ChunkSize > MaxChunkSize {
				return ErrInvalidChunkSize
			}
		case FieldWrappedKey:
			if err := crypto.ValidateWrappedKey(a.WrappedKey); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidWrappedKey, err)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *TransferValidator) validateKeysRequest(req models.KeysRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPublicKey, FieldProtectedKey}
	}

	for _, f := range fields {
		switch f {
		case FieldPublicKey:
			if err := crypto.ValidatePublicKey(req.PublicKey); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
			}
		case FieldProtectedKey:
			if err := crypto.ValidateProtectedPrivateKey(req.ProtectedPrivateKey); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidProtectedKey, err)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateChunk checks what can be checked without the transfer; bounds that
// depend on the transfer's chunk size are enforced by the service.
func (v *TransferValidator) validateChunk(chunk models.EncryptedChunk, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldNonce, FieldCiphertext}
	}

	for _, f := range fields {
		switch f {
		case FieldNonce:
			if len(chunk.Nonce) != crypto.NonceSize {
				return ErrInvalidNonce
			}
		case FieldCiphertext:
			if len(chunk.Ciphertext) < crypto.TagSize || len(chunk.Ciphertext) > MaxChunkSize+crypto.TagSize {
				return ErrInvalidCiphertext
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateFilename(name string) error {
	if name == "" {
		return ErrEmptyFilename
	}
	if len(name) > MaxFilenameLength {
		return ErrFilenameTooLong
	}
	return nil
}

func validLogin(login string) bool {
	if len(login) < MinLoginLength || len(login) > MaxLoginLength {
		return false
	}
	for _, r := range login {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}
