// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidLogin        = errors.New("login must be 3-64 characters of letters, digits, '.', '_' or '-'")
	ErrInvalidPassword     = errors.New("password must be 8-128 characters")
	ErrInvalidAddress      = errors.New("address must look like login@domain")
	ErrInvalidTransferID   = errors.New("invalid transfer id")
	ErrEmptyFilename       = errors.New("filename is required")
	ErrFilenameTooLong     = errors.New("filename is too long")
	ErrSubjectTooLong      = errors.New("subject is too long")
	ErrInvalidSize         = errors.New("size must be a positive number of bytes")
	ErrInvalidChunkSize    = errors.New("invalid chunk size")
	ErrInvalidWrappedKey   = errors.New("invalid encrypted symmetric key")
	ErrInvalidPublicKey    = errors.New("invalid public key")
	ErrInvalidProtectedKey = errors.New("invalid protected private key")
	ErrInvalidNonce        = errors.New("invalid chunk nonce")
	ErrInvalidCiphertext   = errors.New("invalid chunk ciphertext")
)
