// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"github.com/MKhiriev/go-file-courier/internal/crypto"
	"github.com/MKhiriev/go-file-courier/models"
)

// Session is an unlocked login. It is the only holder of the private key.
type Session struct {
	Token      string
	Address    models.Address
	PublicKey  []byte
	PrivateKey []byte
}

// Close wipes the private key. The session cannot receive afterwards.
func (s *Session) Close() {
	if s == nil {
		return
	}
	crypto.Wipe(s.PrivateKey)
	s.PrivateKey = nil
}

func (s *Session) unlocked() bool {
	return s != nil && s.Token != "" && len(s.PrivateKey) > 0
}
