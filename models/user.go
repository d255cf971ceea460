// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account hosted on this server.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"-"`

	// Login is unique on this server; together with the server domain it
	// forms the user's federated address.
	Login string `json:"login"`

	// Password carries the plaintext password only on the way in and the
	// HMAC digest once stored. It is never serialized back to clients.
	Password string `json:"password,omitempty"`

	// PublicKey is nil until the user registers keys.
	PublicKey []byte `json:"-"`

	// ProtectedPrivateKey is stored opaquely; the server cannot open it.
	ProtectedPrivateKey *ProtectedPrivateKey `json:"-"`

	// KeysUpdatedAt is set whenever keys are registered or replaced.
	KeysUpdatedAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// HasKeys reports whether the user completed key registration.
func (u User) HasKeys() bool {
	return len(u.PublicKey) > 0 && u.ProtectedPrivateKey != nil
}

// Local returns the LocalUser participant for u on the given domain.
func (u User) Local(domain string) LocalUser {
	return LocalUser{UserID: u.UserID, Login: u.Login, Domain: domain, PublicKey: u.PublicKey}
}

// Credentials is the body of the register and login endpoints.
type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// AuthResponse returns the issued token and the caller's federated address.
type AuthResponse struct {
	Token   string `json:"token"`
	Address string `json:"address"`
}
