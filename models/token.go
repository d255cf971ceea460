// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/golang-jwt/jwt/v5"

// Token is a session token issued by this server to one of its local users.
// Peers authenticate by domain and never present one.
//
// The claims carry the user id as subject and the server's domain as
// audience. UserID is the parsed subject.
type Token struct {
	*jwt.Token `json:"-"`
	jwt.RegisteredClaims

	// SignedString is the compact form sent in the Authorization header.
	SignedString string `json:"-"`
	UserID       int64  `json:"-"`
}

// String returns the compact signed form, the value sent as a Bearer token.
func (t *Token) String() string {
	return t.SignedString
}
