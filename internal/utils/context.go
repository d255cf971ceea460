// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils holds small helpers shared by the server and client:
// request context values, password digests, JSON responses, the resty
// client, session tokens and UUIDs.
package utils

import "context"

type contextKey string

func (c contextKey) String() string {
	return string(c)
}

var (
	// UserIDCtxKey holds the int64 id of the local user behind a request.
	UserIDCtxKey = contextKey("userID")
	// PeerDomainCtxKey holds the domain of an authenticated peer server.
	PeerDomainCtxKey = contextKey("peerDomain")
)

// WithUserID returns ctx carrying the authenticated local user.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDCtxKey, userID)
}

// GetUserIDFromContext reports false when no user id of type int64 is set.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// WithPeerDomain returns ctx carrying the authenticated peer domain.
func WithPeerDomain(ctx context.Context, domain string) context.Context {
	return context.WithValue(ctx, PeerDomainCtxKey, domain)
}

// GetPeerDomainFromContext returns the peer domain set by the federation
// authentication middleware. An empty domain counts as absent.
func GetPeerDomainFromContext(ctx context.Context) (string, bool) {
	domain, ok := ctx.Value(PeerDomainCtxKey).(string)
	return domain, ok && domain != ""
}
