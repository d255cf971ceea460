// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-file-courier/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenParams describes the session tokens of one server.
//
// Audience is the server's federation domain: a token issued by one domain
// is rejected by every other, even when they share a sign key.
type TokenParams struct {
	Issuer   string
	Audience string
	SignKey  string
	Duration time.Duration
}

var (
	errInvalidTokenParams = errors.New("invalid params for generating JWT Token")
	errEmptySubject       = errors.New("empty subject error")
	errInvalidAuthHeader  = errors.New("invalid authorization header")
)

// GenerateJWTToken signs an HS256 token for userID. The subject is the
// decimal user id and every token gets a fresh v7 jti.
func GenerateJWTToken(p TokenParams, userID int64) (models.Token, error) {
	if p.Issuer == "" || p.Audience == "" || p.Duration == 0 || p.SignKey == "" {
		return models.Token{}, errInvalidTokenParams
	}

	id, err := uuid.NewV7()
	if err != nil {
		return models.Token{}, fmt.Errorf("error generating token id: %w", err)
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		ID:        id.String(),
		Issuer:    p.Issuer,
		Audience:  jwt.ClaimStrings{p.Audience},
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(p.Duration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(p.SignKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{Token: token, SignedString: signed, UserID: userID}, nil
}

// ValidateAndParseJWTToken checks signature, algorithm, issuer, audience
// and expiry, then returns the token with UserID taken from the subject.
func ValidateAndParseJWTToken(tokenString string, p TokenParams) (models.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Token{}, func(token *jwt.Token) (any, error) {
		return []byte(p.SignKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(p.Issuer),
		jwt.WithAudience(p.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if subject == "" {
		return models.Token{}, errEmptySubject
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during converting subject to user id: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString, UserID: userID}, nil
}

// ParseBearerToken returns the token of an "Authorization: Bearer <token>"
// header value. The scheme is case insensitive.
func ParseBearerToken(authorizationHeader string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authorizationHeader), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", errInvalidAuthHeader
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", errInvalidAuthHeader
	}
	return token, nil
}
