// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAddress is returned when a string cannot be parsed as a
// federated "login@domain" address.
var ErrInvalidAddress = errors.New("invalid address")

// Address identifies a user across the federation. Login is unique per
// Domain; Domain names the member server that owns the account.
type Address struct {
	Login  string
	Domain string
}

// ParseAddress parses "login@domain". The domain is lower-cased and must
// contain at least one dot.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return Address{}, fmt.Errorf("%w: %q: expected login@domain", ErrInvalidAddress, s)
	}

	login := s[:at]
	domain := strings.ToLower(s[at+1:])
	if strings.ContainsAny(login, " \t/@") {
		return Address{}, fmt.Errorf("%w: %q: bad login", ErrInvalidAddress, s)
	}
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return Address{}, fmt.Errorf("%w: %q: bad domain", ErrInvalidAddress, s)
	}

	return Address{Login: login, Domain: domain}, nil
}

// String returns the canonical "login@domain" form.
func (a Address) String() string {
	if a.Login == "" && a.Domain == "" {
		return ""
	}
	return a.Login + "@" + a.Domain
}

// IsZero reports whether the address is empty.
func (a Address) IsZero() bool {
	return a.Login == "" && a.Domain == ""
}
