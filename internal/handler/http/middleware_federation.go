// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/MKhiriev/go-file-courier/internal/adapter"
	"github.com/MKhiriev/go-file-courier/internal/logger"
	"github.com/MKhiriev/go-file-courier/internal/resolver"
	"github.com/MKhiriev/go-file-courier/internal/utils"
)

// federationAuth accepts a peer request only when its origin address
// belongs to the server named by the claimed domain's federation record.
// The verified domain is stored with [utils.WithPeerDomain].
func (h *Handler) federationAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		domain := strings.ToLower(strings.TrimSpace(r.Header.Get(adapter.FederationDomainHeader)))
		if domain == "" {
			log.Err(ErrEmptyFederationDomain).Send()
			http.Error(w, ErrEmptyFederationDomain.Error(), http.StatusUnauthorized)
			return
		}

		origin := h.originIP(r)
		if err := h.peers.Authenticate(r.Context(), domain, origin); err != nil {
			if resolver.IsRetryable(err) {
				log.Warn().Err(err).Str("domain", domain).Msg("peer domain lookup failed")
				http.Error(w, "transfer temporarily unavailable", http.StatusServiceUnavailable)
				return
			}
			log.Warn().Err(err).
				Str("domain", domain).
				Str("origin", origin.String()).
				Msg("peer authentication failed")
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithPeerDomain(r.Context(), domain)))
	})
}

// originIP is the address of the connecting peer. Behind a trusted proxy it
// is the rightmost X-Forwarded-For hop outside trustedProxies: hops to the
// left of it were supplied by the client and prove nothing.
func (h *Handler) originIP(r *http.Request) netip.Addr {
	remote := remoteAddr(r)
	if !h.trustForwardedFor {
		return remote
	}
	// with a proxy list, only a listed proxy may speak for the client
	if len(h.trustedProxies) > 0 && !h.isTrustedProxy(remote) {
		return remote
	}

	hops := forwardedHops(r)
	if len(hops) == 0 {
		return remote
	}
	for i := len(hops) - 1; i >= 0; i-- {
		addr, err := netip.ParseAddr(hops[i])
		if err != nil {
			return netip.Addr{}
		}
		if addr = addr.Unmap(); !h.isTrustedProxy(addr) {
			return addr
		}
	}

	return netip.Addr{}
}

func (h *Handler) isTrustedProxy(addr netip.Addr) bool {
	for _, p := range h.trustedProxies {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// forwardedHops flattens every X-Forwarded-For line into one hop list,
// oldest first.
func forwardedHops(r *http.Request) []string {
	var hops []string
	for _, line := range r.Header.Values("X-Forwarded-For") {
		for _, hop := range strings.Split(line, ",") {
			if hop = strings.TrimSpace(hop); hop != "" {
				hops = append(hops, hop)
			}
		}
	}
	return hops
}

func remoteAddr(r *http.Request) netip.Addr {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}
	}
	return addr.Unmap()
}
