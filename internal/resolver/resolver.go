// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package resolver maps user domains to the host of their federation server
// and attests that an inbound request really comes from the server of the
// domain it claims.
//
// A domain publishes its server through one TXT record at
// <prefix>.<domain>, for example
//
//	_filecourier.b.example. TXT "courier.b.example:8443"
//
// Static peers from configuration take precedence over DNS.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-file-courier/internal/logger"
)

var (
	// ErrUnconfiguredDomain means the domain publishes no federation record.
	ErrUnconfiguredDomain = errors.New("domain has no federation server configured")

	// ErrDomainLookupFailed is a transient resolver failure; retrying may help.
	ErrDomainLookupFailed = errors.New("domain lookup failed")

	// ErrMalformedRecord means the federation record exists but is not
	// exactly one valid host name.
	ErrMalformedRecord = errors.New("malformed federation record")

	// ErrOriginMismatch means the request origin is not an address of the
	// claimed domain's server.
	ErrOriginMismatch = errors.New("request origin does not match claimed domain")
)

// Resolver is the DNS lookup surface used here. *net.Resolver satisfies it.
type Resolver interface {
	LookupTXT(ctx context.Context, name string) ([]string, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// DomainResolver resolves and authenticates federation domains.
type DomainResolver struct {
	dns    Resolver
	prefix string
	peers  map[string]string
	logger *logger.Logger
}

// New returns a DomainResolver querying <prefix>.<domain> through dns.
// peers maps lower-case domains to "host[:port]" and bypasses DNS.
func New(dns Resolver, prefix string, peers map[string]string, log *logger.Logger) *DomainResolver {
	if dns == nil {
		dns = net.DefaultResolver
	}

	normalized := make(map[string]string, len(peers))
	for domain, host := range peers {
		normalized[strings.ToLower(domain)] = host
	}

	return &DomainResolver{
		dns:    dns,
		prefix: strings.Trim(prefix, "."),
		peers:  normalized,
		logger: log,
	}
}

// ResolveServerDomain returns the "host[:port]" of the federation server
// for domain.
func (r *DomainResolver) ResolveServerDomain(ctx context.Context, domain string) (string, error) {
	domain = strings.ToLower(strings.TrimSuffix(domain, "."))
	if domain == "" {
		return "", ErrUnconfiguredDomain
	}

	if host, ok := r.peers[domain]; ok {
		return host, nil
	}

	name := domain
	if r.prefix != "" {
		name = r.prefix + "." + domain
	}

	records, err := r.dns.LookupTXT(ctx, name)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return "", fmt.Errorf("%w: %s", ErrUnconfiguredDomain, domain)
		}
		logger.FromContext(ctx).Err(err).Str("func", "*DomainResolver.ResolveServerDomain").
			Str("domain", domain).
			Msg("txt lookup failed")
		return "", fmt.Errorf("%w: %s: %w", ErrDomainLookupFailed, domain, err)
	}

	if len(records) != 1 {
		return "", fmt.Errorf("%w: %s has %d records", ErrMalformedRecord, domain, len(records))
	}

	host := strings.TrimSpace(records[0])
	if !validHostPort(host) {
		return "", fmt.Errorf("%w: %s", ErrMalformedRecord, domain)
	}

	return host, nil
}

// Authenticate checks that originIP is one of the addresses of the server
// named by claimedDomain's federation record. Every failure is an error; a
// caller must reject the request on any of them.
func (r *DomainResolver) Authenticate(ctx context.Context, claimedDomain string, originIP netip.Addr) error {
	if !originIP.IsValid() {
		return fmt.Errorf("%w: no origin address", ErrOriginMismatch)
	}

	hostPort, err := r.ResolveServerDomain(ctx, claimedDomain)
	if err != nil {
		return err
	}

	host := hostOnly(hostPort)
	origin := originIP.Unmap()

	if addr, err := netip.ParseAddr(host); err == nil {
		if addr.Unmap() == origin {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrOriginMismatch, claimedDomain)
	}

	addrs, err := r.dns.LookupIPAddr(ctx, host)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDomainLookupFailed, host, err)
	}

	for _, a := range addrs {
		ip, ok := netip.AddrFromSlice(a.IP)
		if ok && ip.Unmap() == origin {
			return nil
		}
	}

	r.logger.Warn().Str("func", "*DomainResolver.Authenticate").
		Str("domain", claimedDomain).
		Str("origin", origin.String()).
		Msg("origin is not an address of the claimed domain")
	return fmt.Errorf("%w: %s", ErrOriginMismatch, claimedDomain)
}

// IsRetryable reports whether err is a transient resolution failure.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrDomainLookupFailed)
}

func hostOnly(hostPort string) string {
	if host, _, err := net.SplitHostPort(hostPort); err == nil {
		return host
	}
	return strings.Trim(hostPort, "[]")
}

func validHostPort(s string) bool {
	host := s
	if h, port, err := net.SplitHostPort(s); err == nil {
		n, err := strconv.Atoi(port)
		if err != nil || n < 1 || n > 65535 {
			return false
		}
		host = h
	}

	if _, err := netip.ParseAddr(host); err == nil {
		return true
	}
	return validHostname(host)
}

// validHostname applies the RFC 1123 label rules.
func validHostname(host string) bool {
	host = strings.TrimSuffix(host, ".")
	if host == "" || len(host) > 253 {
		return false
	}

	for _, label := range strings.Split(host, ".") {
		if label == "" || len(label) > 63 {
			return false
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for _, c := range label {
			switch {
			case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
			default:
				return false
			}
		}
	}

	return true
}
