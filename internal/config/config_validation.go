// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/netip"
	"strings"
)

// validate checks that the merged server configuration is usable at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.Domain == "" || !strings.Contains(cfg.App.Domain, ".") {
		return fmt.Errorf("%w: domain %q must be a fully qualified name", ErrInvalidAppConfigs, cfg.App.Domain)
	}
	if cfg.App.TokenSignKey == "" || cfg.App.PasswordHashKey == "" {
		return fmt.Errorf("%w: token sign key and password hash key are required", ErrInvalidAppConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}
	switch cfg.Storage.Chunks.Backend {
	case ChunkBackendFS:
		if cfg.Storage.Chunks.Dir == "" {
			return fmt.Errorf("%w: chunk directory is required for the fs backend", ErrInvalidStorageConfigs)
		}
	case ChunkBackendS3:
		if cfg.Storage.Chunks.S3.Bucket == "" {
			return fmt.Errorf("%w: bucket is required for the s3 backend", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown chunk backend %q", ErrInvalidStorageConfigs, cfg.Storage.Chunks.Backend)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if _, err := cfg.Federation.Peers(); err != nil {
		return err
	}
	if _, err := cfg.Federation.ProxyPrefixes(); err != nil {
		return err
	}
	if cfg.Federation.RecordPrefix == "" || cfg.Federation.FetchConcurrency < 1 {
		return ErrInvalidFederationConfigs
	}

	w := cfg.Workers
	for _, d := range []int64{
		int64(w.StaleCreatedInterval), int64(w.RetainedInterval), int64(w.LogPurgeInterval),
		int64(w.AnnounceRetryInterval), int64(w.CreatedGrace), int64(w.RetentionWindow), int64(w.LogRetention),
	} {
		if d <= 0 {
			return ErrInvalidWorkerConfigs
		}
	}

	return cfg.Crypto.validate()
}

func (c Crypto) validate() error {
	if c.ChunkSize <= 0 || c.ArgonTime == 0 || c.ArgonMemoryKiB == 0 || c.ArgonThreads == 0 {
		return ErrInvalidCryptoConfigs
	}
	return nil
}

// Peers parses StaticPeers into a domain to host map.
func (f Federation) Peers() (map[string]string, error) {
	peers := make(map[string]string, len(f.StaticPeers))
	for _, entry := range f.StaticPeers {
		domain, host, ok := strings.Cut(strings.TrimSpace(entry), "=")
		if !ok || domain == "" || host == "" {
			return nil, fmt.Errorf("%w: static peer %q must be domain=host", ErrInvalidFederationConfigs, entry)
		}
		peers[strings.ToLower(domain)] = host
	}
	return peers, nil
}

// ProxyPrefixes parses TrustedProxies. A bare address is a single-host prefix.
func (f Federation) ProxyPrefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(f.TrustedProxies))
	for _, entry := range f.TrustedProxies {
		entry = strings.TrimSpace(entry)
		if addr, err := netip.ParseAddr(entry); err == nil {
			prefixes = append(prefixes, netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()))
			continue
		}
		prefix, err := netip.ParsePrefix(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: trusted proxy %q is not a CIDR", ErrInvalidFederationConfigs, entry)
		}
		prefixes = append(prefixes, prefix.Masked())
	}
	return prefixes, nil
}
