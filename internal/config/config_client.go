// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-file-courier/internal/crypto"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the home server.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// TrustStoreDSN is the SQLite path of the pinned recipient keys.
	TrustStoreDSN string
}

// ClientCrypto holds the client-side crypto parameters.
type ClientCrypto struct {
	ChunkSize      int
	DecryptWorkers int
	KDF            crypto.KDFParams
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	Adapter ClientAdapter
	Storage ClientStorage
	Crypto  ClientCrypto
}

// GetClientConfig builds and validates the client view of the configuration.
// Values in overrides (usually CLI flags) win over the environment, which
// wins over the JSON file.
func GetClientConfig(overrides *StructuredConfig) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		with(overrides).
		withEnv().
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			TrustStoreDSN: cfg.Storage.DB.DSN,
		},
		Crypto: ClientCrypto{
			ChunkSize:      cfg.Crypto.ChunkSize,
			DecryptWorkers: cfg.Crypto.DecryptWorkers,
			KDF:            cfg.Crypto.KDFParams(),
		},
	}

	return clientCfg, clientCfg.validate()
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.TrustStoreDSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Crypto.ChunkSize <= 0 || cfg.Crypto.DecryptWorkers <= 0 {
		return ErrInvalidCryptoConfigs
	}

	return nil
}
