// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/MKhiriev/go-file-courier/internal/crypto"
)

func defaults() *StructuredConfig {
	kdf := crypto.DefaultKDFParams()

	return &StructuredConfig{
		App: App{
			TokenIssuer:   "file-courier",
			TokenDuration: time.Hour,
		},
		Storage: Storage{
			Chunks: Chunks{Backend: ChunkBackendFS},
		},
		Server: Server{
			HTTPAddress:     "localhost:8080",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Federation: Federation{
			RecordPrefix:     "_filecourier",
			Scheme:           "https",
			RequestTimeout:   30 * time.Second,
			FetchConcurrency: 1,
		},
		Adapter: Adapter{
			RequestTimeout: 30 * time.Second,
		},
		Workers: Workers{
			StaleCreatedInterval:  time.Hour,
			RetainedInterval:      24 * time.Hour,
			LogPurgeInterval:      24 * time.Hour,
			AnnounceRetryInterval: time.Hour,
			CreatedGrace:          24 * time.Hour,
			RetentionWindow:       7 * 24 * time.Hour,
			LogRetention:          30 * 24 * time.Hour,
		},
		Crypto: Crypto{
			ChunkSize:      crypto.DefaultChunkSize,
			ArgonTime:      kdf.Time,
			ArgonMemoryKiB: kdf.MemoryKiB,
			ArgonThreads:   kdf.Threads,
			DecryptWorkers: 4,
		},
	}
}

// KDFParams returns the key-derivation parameters of the deployment.
func (c Crypto) KDFParams() crypto.KDFParams {
	return crypto.KDFParams{
		Time:      c.ArgonTime,
		MemoryKiB: c.ArgonMemoryKiB,
		Threads:   c.ArgonThreads,
	}
}
