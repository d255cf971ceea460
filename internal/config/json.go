// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON shape of [StructuredConfig].
// Durations are written as Go duration strings ("30s", "1h").
type StructuredJSONConfig struct {
	App struct {
		Domain          string   `json:"domain"`
		PasswordHashKey string   `json:"password_hash_key"`
		TokenSignKey    string   `json:"token_sign_key"`
		TokenIssuer     string   `json:"token_issuer"`
		TokenDuration   Duration `json:"token_duration"`
		Version         string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Chunks struct {
			Backend string `json:"backend"`
			Dir     string `json:"dir"`
			S3      struct {
				Endpoint     string `json:"endpoint"`
				Region       string `json:"region"`
				Bucket       string `json:"bucket"`
				AccessKey    string `json:"access_key"`
				SecretKey    string `json:"secret_key"`
				UsePathStyle bool   `json:"use_path_style"`
			} `json:"s3,omitempty"`
		} `json:"chunks,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Federation struct {
		RecordPrefix      string   `json:"record_prefix"`
		Scheme            string   `json:"scheme"`
		RequestTimeout    Duration `json:"request_timeout"`
		TrustForwardedFor bool     `json:"trust_forwarded_for"`
		TrustedProxies    []string `json:"trusted_proxies"`
		StaticPeers       []string `json:"static_peers"`
		FetchConcurrency  int      `json:"fetch_concurrency"`
	} `json:"federation,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		StaleCreatedInterval  Duration `json:"stale_created_interval"`
		RetainedInterval      Duration `json:"retained_interval"`
		LogPurgeInterval      Duration `json:"log_purge_interval"`
		AnnounceRetryInterval Duration `json:"announce_retry_interval"`
		CreatedGrace          Duration `json:"created_grace"`
		RetentionWindow       Duration `json:"retention_window"`
		LogRetention          Duration `json:"log_retention"`
	} `json:"workers,omitempty"`

	Crypto struct {
		ChunkSize      int    `json:"chunk_size"`
		ArgonTime      uint32 `json:"argon_time"`
		ArgonMemoryKiB uint32 `json:"argon_memory_kib"`
		ArgonThreads   uint8  `json:"argon_threads"`
		DecryptWorkers int    `json:"decrypt_workers"`
	} `json:"crypto,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Domain:          j.App.Domain,
			PasswordHashKey: j.App.PasswordHashKey,
			TokenSignKey:    j.App.TokenSignKey,
			TokenIssuer:     j.App.TokenIssuer,
			TokenDuration:   time.Duration(j.App.TokenDuration),
			Version:         j.App.Version,
		},
		Storage: Storage{
			DB: DB{DSN: j.Storage.DB.DSN},
			Chunks: Chunks{
				Backend: j.Storage.Chunks.Backend,
				Dir:     j.Storage.Chunks.Dir,
				S3: S3{
					Endpoint:     j.Storage.Chunks.S3.Endpoint,
					Region:       j.Storage.Chunks.S3.Region,
					Bucket:       j.Storage.Chunks.S3.Bucket,
					AccessKey:    j.Storage.Chunks.S3.AccessKey,
					SecretKey:    j.Storage.Chunks.S3.SecretKey,
					UsePathStyle: j.Storage.Chunks.S3.UsePathStyle,
				},
			},
		},
		Server: Server{
			HTTPAddress:     j.Server.HTTPAddress,
			RequestTimeout:  time.Duration(j.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(j.Server.ShutdownTimeout),
		},
		Federation: Federation{
			RecordPrefix:      j.Federation.RecordPrefix,
			Scheme:            j.Federation.Scheme,
			RequestTimeout:    time.Duration(j.Federation.RequestTimeout),
			TrustForwardedFor: j.Federation.TrustForwardedFor,
			TrustedProxies:    j.Federation.TrustedProxies,
			StaticPeers:       j.Federation.StaticPeers,
			FetchConcurrency:  j.Federation.FetchConcurrency,
		},
		Adapter: Adapter{
			HTTPAddress:    j.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(j.Adapter.RequestTimeout),
		},
		Workers: Workers{
			StaleCreatedInterval:  time.Duration(j.Workers.StaleCreatedInterval),
			RetainedInterval:      time.Duration(j.Workers.RetainedInterval),
			LogPurgeInterval:      time.Duration(j.Workers.LogPurgeInterval),
			AnnounceRetryInterval: time.Duration(j.Workers.AnnounceRetryInterval),
			CreatedGrace:          time.Duration(j.Workers.CreatedGrace),
			RetentionWindow:       time.Duration(j.Workers.RetentionWindow),
			LogRetention:          time.Duration(j.Workers.LogRetention),
		},
		Crypto: Crypto{
			ChunkSize:      j.Crypto.ChunkSize,
			ArgonTime:      j.Crypto.ArgonTime,
			ArgonMemoryKiB: j.Crypto.ArgonMemoryKiB,
			ArgonThreads:   j.Crypto.ArgonThreads,
			DecryptWorkers: j.Crypto.DecryptWorkers,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" and from raw nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %v", v)
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
