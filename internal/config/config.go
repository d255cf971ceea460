// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// file-courier server and client. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// an optional JSON file and finally the built-in defaults.
//
// Each section carries an envPrefix tag; scalar fields carry the env name
// below that prefix.
type StructuredConfig struct {
	// App holds identity and token settings of this federation member.
	App App `envPrefix:"APP_"`

	// Storage holds the metadata database and the chunk store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the listening address and timeouts of the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Federation holds the settings of the server-to-server protocol.
	Federation Federation `envPrefix:"FEDERATION_"`

	// Adapter holds the client's view of its home server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds the retention sweeper schedule and windows.
	Workers Workers `envPrefix:"WORKERS_"`

	// Crypto holds chunking and key-derivation parameters.
	Crypto Crypto `envPrefix:"CRYPTO_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Domain is the federation domain served by this instance; local users
	// are addressed as login@Domain.
	// Env: APP_DOMAIN
	Domain string `env:"DOMAIN"`

	// PasswordHashKey is the HMAC-SHA256 key used when storing passwords.
	// Env: APP_PASSWORD_HASH_KEY
	PasswordHashKey string `env:"PASSWORD_HASH_KEY"`

	// TokenSignKey signs and verifies JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of issued tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is how long an issued token stays valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is reported in logs at startup.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Chunks selects and configures the encrypted chunk store.
	Chunks Chunks `envPrefix:"CHUNKS_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the PostgreSQL connection string on the server and the SQLite
	// file path of the trust-pin store on the client.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Chunk store backends.
const (
	ChunkBackendFS = "fs"
	ChunkBackendS3 = "s3"
)

// Chunks configures where encrypted chunks live.
type Chunks struct {
	// Backend is "fs" or "s3".
	// Env: STORAGE_CHUNKS_BACKEND
	Backend string `env:"BACKEND"`

	// Dir is the root directory of the "fs" backend.
	// Env: STORAGE_CHUNKS_DIR
	Dir string `env:"DIR"`

	// S3 holds the "s3" backend settings.
	S3 S3 `envPrefix:"S3_"`
}

// S3 holds connection settings for an S3-compatible object store.
type S3 struct {
	Endpoint     string `env:"ENDPOINT"`
	Region       string `env:"REGION"`
	Bucket       string `env:"BUCKET"`
	AccessKey    string `env:"ACCESS_KEY"`
	SecretKey    string `env:"SECRET_KEY"`
	UsePathStyle bool   `env:"USE_PATH_STYLE"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address the HTTP server listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Federation configures the server-to-server protocol.
type Federation struct {
	// RecordPrefix is the label queried for the TXT record that names a
	// domain's federation host: <RecordPrefix>.<domain>.
	// Env: FEDERATION_RECORD_PREFIX
	RecordPrefix string `env:"RECORD_PREFIX"`

	// Scheme is the URL scheme used to reach peers ("https" in production).
	// Env: FEDERATION_SCHEME
	Scheme string `env:"SCHEME"`

	// RequestTimeout bounds every outbound call to a peer.
	// Env: FEDERATION_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// TrustForwardedFor makes the origin check read X-Forwarded-For from
	// the right: the hop appended by the proxy in front of the server,
	// skipping hops inside TrustedProxies. Enable only behind a reverse
	// proxy that appends to the header.
	// Env: FEDERATION_TRUST_FORWARDED_FOR
	TrustForwardedFor bool `env:"TRUST_FORWARDED_FOR"`

	// TrustedProxies lists the CIDRs of a proxy chain in front of the
	// server. When set, the header is only read from connections inside it.
	// Env: FEDERATION_TRUSTED_PROXIES (comma separated)
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	// StaticPeers maps domains to hosts without DNS, as "domain=host[:port]".
	// Env: FEDERATION_STATIC_PEERS (comma separated)
	StaticPeers []string `env:"STATIC_PEERS" envSeparator:","`

	// FetchConcurrency is the number of chunks fetched in parallel from a
	// peer for one transfer.
	// Env: FEDERATION_FETCH_CONCURRENCY
	FetchConcurrency int `env:"FETCH_CONCURRENCY"`
}

// Adapter holds the client's connection settings to its home server.
type Adapter struct {
	// HTTPAddress is the base URL or host:port of the home server.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every client request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds the retention sweeper configuration.
type Workers struct {
	// StaleCreatedInterval is how often abandoned uploads are expired.
	StaleCreatedInterval time.Duration `env:"STALE_CREATED_INTERVAL"`
	// RetainedInterval is how often old delivered transfers are expired.
	RetainedInterval time.Duration `env:"RETAINED_INTERVAL"`
	// LogPurgeInterval is how often old logs are purged.
	LogPurgeInterval time.Duration `env:"LOG_PURGE_INTERVAL"`
	// AnnounceRetryInterval is how often failed announcements are retried.
	AnnounceRetryInterval time.Duration `env:"ANNOUNCE_RETRY_INTERVAL"`

	// CreatedGrace is the age after which a CREATED transfer is abandoned.
	CreatedGrace time.Duration `env:"CREATED_GRACE"`
	// RetentionWindow is the age after which chunks of a live transfer are removed.
	RetentionWindow time.Duration `env:"RETENTION_WINDOW"`
	// LogRetention is the age after which logs and terminal transfers are purged.
	LogRetention time.Duration `env:"LOG_RETENTION"`
}

// Crypto holds chunking and key-derivation parameters. Argon2id parameters
// are fixed per deployment; changing them locks users out of their keys.
type Crypto struct {
	ChunkSize      int    `env:"CHUNK_SIZE"`
	ArgonTime      uint32 `env:"ARGON_TIME"`
	ArgonMemoryKiB uint32 `env:"ARGON_MEMORY_KIB"`
	ArgonThreads   uint8  `env:"ARGON_THREADS"`
	DecryptWorkers int    `env:"DECRYPT_WORKERS"`
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources in the following priority order (earlier
// sources win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags(osArgs()).
		withJSON().
		build()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.validate()
}
