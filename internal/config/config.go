// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksim Kravets

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for sayright.
// It aggregates all sub-configurations and is populated by merging values
// from environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Remote holds the remote document store endpoint settings used by the
	// client sync layer.
	Remote Remote `envPrefix:"REMOTE_"`

	// Speech holds the speech-assessment service endpoint settings.
	Speech Speech `envPrefix:"SPEECH_"`

	// Storage holds local persistence settings for the client and database
	// settings for the dev document server.
	Storage Storage `envPrefix:"STORAGE_"`

	// Sync holds retry/backoff and background refresh settings for the
	// collection sync engine.
	Sync Sync `envPrefix:"SYNC_"`

	// Auth holds token signing settings used by the dev document server.
	Auth Auth `envPrefix:"AUTH_"`

	// Server holds network address and timeout settings for the dev
	// document server.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Remote holds the remote document store endpoint settings.
type Remote struct {
	// BaseURL is the HTTP endpoint of the document store
	// (e.g. "http://localhost:8080").
	// Env: REMOTE_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout is the default timeout for outbound document store
	// requests (e.g. "15s").
	// Env: REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Speech holds the speech-assessment service endpoint settings.
type Speech struct {
	// BaseURL is the HTTP endpoint of the assessment service.
	// Env: SPEECH_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// APIKey authenticates requests against the assessment service.
	// Env: SPEECH_API_KEY
	APIKey string `env:"API_KEY"`

	// RequestTimeout bounds a single assessment round-trip; audio uploads
	// are slow, so this is usually larger than Remote.RequestTimeout.
	// Env: SPEECH_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for all persistence backends.
type Storage struct {
	// Local holds the client-side key/value store settings.
	Local Local `envPrefix:"LOCAL_"`

	// DB holds the dev document server database settings.
	DB DB `envPrefix:"DB_"`
}

// Local holds the client-side key/value store settings.
type Local struct {
	// Path is the file (file backend) or database file (sqlite backend)
	// holding the local mirror of the user's collections.
	// Env: STORAGE_LOCAL_PATH
	Path string `env:"PATH"`

	// Backend selects the local store implementation: "file" or "sqlite".
	// Env: STORAGE_LOCAL_BACKEND
	Backend string `env:"BACKEND"`
}

// DB holds connection settings for the dev document server database.
type DB struct {
	// DSN is the connection string. A "postgres://" DSN selects the
	// PostgreSQL repository; any other value is treated as a SQLite file
	// path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Sync holds retry/backoff and background refresh settings.
type Sync struct {
	// MaxRetries is the number of additional attempts after the first
	// failure of a remote operation.
	// Env: SYNC_MAX_RETRIES
	MaxRetries int `env:"MAX_RETRIES"`

	// BaseDelay is the delay before the first retry (e.g. "1s").
	// Env: SYNC_BASE_DELAY
	BaseDelay time.Duration `env:"BASE_DELAY"`

	// MaxDelay caps the exponential backoff delay (e.g. "10s").
	// Env: SYNC_MAX_DELAY
	MaxDelay time.Duration `env:"MAX_DELAY"`

	// RefreshInterval defines how often the background refresh job
	// re-fetches the user document (e.g. "5m").
	// Env: SYNC_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
}

// Auth holds token signing settings used by the dev document server.
type Auth struct {
	// TokenSignKey is the secret key used to sign and verify JWT session
	// tokens. Must be kept confidential.
	// Env: AUTH_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token.
	// Env: AUTH_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a session token remains valid after
	// issuance (e.g. "24h").
	// Env: AUTH_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// Server holds network and timeout settings for the dev document server.
type Server struct {
	// HTTPAddress is the TCP address on which the server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
