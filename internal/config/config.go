// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the clinic
// client. It aggregates all sub-configurations and is populated by merging
// values from command-line flags, environment variables, an optional JSON
// file and built-in defaults.
//
// Struct tags:
//   - envPrefix - prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       - direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the at-rest sealing key.
	App App `envPrefix:"APP_"`

	// Adapter holds the remote API address and request timeout.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage selects and configures the persistent key-value backend that
	// keeps the session between runs.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds configuration for background jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds logging output settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// SealKey is the secret used to derive the key that seals session values
	// before they reach the store. Empty disables sealing.
	// Env: APP_SEAL_KEY
	SealKey string `env:"SEAL_KEY"`
}

// Adapter holds the outbound transport settings.
type Adapter struct {
	// HTTPAddress is the base URL of the remote API, including the version
	// prefix (e.g. "http://localhost:8000/api/v1"). A missing scheme is
	// treated as http.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration of a single outbound request
	// (e.g. "10s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration of the persistent key-value backends.
type Storage struct {
	// Backend is either "sqlite" or "redis".
	// Env: STORAGE_BACKEND
	Backend string `env:"BACKEND"`

	// DB holds the SQLite settings.
	DB DB `envPrefix:"DB_"`

	// Redis holds the Redis settings.
	Redis Redis `envPrefix:"REDIS_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite database file path or URI.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Redis holds connection settings for the Redis backend.
type Redis struct {
	// Env: STORAGE_REDIS_ADDRESS
	Address string `env:"ADDRESS"`
	// Env: STORAGE_REDIS_PASSWORD
	Password string `env:"PASSWORD"`
	// Env: STORAGE_REDIS_DB
	DB int `env:"DB"`
	// KeyPrefix namespaces every key written by the client.
	// Env: STORAGE_REDIS_KEY_PREFIX
	KeyPrefix string `env:"KEY_PREFIX"`
}

// Workers holds configuration for background jobs.
type Workers struct {
	// ProfileRefreshInterval is how often the authenticated profile is
	// re-fetched from the server.
	// Env: WORKERS_PROFILE_REFRESH_INTERVAL
	ProfileRefreshInterval time.Duration `env:"PROFILE_REFRESH_INTERVAL"`
}

// Log holds logging output settings.
type Log struct {
	// File is the path of the JSON log file.
	// Env: LOG_FILE
	File string `env:"FILE"`
}

// Storage backend names accepted in Storage.Backend.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// defaultConfig is merged last, so it only fills fields no other source set.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Adapter: Adapter{
			HTTPAddress:    "http://localhost:8000/api/v1",
			RequestTimeout: 10 * time.Second,
		},
		Storage: Storage{
			Backend: BackendSQLite,
			DB:      DB{DSN: "clinic-client.db"},
			Redis:   Redis{KeyPrefix: "clinic:"},
		},
		Workers: Workers{ProfileRefreshInterval: 5 * time.Minute},
	}
}
