package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// SealKey seals session values at rest; empty disables sealing.
	SealKey string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the remote API base URL.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string.
	DSN string
}

// ClientRedis contains Redis connection settings for the client.
type ClientRedis struct {
	Address   string
	Password  string
	DB        int
	KeyPrefix string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// Backend is BackendSQLite or BackendRedis.
	Backend string
	// DB holds local database settings.
	DB ClientDB
	// Redis holds Redis settings.
	Redis ClientRedis
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// ProfileRefreshInterval defines how often the profile refresh job runs.
	ProfileRefreshInterval time.Duration
}

// ClientLog contains logging output settings.
type ClientLog struct {
	File string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains the remote API address and timeout.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
	// Log contains logging settings.
	Log ClientLog
}

// GetClientConfig builds and validates the client configuration.
//
// Sources are merged in priority order: command-line flags registered with
// [RegisterFlags] on fs (may be nil), environment variables, the JSON file
// named by either of them, and finally built-in defaults.
func GetClientConfig(fs *pflag.FlagSet) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withFlags(fs).
		withEnv().
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			SealKey: cfg.App.SealKey,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			Backend: cfg.Storage.Backend,
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
			Redis: ClientRedis{
				Address:   cfg.Storage.Redis.Address,
				Password:  cfg.Storage.Redis.Password,
				DB:        cfg.Storage.Redis.DB,
				KeyPrefix: cfg.Storage.Redis.KeyPrefix,
			},
		},
		Workers: ClientWorkers{ProfileRefreshInterval: cfg.Workers.ProfileRefreshInterval},
		Log:     ClientLog{File: cfg.Log.File},
	}

	return clientCfg, clientCfg.validate()
}
