package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-clinic-client/internal/config"
	"github.com/MKhiriev/go-clinic-client/internal/crypto"
	"github.com/MKhiriev/go-clinic-client/internal/logger"
)

// ClientStorages groups the client-side storage into a single value that can
// be handed to the session layer.
type ClientStorages struct {
	// KeyValueStore is the configured backend, sealed when a seal key is set.
	KeyValueStore KeyValueStore
	// Session persists the token and user on top of KeyValueStore.
	Session *SessionStorage

	closers []io.Closer
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Connects to the configured backend. For SQLite the database file is
//     created if needed and pending migrations are applied; for Redis the
//     server is pinged.
//  2. Wraps the backend with [NewSealedKeyValueStore] when sealKey is set.
//  3. Builds the [SessionStorage] on top of it.
//
// Returns an error if the backend cannot be reached or migration fails.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, sealKey string, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Str("backend", cfg.Backend).Msg("creating new storages...")

	storages := &ClientStorages{}

	switch cfg.Backend {
	case config.BackendRedis:
		client, err := NewConnectRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, fmt.Errorf("redis connection error: %w", err)
		}
		storages.closers = append(storages.closers, client)
		storages.KeyValueStore = NewRedisKeyValueStore(client, cfg.Redis.KeyPrefix, logger)
	default:
		db, err := NewConnectSQLite(ctx, cfg.DB, logger)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
		if err := db.Migrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		storages.closers = append(storages.closers, db)
		storages.KeyValueStore = NewSQLiteKeyValueStore(db, logger)
	}

	if sealKey != "" {
		storages.KeyValueStore = NewSealedKeyValueStore(storages.KeyValueStore, crypto.NewSealer(sealKey))
	}
	storages.Session = NewSessionStorage(storages.KeyValueStore, logger)

	return storages, nil
}

// Close releases the backend connections.
func (c *ClientStorages) Close() error {
	var errs []error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
