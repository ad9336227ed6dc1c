package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Fields are mapped via the `env` and `envPrefix` tags on
// [StructuredConfig], so STORAGE_REDIS_ADDRESS lands in
// cfg.Storage.Redis.Address.
//
// The backend name is case-insensitive and surrounding blanks in addresses
// are dropped, since both usually come from hand-edited shell profiles.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	cfg.Adapter.HTTPAddress = strings.TrimSpace(cfg.Adapter.HTTPAddress)
	cfg.Storage.Redis.Address = strings.TrimSpace(cfg.Storage.Redis.Address)

	return nil
}
