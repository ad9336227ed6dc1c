// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/url"
	"strings"
)

// minSealKeyLength is the shortest accepted APP_SEAL_KEY.
const minSealKeyLength = 8

// validate checks the merged [StructuredConfig] before it is projected into
// the client view. Only structural problems are rejected here; backend
// specific rules live in [ClientConfig.validate].
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.Redis.DB < 0 {
		return ErrInvalidStorageConfigs
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}
	if !isValidBaseURL(cfg.Adapter.HTTPAddress) {
		return ErrInvalidAdapterConfigs
	}

	switch cfg.Storage.Backend {
	case BackendSQLite:
		if cfg.Storage.DB.DSN == "" {
			return ErrInvalidStorageConfigs
		}
	case BackendRedis:
		if cfg.Storage.Redis.Address == "" {
			return ErrInvalidStorageConfigs
		}
	default:
		return ErrInvalidStorageConfigs
	}

	if cfg.Workers.ProfileRefreshInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.SealKey != "" && len(cfg.App.SealKey) < minSealKeyLength {
		return ErrInvalidAppConfigs
	}

	return nil
}

func isValidBaseURL(raw string) bool {
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Host != ""
}
