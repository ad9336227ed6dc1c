package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Flag names registered by [RegisterFlags].
const (
	FlagConfig         = "config"
	FlagServer         = "server"
	FlagRequestTimeout = "request-timeout"
	FlagStorage        = "storage"
	FlagDB             = "db"
	FlagRedisAddress   = "redis-address"
	FlagSealKey        = "seal-key"
	FlagRefresh        = "profile-refresh-interval"
	FlagLogFile        = "log-file"
)

// RegisterFlags defines all configuration flags on fs. It is meant to be
// called on the persistent flag set of the CLI root command.
//
// Flags:
//
//	-c/--config                 json file path with configs
//	-s/--server                 API base url (e.g. http://host:8000/api/v1)
//	--request-timeout           request timeout (e.g. "10s")
//	--storage                   storage backend: sqlite or redis
//	-d/--db                     SQLite DSN
//	--redis-address             Redis address host:port
//	--seal-key                  secret for sealing the stored session
//	--profile-refresh-interval  profile refresh period (e.g. "5m")
//	--log-file                  log file path
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagConfig, "c", "", "JSON config file path")
	fs.StringP(FlagServer, "s", "", "API base url")
	fs.Duration(FlagRequestTimeout, 0, "Request timeout (e.g., 10s)")
	fs.String(FlagStorage, "", "Session storage backend: sqlite or redis")
	fs.StringP(FlagDB, "d", "", "SQLite DSN")
	fs.String(FlagRedisAddress, "", "Redis address host:port")
	fs.String(FlagSealKey, "", "Secret used to seal the stored session")
	fs.Duration(FlagRefresh, 0, "Profile refresh interval (e.g., 5m)")
	fs.String(FlagLogFile, "", "Log file path")
}

// parseFlags reads the values registered by [RegisterFlags] from an already
// parsed flag set. Flags that were never defined on fs are left zero.
func parseFlags(fs *pflag.FlagSet) (*StructuredConfig, error) {
	var (
		cfg StructuredConfig
		err error
	)

	get := func(name string, dst *string) {
		if err != nil || fs.Lookup(name) == nil {
			return
		}
		*dst, err = fs.GetString(name)
	}

	get(FlagConfig, &cfg.JSONFilePath)
	get(FlagServer, &cfg.Adapter.HTTPAddress)
	get(FlagStorage, &cfg.Storage.Backend)
	get(FlagDB, &cfg.Storage.DB.DSN)
	get(FlagRedisAddress, &cfg.Storage.Redis.Address)
	get(FlagSealKey, &cfg.App.SealKey)
	get(FlagLogFile, &cfg.Log.File)

	if err == nil && fs.Lookup(FlagRequestTimeout) != nil {
		cfg.Adapter.RequestTimeout, err = fs.GetDuration(FlagRequestTimeout)
	}
	if err == nil && fs.Lookup(FlagRefresh) != nil {
		cfg.Workers.ProfileRefreshInterval, err = fs.GetDuration(FlagRefresh)
	}

	if err != nil {
		return nil, fmt.Errorf("error reading flags: %w", err)
	}

	return &cfg, nil
}
