package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/authkeeper/internal/flagx"
	"github.com/dmitrijs2005/authkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept both
// "90m" strings and integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP       string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC       string         `json:"endpoint_addr_grpc"`
	DatabaseDSN            string         `json:"database_dsn"`
	SecretKey              string         `json:"secret_key"`
	TokenValidityDuration  timex.Duration `json:"token_validity_duration"`
	TokenIssuer            string         `json:"token_issuer"`
	UserStore              string         `json:"user_store"`
	BlacklistBackend       string         `json:"blacklist_backend"`
	RedisURL               string         `json:"redis_url"`
	BlacklistPruneInterval timex.Duration `json:"blacklist_prune_interval"`
	LogLevel               string         `json:"log_level"`
	BcryptCost             int            `json:"bcrypt_cost"`
}

// parseJson overlays values from the JSON file named by -c/-config (or
// $AUTHKEEPER_CONFIG) onto config. Keys missing from the file leave the
// current value untouched. An unreadable or malformed file panics.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.TokenIssuer, c.TokenIssuer)
	setString(&config.UserStore, c.UserStore)
	setString(&config.BlacklistBackend, c.BlacklistBackend)
	setString(&config.RedisURL, c.RedisURL)
	setString(&config.LogLevel, c.LogLevel)

	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.BlacklistPruneInterval.Duration != 0 {
		config.BlacklistPruneInterval = c.BlacklistPruneInterval.Duration
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
