package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-g string   gRPC health bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN
//	-s string   token HMAC secret key
//	-t int      token validity, minutes
//	-i string   token issuer
//	-u string   user store: memory | postgres
//	-b string   blacklist backend: memory | postgres | redis
//	-r string   Redis URL
//	-p int      blacklist prune interval, minutes (0 disables)
//	-l string   log level
//	-k int      bcrypt cost
//
// Unknown arguments are filtered out first so that -c/-config and flags
// belonging to other components do not cause parse errors.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-s", "-t", "-i", "-u", "-b", "-r", "-p", "-l", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run the HTTP API")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port for the gRPC health endpoint")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes)")

	fs.StringVar(&config.TokenIssuer, "i", config.TokenIssuer, "token issuer")
	fs.StringVar(&config.UserStore, "u", config.UserStore, "user store (memory|postgres)")
	fs.StringVar(&config.BlacklistBackend, "b", config.BlacklistBackend, "blacklist backend (memory|postgres|redis)")
	fs.StringVar(&config.RedisURL, "r", config.RedisURL, "redis URL")

	pruneInterval := fs.Int("p", int(config.BlacklistPruneInterval.Minutes()), "blacklist prune interval (in minutes)")

	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Minute-granular flags only override when given, so sub-minute values
	// from the JSON file survive.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
		case "p":
			config.BlacklistPruneInterval = time.Duration(*pruneInterval) * time.Minute
		}
	})
}
