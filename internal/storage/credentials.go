package storage

import (
	"net/url"
	"os"
	"strings"

	"github.com/quietfield/tomoplan/internal/constants"
	"github.com/quietfield/tomoplan/internal/keyring"
	"github.com/quietfield/tomoplan/internal/logger"
)

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries a password inline. Those are rejected at startup; credentials
// belong in the environment, .pgpass, or the OS keyring.
func HasEmbeddedCredentials(connStr string) bool {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		if u.User != nil {
			if _, set := u.User.Password(); set {
				return true
			}
		}
		return false
	}

	// DSN format: space-separated key=value pairs
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], "password") {
			return true
		}
	}
	return false
}

// ResolveConnectionString returns the connection string to use for
// PostgreSQL: the environment variable wins, then the OS keyring, then the
// string given on the command line.
func ResolveConnectionString(flagValue string) string {
	if env := os.Getenv(constants.DBConnectionEnvVar); env != "" {
		return env
	}
	if stored, err := keyring.GetConnectionString(); err == nil && stored != "" {
		return stored
	} else if err != nil && err != keyring.ErrNotFound {
		logger.Debug("keyring lookup failed", "error", err)
	}
	return flagValue
}
