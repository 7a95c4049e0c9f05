package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/quietfield/tomoplan/internal/storage/postgres"
	"github.com/quietfield/tomoplan/internal/storage/sqlite"
)

// IsPostgresConnString reports whether the given string looks like a
// PostgreSQL connection target rather than a filesystem path.
func IsPostgresConnString(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

// NewSQLiteStore returns a Provider backed by a local SQLite database file.
// A leading ~ in the path is expanded to the user's home directory.
func NewSQLiteStore(path string) Provider {
	return sqlite.NewStore(ExpandPath(path))
}

// NewPostgresStore returns a Provider backed by a PostgreSQL database.
func NewPostgresStore(connStr string) Provider {
	return postgres.New(connStr)
}

// ExpandPath expands a leading ~ to the current user's home directory. If
// the home directory cannot be determined the path is returned unchanged.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
