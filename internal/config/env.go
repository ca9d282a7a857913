package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Environment variables read by the CLI.
const (
	EnvDB    = "ARCADE_DB"     // SQLite database path
	EnvUser  = "ARCADE_USER"   // Player identity used for score records
	EnvPGDSN = "ARCADE_PG_DSN" // Postgres DSN of the hosted score backend
	EnvLog   = "ARCADE_LOG"    // Log file path
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// ArcadeDir returns ~/.arcade, or .arcade when the home directory is unknown.
func ArcadeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".arcade"
	}
	return filepath.Join(home, ".arcade")
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
