// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/rko-cli/rko/constant"
	"github.com/rko-cli/rko/filesystem"
	"github.com/rko-cli/rko/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "RKO_CONFIG_PATH"

// ensureDir guarantees the existence of a directory at the specified path, creating it if necessary.
func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// The path can be overridden with the RKO_CONFIG_PATH environment variable.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.App))
}

// Cache resolves the absolute path to the application's persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.App))
}

// Logs resolves the absolute path to the directory used for application diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Downloads resolves the directory where fetched media is saved.
// The download.dir setting wins, then the user's Downloads folder, then the working directory.
func Downloads() string {
	if dir := viper.GetString(key.DownloadDir); dir != "" {
		return ensureDir(dir)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ensureDir(".")
	}
	return ensureDir(filepath.Join(home, "Downloads"))
}

// History resolves the absolute path to the JSON download history file.
func History() string {
	return filepath.Join(Config(), "history.json")
}

// HistoryDB resolves the absolute path to the SQLite download history database.
func HistoryDB() string {
	return filepath.Join(Config(), "history.db")
}

// Responses resolves the directory holding cached resolver responses.
func Responses() string {
	return ensureDir(filepath.Join(Cache(), "responses"))
}

// Queries resolves the absolute path to the recently resolved URL registry.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}

// Temp resolves a volatile filesystem path for transient application artifacts.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.App))
}
