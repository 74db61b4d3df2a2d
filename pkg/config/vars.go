package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "ipnidb"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/ipnidb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for downloaded archives.
// Returns ~/.cache/ipnidb by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// DataDir returns the directory for local database files.
// Returns ~/.local/share/ipnidb by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/ipnidb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/ipnidb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// SQLitePath resolves the sqlite database file. A bare name without
// directory or extension goes to DataDir as <name>.sqlite, anything
// else is returned unchanged.
func SQLitePath(homeDir, database string) string {
	if filepath.Base(database) != database || filepath.Ext(database) != "" {
		return database
	}
	return filepath.Join(DataDir(homeDir), database+".sqlite")
}
