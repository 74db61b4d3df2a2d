// Package config provides configuration management for ipnidb.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid
// - All mutations go through Option functions
// - Invalid options are rejected with gn.Warn(), config stays valid
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: driver, dsn, host, port, user, password, database, ssl_mode,
//     batch_size
//   - Import: url
//   - Server: port, user, password
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Import.DataDir, ForceDownload, KeepFiles, Replace (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use IPNIDB_ prefix with underscores for nesting:
//
//	IPNIDB_DATABASE_DRIVER=mysql
//	IPNIDB_DATABASE_HOST=localhost
//	IPNIDB_SERVER_PORT=8000
//	IPNIDB_LOG_LEVEL=info
package config

import (
	"runtime"
)

// IPNIURL is the location of the IPNI archive hosted by GBIF.
const IPNIURL = "https://hosted-datasets.gbif.org/datasets/ipni.zip"

// Config represents the complete ipnidb configuration.
type Config struct {
	// Database contains connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Import contains settings of the import command and endpoint.
	Import ImportConfig `mapstructure:"import" yaml:"import"`

	// Server contains settings of the REST API.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for name parsing.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `yaml:"-"`
}

// DatabaseConfig contains database connection parameters.
type DatabaseConfig struct {
	// Driver is one of "postgres", "mysql", "sqlite".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// DSN, when given, overrides all other connection fields.
	DSN string `mapstructure:"dsn" yaml:"dsn"`

	// Host is the database server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the database server port. Zero means the driver's default.
	Port int `mapstructure:"port" yaml:"port"`

	User string `mapstructure:"user" yaml:"user"`

	Password string `mapstructure:"password" yaml:"password"`

	// Database is the database name. For sqlite it is a file path; a bare
	// name is placed into the data directory (see SQLitePath).
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the postgres SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize is the number of rows inserted per batch during import.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// ImportConfig contains settings of the import.
type ImportConfig struct {
	// URL of the zipped IPNI TSV export.
	URL string `mapstructure:"url" yaml:"url"`

	// DataDir points to a directory with already unzipped TSV files.
	// When empty, the archive is downloaded from URL.
	DataDir string `mapstructure:"-" yaml:"-"`

	// ForceDownload downloads the archive even if it is cached.
	ForceDownload bool `mapstructure:"-" yaml:"-"`

	// KeepFiles keeps unzipped files in the cache after import.
	KeepFiles bool `mapstructure:"-" yaml:"-"`

	// Replace removes existing rows before inserting new ones.
	// Removal happens inside the import transaction.
	Replace bool `mapstructure:"-" yaml:"-"`
}

// ServerConfig contains REST API settings.
type ServerConfig struct {
	Port int `mapstructure:"port" yaml:"port"`

	// User and Password protect the import endpoint with basic auth.
	User     string `mapstructure:"user" yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Driver:    "sqlite",
			Host:      "localhost",
			User:      "postgres",
			Password:  "postgres",
			Database:  "ipni",
			SSLMode:   "disable",
			BatchSize: 5_000,
		},
		Import: ImportConfig{
			URL:     IPNIURL,
			Replace: true,
		},
		Server: ServerConfig{
			Port:     8000,
			User:     "admin",
			Password: "admin",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
