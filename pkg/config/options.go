package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseDriver sets the database engine.
// Valid values: "postgres", "mysql", "sqlite".
func OptDatabaseDriver(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Database.Driver", s) {
			c.Database.Driver = s
		}
	}
}

// OptDatabaseDSN sets a full connection string that overrides
// host, port, user, password, database and ssl_mode.
func OptDatabaseDSN(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database DSN", s) {
			c.Database.DSN = s
		}
	}
}

// OptDatabaseHost sets the database server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the database server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the database name (or sqlite file).
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseBatchSize sets the number of rows inserted per batch.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptImportURL sets the location of the IPNI archive.
func OptImportURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Import URL", s) {
			c.Import.URL = s
		}
	}
}

// OptImportDataDir sets a directory with unzipped TSV files, which
// disables download.
// Runtime-only field - not in ToOptions().
func OptImportDataDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Import Data Directory", s) {
			c.Import.DataDir = s
		}
	}
}

// OptImportForceDownload downloads the archive even if it is cached.
// Runtime-only field - not in ToOptions().
func OptImportForceDownload(b bool) Option {
	return func(c *Config) {
		c.Import.ForceDownload = b
	}
}

// OptImportKeepFiles keeps unzipped files after import.
// Runtime-only field - not in ToOptions().
func OptImportKeepFiles(b bool) Option {
	return func(c *Config) {
		c.Import.KeepFiles = b
	}
}

// OptImportReplace sets whether existing rows are removed before import.
// Runtime-only field - not in ToOptions().
func OptImportReplace(b bool) Option {
	return func(c *Config) {
		c.Import.Replace = b
	}
}

// OptServerPort sets the port of the REST API.
func OptServerPort(i int) Option {
	return func(c *Config) {
		if isValidPort("Server Port", i) {
			c.Server.Port = i
		}
	}
}

// OptServerUser sets the basic-auth user of the import endpoint.
func OptServerUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Server User", s) {
			c.Server.User = s
		}
	}
}

// OptServerPassword sets the basic-auth password of the import endpoint.
func OptServerPassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Server Password", s) {
			c.Server.Password = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for name parsing.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
