package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/gnames/ipnidb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "ipnidb"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "ipnidb"),
		},
		{
			msg: "data dir",
			fn:  config.DataDir,
			res: filepath.Join(tempHome, ".local", "share", "ipnidb"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "ipnidb", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "ipnidb", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestSQLitePath(t *testing.T) {
	home := "/home/user"
	tests := []struct {
		msg, db, res string
	}{
		{"bare name", "ipni", "/home/user/.local/share/ipnidb/ipni.sqlite"},
		{"with extension", "ipni.db", "ipni.db"},
		{"relative path", "data/ipni", "data/ipni"},
		{"absolute path", "/tmp/ipni.sqlite", "/tmp/ipni.sqlite"},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, config.SQLitePath(home, v.db), v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()
	require.NotNil(t, cfg)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "", cfg.Database.DSN)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 0, cfg.Database.Port)
	assert.Equal(t, "ipni", cfg.Database.Database)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 5_000, cfg.Database.BatchSize)

	assert.Equal(t, config.IPNIURL, cfg.Import.URL)
	assert.True(t, cfg.Import.Replace)
	assert.False(t, cfg.Import.ForceDownload)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "admin", cfg.Server.User)
	assert.Equal(t, "admin", cfg.Server.Password)

	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "file", cfg.Log.Destination)

	assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
}

func TestOptionDatabaseDriver(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets postgres", "postgres", "postgres"},
		{"sets mysql", "mysql", "mysql"},
		{"normalizes case", " MySQL ", "mysql"},
		{"ignores unknown", "oracle", "sqlite"},
		{"ignores empty", "", "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDatabaseDriver(tt.input)})
			assert.Equal(t, tt.expected, cfg.Database.Driver)
		})
	}
}

func TestOptionDatabaseHost(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid host",
			input:    "db.example.com",
			expected: "db.example.com",
		},
		{
			name:     "trims whitespace",
			input:    "  db.example.com  ",
			expected: "db.example.com",
		},
		{
			name:     "ignores empty string",
			input:    "",
			expected: "localhost",
		},
		{
			name:     "ignores whitespace-only",
			input:    "   ",
			expected: "localhost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseHost(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.Host)
		})
	}
}

func TestOptionPorts(t *testing.T) {
	tests := []struct {
		name   string
		input  int
		dbPort int
		srv    int
	}{
		{"sets valid port", 3306, 3306, 3306},
		{"ignores zero", 0, 0, 8000},
		{"ignores negative", -100, 0, 8000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{
				config.OptDatabasePort(tt.input),
				config.OptServerPort(tt.input),
			})
			assert.Equal(t, tt.dbPort, cfg.Database.Port)
			assert.Equal(t, tt.srv, cfg.Server.Port)
		})
	}

	cfg := config.New()
	cfg.Update([]config.Option{config.OptServerPort(70000)})
	assert.Equal(t, 8000, cfg.Server.Port)
}

func TestOptionDatabaseSSLMode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets disable", "disable", "disable"},
		{"sets require", "require", "require"},
		{"sets verify-full", "verify-full", "verify-full"},
		{"normalizes to lowercase", "REQUIRE", "require"},
		{"ignores invalid value", "invalid", "disable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseSSLMode(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.SSLMode)
		})
	}
}

func TestOptionLog(t *testing.T) {
	tests := []struct {
		name   string
		opt    config.Option
		level  string
		format string
		dest   string
	}{
		{"debug level", config.OptLogLevel("DEBUG"), "debug", "json", "file"},
		{"unknown level", config.OptLogLevel("trace"), "info", "json", "file"},
		{"text format", config.OptLogFormat("text"), "info", "text", "file"},
		{"unknown format", config.OptLogFormat("xml"), "info", "json", "file"},
		{"stderr", config.OptLogDestination("stderr"), "info", "json", "stderr"},
		{"stdin", config.OptLogDestination("stdin"), "info", "json", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt})
			assert.Equal(t, tt.level, cfg.Log.Level)
			assert.Equal(t, tt.format, cfg.Log.Format)
			assert.Equal(t, tt.dest, cfg.Log.Destination)
		})
	}
}

func TestOptionBatchSize(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"sets valid batch size", 10000, 10000},
		{"ignores zero", 0, 5_000},
		{"ignores negative", -1000, 5_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseBatchSize(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.BatchSize)
		})
	}
}

func TestOptionImport(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptImportDataDir(" /tmp/ipni "),
		config.OptImportForceDownload(true),
		config.OptImportKeepFiles(true),
		config.OptImportReplace(false),
		config.OptImportURL(""),
	})
	assert.Equal(t, "/tmp/ipni", cfg.Import.DataDir)
	assert.True(t, cfg.Import.ForceDownload)
	assert.True(t, cfg.Import.KeepFiles)
	assert.False(t, cfg.Import.Replace)
	assert.Equal(t, config.IPNIURL, cfg.Import.URL)
}

func TestMultipleOptions(t *testing.T) {
	t.Run("applies multiple options in order", func(t *testing.T) {
		cfg := config.New()

		opts := []config.Option{
			config.OptDatabaseDriver("mysql"),
			config.OptDatabaseHost("custom.host.com"),
			config.OptDatabasePort(3306),
			config.OptDatabaseUser("myuser"),
			config.OptLogLevel("debug"),
			config.OptJobsNumber(16),
		}

		cfg.Update(opts)

		assert.Equal(t, "mysql", cfg.Database.Driver)
		assert.Equal(t, "custom.host.com", cfg.Database.Host)
		assert.Equal(t, 3306, cfg.Database.Port)
		assert.Equal(t, "myuser", cfg.Database.User)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, 16, cfg.JobsNumber)

		assert.Equal(t, "postgres", cfg.Database.Password)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("later options override earlier ones", func(t *testing.T) {
		cfg := config.New()

		opts := []config.Option{
			config.OptDatabaseHost("first.host.com"),
			config.OptDatabaseHost("second.host.com"),
		}

		cfg.Update(opts)

		assert.Equal(t, "second.host.com", cfg.Database.Host)
	})
}

func TestToOptions(t *testing.T) {
	t.Run("converts config to options correctly", func(t *testing.T) {
		original := config.New()
		original.Update([]config.Option{
			config.OptDatabaseDriver("postgres"),
			config.OptDatabaseDSN("postgres://u:p@db/ipni"),
			config.OptDatabaseHost("test.host.com"),
			config.OptDatabasePort(5433),
			config.OptDatabaseUser("testuser"),
			config.OptDatabasePassword("testpass"),
			config.OptDatabaseDatabase("testdb"),
			config.OptDatabaseSSLMode("require"),
			config.OptDatabaseBatchSize(10000),
			config.OptImportURL("http://localhost/ipni.zip"),
			config.OptServerPort(9000),
			config.OptServerUser("root"),
			config.OptServerPassword("secret"),
			config.OptLogLevel("debug"),
			config.OptLogFormat("text"),
			config.OptLogDestination("stdout"),
			config.OptJobsNumber(8),
		})

		newCfg := config.New()
		newCfg.Update(original.ToOptions())

		assert.Equal(t, original.Database, newCfg.Database)
		assert.Equal(t, original.Import.URL, newCfg.Import.URL)
		assert.Equal(t, original.Server, newCfg.Server)
		assert.Equal(t, original.Log, newCfg.Log)
		assert.Equal(t, original.JobsNumber, newCfg.JobsNumber)
	})

	t.Run("excludes runtime-only fields", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptHomeDir("/custom/home"),
			config.OptImportDataDir("/data"),
			config.OptImportKeepFiles(true),
			config.OptImportReplace(false),
		})

		newCfg := config.New()
		newCfg.Update(cfg.ToOptions())

		assert.Equal(t, "", newCfg.HomeDir)
		assert.Equal(t, "", newCfg.Import.DataDir)
		assert.False(t, newCfg.Import.KeepFiles)
		assert.True(t, newCfg.Import.Replace)
	})
}
