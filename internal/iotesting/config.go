// Package iotesting provides shared test utilities for database and
// import tests. This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gnames/ipnidb/internal/iodb"
	"github.com/gnames/ipnidb/pkg/config"
	"github.com/gnames/ipnidb/pkg/db"
)

const (
	// TestDatabaseName is the database name used for all server-based
	// integration tests. Tests never run against production databases.
	TestDatabaseName = "ipnidb_test"
)

// GetTestConfig returns a configuration for postgres or mysql
// integration tests. Driver and credentials come from IPNIDB_TEST_*
// environment variables, the database name is always TestDatabaseName.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig()
//	}
func GetTestConfig() *config.Config {
	cfg := config.New()
	opts := []config.Option{
		config.OptDatabaseDriver(envOr("IPNIDB_TEST_DRIVER", db.Postgres)),
		config.OptDatabaseHost(envOr("IPNIDB_TEST_HOST", "localhost")),
		config.OptDatabaseUser(envOr("IPNIDB_TEST_USER", "postgres")),
		config.OptDatabasePassword(envOr("IPNIDB_TEST_PASSWORD", "postgres")),
		config.OptDatabaseDatabase(TestDatabaseName),
		config.OptLogDestination("stderr"),
	}
	if p, err := strconv.Atoi(os.Getenv("IPNIDB_TEST_PORT")); err == nil {
		opts = append(opts, config.OptDatabasePort(p))
	}
	cfg.Update(opts)
	return cfg
}

// SQLiteConfig returns a configuration that keeps the database in a
// temporary file removed after the test.
func SQLiteConfig(t *testing.T) *config.Config {
	t.Helper()

	home := t.TempDir()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(home),
		config.OptDatabaseDriver(db.SQLite),
		config.OptDatabaseDatabase(filepath.Join(home, "ipni_test.sqlite")),
		config.OptDatabaseBatchSize(2),
		config.OptJobsNumber(2),
		config.OptLogDestination("stderr"),
	})
	return cfg
}

// Connect opens the database of cfg and closes it when the test ends.
func Connect(t *testing.T, cfg *config.Config) db.Operator {
	t.Helper()

	op := iodb.NewOperator()
	if err := op.Connect(context.Background(), &cfg.Database); err != nil {
		t.Fatalf("Failed to connect to %s: %v", cfg.Database.Driver, err)
	}
	t.Cleanup(func() { op.Close() })
	return op
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
