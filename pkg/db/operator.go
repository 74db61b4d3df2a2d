package db

import (
	"context"

	"github.com/gnames/ipnidb/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"
)

// Supported database drivers.
const (
	Postgres = "postgres"
	MySQL    = "mysql"
	SQLite   = "sqlite"
)

// Operator defines basic database management operations. It manages the
// connection lifecycle and exposes handles for high-level components
// (SchemaManager, Importer, Store).
type Operator interface {
	// Connect opens a connection to the configured database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes all connections.
	Close() error

	// Driver returns the name of the connected driver.
	Driver() string

	// GORM returns the ORM handle. It works for every driver.
	GORM() *gorm.DB

	// Pool returns the pgx pool for postgres and nil for other drivers.
	// Components use it for CopyFrom bulk inserts.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if any IPNI table exists.
	// Used to determine if schema creation should prompt for confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops IPNI tables, children first.
	DropAllTables(ctx context.Context) error
}
