package lifecycle

import (
	"context"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate to handle both initial schema creation and
// migrations. Schema management is idempotent - safe to run multiple times.
type SchemaManager interface {
	// Create creates the schema using GORM AutoMigrate and applies
	// collation settings of the connected dialect.
	Create(ctx context.Context) error

	// Migrate updates the schema to the latest version of the models.
	Migrate(ctx context.Context) error
}
