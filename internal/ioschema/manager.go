// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"
	"fmt"

	"github.com/gnames/ipnidb/pkg/db"
	"github.com/gnames/ipnidb/pkg/lifecycle"
	"github.com/gnames/ipnidb/pkg/schema"
	"gorm.io/gorm"
)

// mysqlTableOptions makes identifiers and names case-sensitive in MySQL.
const mysqlTableOptions = "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 " +
	"COLLATE=utf8mb4_bin"

// manager implements the lifecycle.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create creates the database schema using GORM AutoMigrate.
// Also applies collation settings for correct scientific name sorting.
func (m *manager) Create(ctx context.Context) error {
	gormDB, err := m.gorm(ctx)
	if err != nil {
		return err
	}

	if err = schema.Migrate(gormDB); err != nil {
		return CreateSchemaError(err)
	}

	return m.setCollation(ctx)
}

// Migrate updates the database schema to the latest version
// using GORM AutoMigrate.
func (m *manager) Migrate(ctx context.Context) error {
	gormDB, err := m.gorm(ctx)
	if err != nil {
		return err
	}

	if err = schema.Migrate(gormDB); err != nil {
		return MigrateSchemaError(err)
	}
	return nil
}

func (m *manager) gorm(ctx context.Context) (*gorm.DB, error) {
	gormDB := m.operator.GORM()
	if gormDB == nil {
		return nil, NotConnectedError()
	}
	gormDB = gormDB.WithContext(ctx)
	if m.operator.Driver() == db.MySQL {
		gormDB = gormDB.Set("gorm:table_options", mysqlTableOptions)
	}
	return gormDB, nil
}

// setCollation sets "C" collation on postgres name columns, so sorting
// and comparison of scientific names is byte-wise. MySQL gets binary
// collation through table options, sqlite compares bytes by default.
func (m *manager) setCollation(ctx context.Context) error {
	if m.operator.Driver() != db.Postgres {
		return nil
	}

	type columnDef struct {
		table, column string
		varchar       int
	}
	columns := []columnDef{
		{schema.NameTable, "scientific_name", 255},
		{schema.NameTable, "canonical", 255},
		{schema.NameTable, "canonical_full", 255},
	}

	qStr := `ALTER TABLE %s ALTER COLUMN %s TYPE VARCHAR(%d) COLLATE "C"`
	for _, col := range columns {
		q := fmt.Sprintf(qStr, col.table, col.column, col.varchar)
		if err := m.operator.GORM().WithContext(ctx).Exec(q).Error; err != nil {
			return CollationError(col.table, col.column, err)
		}
	}
	return nil
}
