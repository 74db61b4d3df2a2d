// Package iodb implements database operations for postgres, mysql and
// sqlite. This is an impure I/O package that implements contracts
// defined in pkg/.
package iodb

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"slices"

	"github.com/glebarez/sqlite"
	"github.com/gnames/ipnidb/pkg/config"
	"github.com/gnames/ipnidb/pkg/db"
	"github.com/gnames/ipnidb/pkg/schema"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// operator implements db.Operator. Postgres connections go through a
// pgx pool shared with GORM, other drivers use GORM only.
type operator struct {
	driver string
	pool   *pgxpool.Pool
	sqlDB  *sql.DB
	gormDB *gorm.DB
}

// NewOperator creates a new database operator (without connecting).
func NewOperator() db.Operator {
	return &operator{}
}

// Connect opens the database described by cfg and verifies the
// connection.
func (o *operator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	var err error
	dsn := DSN(cfg)
	gcfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}

	switch cfg.Driver {
	case db.Postgres:
		err = o.connectPostgres(ctx, dsn, gcfg)
	case db.MySQL:
		o.gormDB, err = gorm.Open(mysql.Open(dsn), gcfg)
	case db.SQLite:
		if cfg.DSN == "" {
			if err = os.MkdirAll(filepath.Dir(cfg.Database), 0755); err != nil {
				return ConnectionError(cfg, err)
			}
		}
		o.gormDB, err = gorm.Open(sqlite.Open(dsn), gcfg)
	default:
		return UnknownDriverError(cfg.Driver)
	}
	if err != nil {
		o.Close()
		return ConnectionError(cfg, err)
	}

	if o.sqlDB == nil {
		if o.sqlDB, err = o.gormDB.DB(); err != nil {
			return ConnectionError(cfg, err)
		}
	}
	if err = o.sqlDB.PingContext(ctx); err != nil {
		o.Close()
		return ConnectionError(cfg, err)
	}

	o.driver = cfg.Driver
	return nil
}

func (o *operator) connectPostgres(
	ctx context.Context,
	dsn string,
	gcfg *gorm.Config,
) error {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return err
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = 0
	poolConfig.MaxConnIdleTime = 0

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return err
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return err
	}

	o.pool = pool
	o.sqlDB = stdlib.OpenDBFromPool(pool)
	o.gormDB, err = gorm.Open(
		postgres.New(postgres.Config{Conn: o.sqlDB}),
		gcfg,
	)
	return err
}

// Close releases all database connections.
func (o *operator) Close() error {
	if o.sqlDB != nil {
		o.sqlDB.Close()
		o.sqlDB = nil
	}
	if o.pool != nil {
		o.pool.Close()
		o.pool = nil
	}
	o.gormDB = nil
	return nil
}

func (o *operator) Driver() string {
	return o.driver
}

func (o *operator) GORM() *gorm.DB {
	return o.gormDB
}

// Pool returns the pgx pool, it is nil unless the driver is postgres.
func (o *operator) Pool() *pgxpool.Pool {
	return o.pool
}

// TableExists checks if a table exists in the current database.
func (o *operator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if o.gormDB == nil {
		return false, NotConnectedError()
	}
	m := o.gormDB.WithContext(ctx).Migrator()
	return m.HasTable(tableName), nil
}

// HasTables checks if the database contains any of IPNI tables.
func (o *operator) HasTables(ctx context.Context) (bool, error) {
	if o.gormDB == nil {
		return false, NotConnectedError()
	}

	tables, err := o.gormDB.WithContext(ctx).Migrator().GetTables()
	if err != nil {
		return false, TableCheckError(err)
	}
	for _, v := range schema.Tables() {
		if slices.Contains(tables, v) {
			return true, nil
		}
	}
	return false, nil
}

// DropAllTables drops IPNI tables, children first.
func (o *operator) DropAllTables(ctx context.Context) error {
	if o.gormDB == nil {
		return NotConnectedError()
	}

	tables := schema.Tables()
	slices.Reverse(tables)
	m := o.gormDB.WithContext(ctx).Migrator()
	for _, table := range tables {
		if err := m.DropTable(table); err != nil {
			return DropTableError(table, err)
		}
	}
	return nil
}
