package iodb

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/ipnidb/pkg/config"
	"github.com/gnames/ipnidb/pkg/errcode"
)

// ConnectionError is returned when database connection fails.
func ConnectionError(cfg *config.DatabaseConfig, err error) error {
	msg := `<title>Database Connection Failed</title>

<warning>Could not connect to <em>%s</em> database.</warning>

<em>Possible causes:</em>
  - Database server is not running
  - Database configuration is incorrect
  - Network connectivity issues

<em>How to fix:</em>
  1. Check your configuration file:
     <em>~/.config/ipnidb/config.yaml</em>
  2. Review connection settings:
     Host: %s
     Port: %d
     Database: %s
     User: %s`
	vars := []any{
		cfg.Driver, cfg.Host, port(cfg), cfg.Database, cfg.User,
	}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: failed to connect to %s %s/%s: %w",
			fn.Name(), cfg.Driver, cfg.Host, cfg.Database, err),
	}
}

// UnknownDriverError is returned for drivers other than postgres,
// mysql and sqlite.
func UnknownDriverError(driver string) error {
	return &gn.Error{
		Code: errcode.DBUnknownDriverError,
		Msg:  "Database driver <em>%s</em> is not supported",
		Vars: []any{driver},
		Err:  fmt.Errorf("unknown database driver %q", driver),
	}
}

// NotConnectedError is returned when an operation is attempted before
// Connect.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database operation attempted without connection",
		Err:  fmt.Errorf("not connected to database"),
	}
}

// TableCheckError is returned when listing tables fails.
func TableCheckError(err error) error {
	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  "Could not verify database state",
		Err:  fmt.Errorf("failed to check database tables: %w", err),
	}
}

// DropTableError is returned when a table cannot be dropped.
func DropTableError(table string, err error) error {
	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  "Cannot drop table <em>%s</em>",
		Vars: []any{table},
		Err:  fmt.Errorf("failed to drop table %s: %w", table, err),
	}
}
