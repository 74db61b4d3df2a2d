package iostore

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/ipnidb/pkg/errcode"
	"gorm.io/gorm"
)

// NotFoundError is returned when a row with the given id is absent.
func NotFoundError(table string, id any) error {
	return &gn.Error{
		Code: errcode.StoreNotFoundError,
		Msg:  "Record <em>%v</em> not found in <em>%s</em>",
		Vars: []any{id, table},
		Err:  fmt.Errorf("%s: id %v not found", table, id),
	}
}

// ValidationError is returned when input breaks a constraint that can be
// checked before writing.
func ValidationError(msg string, vars ...any) error {
	return &gn.Error{
		Code: errcode.StoreValidationError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("validation: "+msg, vars...),
	}
}

// ConflictError is returned for duplicate keys and for deletions of
// rows that other rows still refer to.
func ConflictError(msg string, vars ...any) error {
	return &gn.Error{
		Code: errcode.StoreConflictError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("conflict: "+msg, vars...),
	}
}

// insertError reports a duplicate key that slipped past the existence
// check, for example from a concurrent insert, as a conflict.
func insertError(table string, id any, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ConflictError(
			"Record <em>%v</em> already exists in <em>%s</em>",
			id, table,
		)
	}
	return QueryError(table, err)
}

// QueryError wraps unexpected database failures.
func QueryError(table string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg:  "Database query on <em>%s</em> failed",
		Vars: []any{table},
		Err:  fmt.Errorf("from %s: query on %s: %w", fn.Name(), table, err),
	}
}
