package ioimport

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/ipnidb/pkg/errcode"
)

// FileNotFoundError is returned when one of the IPNI files is missing.
func FileNotFoundError(path string, err error) error {
	msg := `Cannot open IPNI file <em>%s</em>

<em>How to fix:</em>
  1. Check that the directory contains Name.tsv, Reference.tsv,
     Taxon.tsv, NameRelation.tsv and TypeMaterial.tsv
  2. Run without <em>--data-dir</em> to download the archive`
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ImportFileNotFoundError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: cannot open %s: %w", fn.Name(), path, err),
	}
}

// MissingColumnsError is returned when a file lacks required columns.
func MissingColumnsError(file string, cols []string) error {
	list := strings.Join(cols, ", ")
	return &gn.Error{
		Code: errcode.ImportMalformedFileError,
		Msg:  "File <em>%s</em> misses required columns: <em>%s</em>",
		Vars: []any{file, list},
		Err:  fmt.Errorf("%s: missing columns %s", file, list),
	}
}

// EmptyValueError is returned when a row has no value in a required
// column.
func EmptyValueError(file string, row int, col string) error {
	return &gn.Error{
		Code: errcode.ImportMalformedFileError,
		Msg:  "File <em>%s</em>, row <em>%d</em>: empty <em>%s</em>",
		Vars: []any{file, row, col},
		Err:  fmt.Errorf("%s: row %d has empty %s", file, row, col),
	}
}

// InsertError is returned when writing fails. The import transaction
// is rolled back at this point.
func InsertError(table string, err error) error {
	msg := `Import into <em>%s</em> failed, all changes were rolled back

<em>Possible causes:</em>
  - A row refers to a missing name or reference
  - Duplicate identifiers in the source file
  - The import was cancelled`
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ImportInsertError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("from %s: insert into %s: %w", fn.Name(), table, err),
	}
}

// CancelledError is returned when the import context is cancelled.
func CancelledError(err error) error {
	return &gn.Error{
		Code: errcode.UnknownError,
		Msg:  "Import was cancelled, all changes were rolled back",
		Err:  fmt.Errorf("import cancelled: %w", err),
	}
}
