package tsv

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/ipnidb/pkg/errcode"
)

// MalformedError reports input that cannot be read as a table.
func MalformedError(line int, reason string) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ImportMalformedFileError,
		Msg:  "Malformed TSV data at line <em>%d</em>: %s",
		Vars: []any{line, reason},
		Err: fmt.Errorf("from %s: malformed tsv at line %d: %w",
			fn.Name(), line, errors.New(reason)),
	}
}
