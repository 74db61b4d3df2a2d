package iologger

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/ipnidb/pkg/errcode"
)

// CreateLogFileError is returned when the log file cannot be opened.
func CreateLogFileError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  "Cannot create log file <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: cannot create log file: %w", fn.Name(), err),
	}
}
