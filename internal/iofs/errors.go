package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/ipnidb/pkg/errcode"
)

func CreateDirError(dir string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  "Cannot create <em>%s</em>",
		Vars: []any{dir},
		Err:  fmt.Errorf("from %s: cannot create directory: %w", fn.Name(), err),
	}
}

func CopyFileError(file string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CopyFileError,
		Msg:  "Cannot write config file to <em>%s</em>",
		Vars: []any{file},
		Err:  fmt.Errorf("from %s: cannot copy file: %w", fn.Name(), err),
	}
}

func ReadFileError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  "Cannot read <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn.Name(), path, err),
	}
}
