package iofetch

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/ipnidb/pkg/errcode"
)

// DownloadError is returned when the archive cannot be downloaded.
func DownloadError(url string, err error) error {
	msg := `Cannot download IPNI archive from <em>%s</em>

<em>How to fix:</em>
  1. Check your internet connection
  2. Set another location with <em>IPNIDB_IMPORT_URL</em>
  3. Download the archive manually, unzip it and use <em>--data-dir</em>`
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FetchDownloadError,
		Msg:  msg,
		Vars: []any{url},
		Err:  fmt.Errorf("from %s: download %s: %w", fn.Name(), url, err),
	}
}

// UnzipError is returned when the archive cannot be extracted.
func UnzipError(path string, err error) error {
	msg := `Cannot unzip <em>%s</em>

The file might be truncated, run import with <em>--force-download</em>`
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FetchUnzipError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: unzip %s: %w", fn.Name(), path, err),
	}
}
