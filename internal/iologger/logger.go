// Package iologger sets up the default slog logger from LogConfig.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gnames/ipnidb/pkg/config"
)

// LogFile is the name of the log file inside the log directory.
const LogFile = "ipnidb.log"

// logFile is the file opened by the last Init, nil when logs go to a
// standard stream.
var (
	mu      sync.Mutex
	logFile *os.File
)

// Init makes slog write to the configured destination. With "file"
// destination logs go to logDir/ipnidb.log. The file is truncated
// unless append is true, so commands that run for a long time (serve)
// can keep history while one-off commands start clean.
//
// Calling Init again for the same file keeps the open handle and its
// content. Any other previously opened file is closed.
func Init(logDir string, cfg config.LogConfig, append bool) error {
	mu.Lock()
	defer mu.Unlock()

	w, err := writer(logDir, cfg.Destination, append)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(handler(w, cfg)))
	return nil
}

// Close closes the log file, if any, and sends logs to stderr.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	return closeFile()
}

func writer(logDir, dest string, append bool) (io.Writer, error) {
	switch dest {
	case "stdout":
		return os.Stdout, closeFile()
	case "file":
	default:
		return os.Stderr, closeFile()
	}

	path := filepath.Join(logDir, LogFile)
	if logFile != nil && logFile.Name() == path {
		return logFile, nil
	}
	if err := closeFile(); err != nil {
		return nil, err
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if append {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, CreateLogFileError(path, err)
	}
	logFile = f
	return f, nil
}

func closeFile() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// handler returns JSON handler by default. "tint" is the text handler
// with source locations.
func handler(w io.Writer, cfg config.LogConfig) slog.Handler {
	opts := &slog.HandlerOptions{Level: level(cfg.Level)}
	switch cfg.Format {
	case "text":
		return slog.NewTextHandler(w, opts)
	case "tint":
		opts.AddSource = true
		return slog.NewTextHandler(w, opts)
	default:
		return slog.NewJSONHandler(w, opts)
	}
}

// level parses "debug", "info", "warn" or "error". Anything else is
// info.
func level(s string) slog.Level {
	var res slog.Level
	if err := res.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return res
}
