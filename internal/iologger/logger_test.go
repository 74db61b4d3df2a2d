package iologger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/ipnidb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		inp  string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}
	for _, v := range tests {
		assert.Equal(t, v.want, level(v.inp), v.inp)
	}
}

func TestHandler(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"json", `"msg":"hello"`},
		{"text", `msg=hello`},
		{"tint", `source=`},
		{"other", `"msg":"hello"`},
	}
	for _, v := range tests {
		var buf bytes.Buffer
		cfg := config.LogConfig{Format: v.format, Level: "info"}
		slog.New(handler(&buf, cfg)).Info("hello")
		assert.Contains(t, buf.String(), v.want, v.format)
	}
}

func TestInitFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() {
		_ = Close()
		slog.SetDefault(prev)
	})

	dir := t.TempDir()
	path := filepath.Join(dir, LogFile)
	cfg := config.LogConfig{Format: "json", Level: "info", Destination: "file"}

	require.NoError(t, Init(dir, cfg, true))
	slog.Info("first")
	require.NoError(t, Init(dir, cfg, true))
	slog.Info("second")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")
	assert.Contains(t, string(data), "second")

	require.NoError(t, Close())
	require.NoError(t, Init(dir, cfg, false))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "first")
}

func TestInitTwice(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() {
		_ = Close()
		slog.SetDefault(prev)
	})

	dir := t.TempDir()
	path := filepath.Join(dir, LogFile)
	cfg := config.LogConfig{Format: "json", Level: "info", Destination: "file"}

	require.NoError(t, Init(dir, cfg, false))
	slog.Info("before reconfig")
	first := logFile

	cfg.Format = "text"
	require.NoError(t, Init(dir, cfg, false))
	slog.Info("after reconfig")
	assert.Same(t, first, logFile)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "before reconfig")
	assert.Contains(t, string(data), "msg=\"after reconfig\"")

	cfg.Destination = "stderr"
	require.NoError(t, Init(dir, cfg, false))
	assert.Nil(t, logFile)
	_, err = first.Write([]byte("x"))
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestInitBadDir(t *testing.T) {
	cfg := config.LogConfig{Destination: "file"}
	err := Init(filepath.Join(t.TempDir(), "missing"), cfg, false)
	assert.Error(t, err)
}
