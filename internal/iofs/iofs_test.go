package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/ipnidb/pkg/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirs(t *testing.T) {
	home := t.TempDir()

	// repeated calls are fine
	for range 2 {
		require.NoError(t, EnsureDirs(home))
	}

	for _, v := range []string{
		filepath.Join(home, ".config", "ipnidb"),
		filepath.Join(home, ".cache", "ipnidb"),
		filepath.Join(home, ".local", "share", "ipnidb"),
		filepath.Join(home, ".local", "share", "ipnidb", "logs"),
	} {
		info, err := os.Stat(v)
		require.NoError(t, err, v)
		assert.True(t, info.IsDir(), v)
	}
}

func TestEnsureDirsError(t *testing.T) {
	home := t.TempDir()
	// a file where a directory should be
	require.NoError(t, os.WriteFile(filepath.Join(home, ".config"), nil, 0644))
	assert.Error(t, EnsureDirs(home))
}

func TestEnsureConfigFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, EnsureDirs(home))
	path := filepath.Join(home, ".config", "ipnidb", "config.yaml")

	created, err := EnsureConfigFile(home)
	require.NoError(t, err)
	assert.True(t, created)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, templates.ConfigYAML, string(data))
	assert.Contains(t, string(data), "driver: sqlite")

	// user edits are kept
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0644))
	created, err = EnsureConfigFile(home)
	require.NoError(t, err)
	assert.False(t, created)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "log:\n  level: debug\n", string(data))
}
