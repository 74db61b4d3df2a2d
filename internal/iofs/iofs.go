// Package iofs prepares directories and files ipnidb keeps in the
// user's home.
package iofs

import (
	"errors"
	"io/fs"
	"os"

	"github.com/gnames/ipnidb/pkg/config"
	"github.com/gnames/ipnidb/pkg/templates"
)

// EnsureDirs creates config, cache, data and log directories.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.DataDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := os.MkdirAll(v, 0755); err != nil {
			return CreateDirError(v, err)
		}
	}
	return nil
}

// EnsureConfigFile writes the default config.yaml unless the user
// already has one. It reports whether a new file was created.
func EnsureConfigFile(homeDir string) (bool, error) {
	path := config.ConfigFilePath(homeDir)

	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, ReadFileError(path, err)
	}

	if err = os.WriteFile(path, []byte(templates.ConfigYAML), 0644); err != nil {
		return false, CopyFileError(path, err)
	}
	return true, nil
}
