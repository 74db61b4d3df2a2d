// Package iofetch downloads the IPNI archive and unpacks it into the
// cache directory.
package iofetch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnsys"
	"github.com/gnames/ipnidb/pkg/config"
)

const (
	archiveName = "ipni.zip"
	unzipDir    = "ipni"

	// partDir receives the archive while it downloads, so a broken
	// download never looks like a cached archive.
	partDir = "download.part"

	// marker is a file that every IPNI export contains.
	marker = "Name.tsv"
)

// Fetcher gets IPNI files into the local cache.
type Fetcher struct {
	url      string
	cacheDir string
	force    bool
	progress bool
}

// New creates a Fetcher from the import settings of cfg.
func New(cfg *config.Config, progress bool) *Fetcher {
	return &Fetcher{
		url:      cfg.Import.URL,
		cacheDir: config.CacheDir(cfg.HomeDir),
		force:    cfg.Import.ForceDownload,
		progress: progress,
	}
}

// ArchivePath is the location of the downloaded archive.
func (f *Fetcher) ArchivePath() string {
	return filepath.Join(f.cacheDir, archiveName)
}

// Fetch downloads the archive unless it is cached, unzips it and
// returns the directory with TSV files. The context is checked between
// steps, a running download is not interrupted.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	if err := gnsys.MakeDir(f.cacheDir); err != nil {
		return "", DownloadError(f.url, err)
	}

	path := f.ArchivePath()
	exists, err := gnsys.FileExists(path)
	if err != nil {
		return "", DownloadError(f.url, err)
	}
	if f.force || !exists {
		if err = ctx.Err(); err != nil {
			return "", DownloadError(f.url, err)
		}
		if err = f.download(path); err != nil {
			return "", err
		}
	} else {
		slog.Info("Using cached IPNI archive", "path", path)
	}

	if err = ctx.Err(); err != nil {
		return "", UnzipError(path, err)
	}
	dir := filepath.Join(f.cacheDir, unzipDir)
	if err = cleanDir(dir); err != nil {
		return "", UnzipError(path, err)
	}
	slog.Info("Extracting IPNI archive", "dir", dir)
	if err = gnsys.ExtractZip(path, dir); err != nil {
		return "", UnzipError(path, err)
	}
	return findData(dir)
}

// Cleanup removes unzipped files. The archive stays for the next run.
func (f *Fetcher) Cleanup() error {
	return os.RemoveAll(filepath.Join(f.cacheDir, unzipDir))
}

func (f *Fetcher) download(path string) error {
	slog.Info("Downloading IPNI archive", "url", f.url)

	tmp := filepath.Join(f.cacheDir, partDir)
	if err := cleanDir(tmp); err != nil {
		return DownloadError(f.url, err)
	}
	defer os.RemoveAll(tmp)

	res, err := gnsys.Download(f.url, tmp, f.progress)
	if err != nil {
		return DownloadError(f.url, err)
	}
	if err = os.Rename(res, path); err != nil {
		return DownloadError(f.url, err)
	}

	var size uint64
	if fi, err := os.Stat(path); err == nil {
		size = uint64(fi.Size())
	}
	slog.Info("Downloaded IPNI archive",
		"path", path,
		"size", humanize.Bytes(size),
	)
	return nil
}

// cleanDir makes dir exist and be empty.
func cleanDir(dir string) error {
	if err := gnsys.MakeDir(dir); err != nil {
		return err
	}
	return gnsys.CleanDir(dir)
}

// findData returns the directory that contains Name.tsv. Archives may
// keep files at the root or inside a folder.
func findData(dir string) (string, error) {
	var res string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == marker {
			res = filepath.Dir(p)
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", UnzipError(dir, err)
	}
	if res == "" {
		return "", UnzipError(dir, fmt.Errorf("%s not found in archive", marker))
	}
	return res, nil
}
