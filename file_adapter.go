package pixsnap

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/gogpu/pixsnap/bitmap"
)

// lockName is the advisory lock file taken in a directory while writing
// images into it. go test runs packages as separate processes that may
// share one reference tree.
const lockName = ".pixsnap.lock"

// FileAdapter is an [Adapter] backed by PNG files on the local filesystem.
type FileAdapter struct {
	root     string
	reporter Reporter
}

// NewFileAdapter returns an adapter storing references under root and
// sending failures to r.
func NewFileAdapter(root string, r Reporter) *FileAdapter {
	return &FileAdapter{root: root, reporter: r}
}

// TestResultsSavePath returns the reference root.
func (a *FileAdapter) TestResultsSavePath() string { return a.root }

// ReferenceImageExists reports whether path names a regular file.
func (a *FileAdapter) ReferenceImageExists(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			Logger().Warn("pixsnap: stat reference", slog.String("path", path), slog.Any("error", err))
		}
		return false
	}
	return fi.Mode().IsRegular()
}

// LoadReferenceImage decodes the PNG at path.
func (a *FileAdapter) LoadReferenceImage(path string) (*bitmap.Bitmap, error) {
	return bitmap.LoadPNG(path)
}

// SaveBitmapFile writes b as a PNG at path, creating parent directories.
func (a *FileAdapter) SaveBitmapFile(b *bitmap.Bitmap, path string) error {
	return withDirLock(filepath.Dir(path), func() error {
		return b.SavePNG(path)
	})
}

// SaveComparisonBitmapFiles writes both images of a failed comparison.
func (a *FileAdapter) SaveComparisonBitmapFiles(expected *bitmap.Bitmap, expectedPath string, actual *bitmap.Bitmap, actualPath string) error {
	if err := a.SaveBitmapFile(expected, expectedPath); err != nil {
		return err
	}
	return a.SaveBitmapFile(actual, actualPath)
}

// AssertFailure forwards message to the reporter.
func (a *FileAdapter) AssertFailure(message string) {
	a.reporter.Fail(message)
}

// withDirLock creates dir and runs fn while holding dir's lock file.
func withDirLock(dir string, fn func() error) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("pixsnap: create directory: %w", err)
	}

	fl := flock.New(filepath.Join(dir, lockName))
	if err := fl.Lock(); err != nil {
		return fmt.Errorf("pixsnap: lock %s: %w", dir, err)
	}
	defer func() {
		if err := fl.Unlock(); err != nil {
			Logger().Warn("pixsnap: unlock", slog.String("dir", dir), slog.Any("error", err))
		}
	}()

	return fn()
}
