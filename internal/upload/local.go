package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// Local stores uploads in a directory.
type Local struct {
	dir     string
	urlPath string
}

// NewLocal creates a local storage writing to dir and served under urlPath.
func NewLocal(dir, urlPath string) *Local {
	return &Local{dir: dir, urlPath: urlPath}
}

// Dir returns the directory uploads are written to.
func (l *Local) Dir() string {
	return l.dir
}

// Save implements Storage. An existing file is never overwritten.
func (l *Local) Save(_ context.Context, name string, r io.Reader, _ string) error {
	if err := os.MkdirAll(l.dir, 0o750); err != nil {
		return fmt.Errorf("upload: create directory: %w", err)
	}

	target := filepath.Join(l.dir, filepath.Base(name))

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640) //nolint:gosec // name is sanitized
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %s", ErrExists, name)
	}

	if err != nil {
		return fmt.Errorf("upload: create file: %w", err)
	}

	if _, err = io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(target)

		return fmt.Errorf("upload: write file: %w", err)
	}

	return f.Close()
}

// URL implements Storage.
func (l *Local) URL(name string) string {
	return path.Join("/", l.urlPath, name)
}
