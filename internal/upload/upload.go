// Package upload stores submitted recipe images on the local disk or in S3.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/GoCookingBlog/GoCookingBlog/internal/config"
)

const (
	// BackendLocal stores files in a directory served by the web service.
	BackendLocal = "local"
	// BackendS3 stores files in an S3 bucket.
	BackendS3 = "s3"

	uuidFragmentLength = 8
	maxBaseNameLength  = 100
	fallbackBaseName   = "image"
)

var (
	// ErrUnknownBackend is returned by New for an unsupported backend.
	ErrUnknownBackend = errors.New("unknown upload backend")

	// ErrExists is returned when a file of the same name was already stored.
	ErrExists = errors.New("upload already exists")
)

// Storage persists uploaded files and resolves their public URL.
type Storage interface {
	// Save writes r under name.
	Save(ctx context.Context, name string, r io.Reader, contentType string) error
	// URL returns the URL a stored file is served from.
	URL(name string) string
}

// New creates the storage configured in cfg.
func New(ctx context.Context, cfg config.Upload) (Storage, error) {
	switch cfg.Backend {
	case BackendLocal, "":
		return NewLocal(cfg.Dir, cfg.URLPath), nil
	case BackendS3:
		return NewS3(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Backend)
	}
}

// NewFilename builds a collision resistant name for an upload:
// <unix millis>-<uuid fragment>-<sanitized original name>.
func NewFilename(original string, now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" +
		uuid.NewString()[:uuidFragmentLength] + "-" +
		SanitizeFilename(original)
}

// SanitizeFilename strips directories from name and keeps letters, digits, dot, dash and underscore.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder

	for _, r := range name {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('_')
		}
	}

	out := strings.TrimLeft(b.String(), ".")
	if len(out) > maxBaseNameLength {
		out = out[len(out)-maxBaseNameLength:]
	}

	if out == "" || strings.Trim(out, "._-") == "" {
		return fallbackBaseName
	}

	return out
}
