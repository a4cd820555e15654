package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hooplog/backend/config"
)

// Category selects the bucket / directory an upload lands in
type Category string

const (
	CategorySession Category = "session"
	CategoryAvatar  Category = "avatar"
)

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("image too large")
	ErrUnknownCategory = errors.New("unknown upload category")
)

// allowedTypes content type → default extension
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/heic": ".heic",
}

// Uploader stores images and returns their public URL
type Uploader interface {
	Upload(ctx context.Context, category Category, originalName, contentType string, r io.Reader) (string, error)
	Close() error
}

// New builds the uploader for the configured driver
func New(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (Uploader, error) {
	switch cfg.Driver {
	case "gcs":
		return NewGCSUploader(ctx, cfg, logger)
	case "local", "":
		return NewLocalUploader(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// prepare validates the upload and reads it into memory.
// Returns the generated object key and the content.
func prepare(originalName, contentType string, r io.Reader, maxBytes int64) (string, []byte, error) {
	contentType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	defaultExt, ok := allowedTypes[contentType]
	if !ok {
		return "", nil, ErrUnsupportedType
	}

	var buf bytes.Buffer
	reader := r
	if maxBytes > 0 {
		reader = io.LimitReader(r, maxBytes+1)
	}
	n, err := buf.ReadFrom(reader)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if maxBytes > 0 && n > maxBytes {
		return "", nil, ErrTooLarge
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" || len(ext) > 6 {
		ext = defaultExt
	}

	return uuid.NewString() + ext, buf.Bytes(), nil
}

func validCategory(category Category) error {
	switch category {
	case CategorySession, CategoryAvatar:
		return nil
	default:
		return ErrUnknownCategory
	}
}
