package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"hooplog/backend/config"
)

// LocalUploader writes uploads under a directory served by the router
type LocalUploader struct {
	dir      string
	baseURL  string
	maxBytes int64
	logger   *zap.Logger
}

// NewLocalUploader creates the upload directories if needed
func NewLocalUploader(cfg *config.StorageConfig, logger *zap.Logger) (*LocalUploader, error) {
	for _, c := range []Category{CategorySession, CategoryAvatar} {
		if err := os.MkdirAll(filepath.Join(cfg.LocalDir, string(c)), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload dir: %w", err)
		}
	}

	logger.Info("local storage initialized", zap.String("dir", cfg.LocalDir))

	return &LocalUploader{
		dir:      cfg.LocalDir,
		baseURL:  strings.TrimRight(cfg.PublicBaseURL, "/"),
		maxBytes: cfg.MaxUploadBytes,
		logger:   logger,
	}, nil
}

func (u *LocalUploader) Upload(ctx context.Context, category Category, originalName, contentType string, r io.Reader) (string, error) {
	if err := validCategory(category); err != nil {
		return "", err
	}
	key, data, err := prepare(originalName, contentType, r, u.maxBytes)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(u.dir, string(category), key)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}

	return u.baseURL + "/" + string(category) + "/" + key, nil
}

// Close no-op
func (u *LocalUploader) Close() error { return nil }
