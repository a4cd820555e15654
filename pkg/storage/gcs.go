package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
	"go.uber.org/zap"

	"hooplog/backend/config"
)

const gcsPublicHost = "https://storage.googleapis.com"

// GCSUploader stores session images and avatars in Google Cloud Storage,
// one bucket per category.
type GCSUploader struct {
	client   *storage.Client
	buckets  map[Category]string
	baseURL  string
	maxBytes int64
	logger   *zap.Logger
}

// NewGCSUploader creates the storage client. An emulator host switches
// to unauthenticated access against the emulator.
func NewGCSUploader(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (*GCSUploader, error) {
	var opts []option.ClientOption
	baseURL := gcsPublicHost

	emulator := strings.TrimRight(strings.TrimSpace(cfg.GCS.EmulatorHost), "/")
	switch {
	case emulator != "":
		_ = os.Setenv("STORAGE_EMULATOR_HOST", emulator)
		opts = append(opts, option.WithoutAuthentication())
		baseURL = emulator
	case cfg.GCS.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.GCS.CredentialsFile))
	}
	opts = append(opts, option.WithScopes(storage.ScopeReadWrite))

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	logger.Info("gcs storage initialized",
		zap.String("session_bucket", cfg.GCS.SessionBucket),
		zap.String("avatar_bucket", cfg.GCS.AvatarBucket),
		zap.Bool("emulator", emulator != ""),
	)

	return &GCSUploader{
		client: client,
		buckets: map[Category]string{
			CategorySession: cfg.GCS.SessionBucket,
			CategoryAvatar:  cfg.GCS.AvatarBucket,
		},
		baseURL:  baseURL,
		maxBytes: cfg.MaxUploadBytes,
		logger:   logger,
	}, nil
}

func (u *GCSUploader) Upload(ctx context.Context, category Category, originalName, contentType string, r io.Reader) (string, error) {
	bucket, ok := u.buckets[category]
	if !ok {
		return "", ErrUnknownCategory
	}
	key, data, err := prepare(originalName, contentType, r, u.maxBytes)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := u.client.Bucket(bucket).Object(key).NewWriter(ctx)
	w.ContentType = strings.SplitN(contentType, ";", 2)[0]
	w.CacheControl = "public, max-age=31536000"
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write object to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer: %w", err)
	}

	return u.baseURL + "/" + bucket + "/" + key, nil
}

// Close releases the storage client
func (u *GCSUploader) Close() error {
	return u.client.Close()
}
