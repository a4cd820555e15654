package service

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"hooplog/backend/pkg/storage"
)

// ErrUnsupportedUpload the file type or size is not accepted
var ErrUnsupportedUpload = errors.New("unsupported upload")

// FileUpload an uploaded file handed over by the transport layer
type FileUpload struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

// uploadImage stores f and returns its public URL
func uploadImage(ctx context.Context, uploader storage.Uploader, category storage.Category, f *FileUpload, logger *zap.Logger) (string, error) {
	if uploader == nil {
		return "", ErrUnsupportedUpload
	}
	url, err := uploader.Upload(ctx, category, f.Filename, f.ContentType, f.Reader)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) || errors.Is(err, storage.ErrTooLarge) {
			return "", ErrUnsupportedUpload
		}
		logger.Error("failed to store upload", zap.String("category", string(category)), zap.Error(err))
		return "", err
	}
	return url, nil
}
