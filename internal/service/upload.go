package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/utafrali/AngelsParadise/internal/storage"
	apperrors "github.com/utafrali/AngelsParadise/pkg/errors"
)

// UploadImageInput describes one uploaded image file.
type UploadImageInput struct {
	Filename    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// UploadService stores product images with the configured image host.
type UploadService struct {
	storage  storage.Storage
	folder   string
	maxBytes int64
	logger   *slog.Logger
}

// NewUploadService creates a new upload service. Files land under folder on
// the host; larger than maxBytes is rejected.
func NewUploadService(st storage.Storage, folder string, maxBytes int64, logger *slog.Logger) *UploadService {
	return &UploadService{
		storage:  st,
		folder:   strings.Trim(folder, "/"),
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// UploadImage validates the file and returns its public URL.
func (s *UploadService) UploadImage(ctx context.Context, input *UploadImageInput) (string, error) {
	if input.Data == nil || input.Size == 0 {
		return "", apperrors.InvalidInput("no image file provided")
	}
	if s.maxBytes > 0 && input.Size > s.maxBytes {
		return "", apperrors.InvalidInput(fmt.Sprintf("image must not exceed %d bytes", s.maxBytes))
	}
	if !strings.HasPrefix(input.ContentType, "image/") {
		return "", apperrors.InvalidInput("file must be an image")
	}

	key := uuid.New().String() + strings.ToLower(path.Ext(input.Filename))
	if s.folder != "" {
		key = s.folder + "/" + key
	}

	res, err := s.storage.Upload(ctx, &storage.UploadInput{
		Key:         key,
		Filename:    input.Filename,
		ContentType: input.ContentType,
		Size:        input.Size,
		Data:        input.Data,
	})
	if err != nil {
		return "", apperrors.UploadFailed("failed to upload image", err)
	}

	s.logger.InfoContext(ctx, "image uploaded",
		slog.String("host", s.storage.Name()),
		slog.String("key", res.Key),
		slog.Int64("size", input.Size),
	)

	return res.URL, nil
}
