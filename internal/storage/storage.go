package storage

import (
	"context"
	"io"
)

// Storage defines the interface for image hosting.
type Storage interface {
	// Name returns the host name (e.g., "memory", "cloudinary").
	Name() string

	// Upload stores a file and returns the result with key and public URL.
	Upload(ctx context.Context, input *UploadInput) (*UploadResult, error)
}

// UploadInput holds the parameters for uploading a file.
type UploadInput struct {
	Key         string
	Filename    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// UploadResult holds the result of a successful upload.
type UploadResult struct {
	Key string
	URL string
}
