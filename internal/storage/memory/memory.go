package memory

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/utafrali/AngelsParadise/internal/storage"
)

// fileEntry stores an uploaded file in memory.
type fileEntry struct {
	ContentType string
	Data        []byte
	URL         string
}

// Storage implements storage.Storage using an in-memory map. It is intended
// for development and tests.
type Storage struct {
	mu      sync.RWMutex
	files   map[string]*fileEntry
	baseURL string
}

// New creates a new in-memory storage instance.
func New(baseURL string) *Storage {
	return &Storage{
		files:   make(map[string]*fileEntry),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Name returns the host name.
func (s *Storage) Name() string {
	return "memory"
}

// Upload reads the file into memory and returns the generated URL.
func (s *Storage) Upload(_ context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	data, err := io.ReadAll(input.Data)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	url := fmt.Sprintf("%s/media/%s", s.baseURL, input.Key)

	s.mu.Lock()
	s.files[input.Key] = &fileEntry{
		ContentType: input.ContentType,
		Data:        data,
		URL:         url,
	}
	s.mu.Unlock()

	return &storage.UploadResult{
		Key: input.Key,
		URL: url,
	}, nil
}

// Get returns the stored bytes and content type for key.
func (s *Storage) Get(key string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.files[key]
	if !ok {
		return nil, "", false
	}
	return entry.Data, entry.ContentType, true
}
