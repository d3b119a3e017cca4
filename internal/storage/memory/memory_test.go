package memory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/AngelsParadise/internal/storage"
)

func TestStorage_UploadAndGet(t *testing.T) {
	s := New("http://localhost:5000/")
	assert.Equal(t, "memory", s.Name())

	res, err := s.Upload(context.Background(), &storage.UploadInput{
		Key:         "angel-paradise-products/abc.png",
		ContentType: "image/png",
		Data:        strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/media/angel-paradise-products/abc.png", res.URL)

	data, ct, ok := s.Get("angel-paradise-products/abc.png")
	require.True(t, ok)
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "image/png", ct)

	_, _, ok = s.Get("missing")
	assert.False(t, ok)
}
