package cloudinary

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/AngelsParadise/internal/storage"
	apperrors "github.com/utafrali/AngelsParadise/pkg/errors"
	"github.com/utafrali/AngelsParadise/pkg/httpclient"
)

func newTestStorage(t *testing.T, handler http.HandlerFunc) *Storage {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	s := New(httpclient.New(cfg), Config{
		CloudName: "demo",
		APIKey:    "key-1",
		APISecret: "secret-1",
		BaseURL:   srv.URL,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	return s
}

func TestSign(t *testing.T) {
	// Example from the Cloudinary signing documentation.
	got := Sign(map[string]string{
		"eager":     "w_400,h_300,c_pad|w_260,h_200,c_crop",
		"public_id": "sample_image",
		"timestamp": "1315060510",
	}, "abcd")
	assert.Equal(t, "bfd09f95f331f558cbd1320e67aa8d488770583e", got)
}

func TestSign_SkipsEmptyValues(t *testing.T) {
	a := Sign(map[string]string{"timestamp": "1", "folder": ""}, "s")
	b := Sign(map[string]string{"timestamp": "1"}, "s")
	assert.Equal(t, a, b)
}

func TestUpload_Success(t *testing.T) {
	s := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1_1/demo/image/upload", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "key-1", r.FormValue("api_key"))
		assert.Equal(t, "angel-paradise-products", r.FormValue("folder"))
		assert.Equal(t, "abc", r.FormValue("public_id"))
		assert.Equal(t, "1700000000", r.FormValue("timestamp"))
		assert.Equal(t, Sign(map[string]string{
			"folder":    "angel-paradise-products",
			"public_id": "abc",
			"timestamp": "1700000000",
		}, "secret-1"), r.FormValue("signature"))

		f, hdr, err := r.FormFile("file")
		if assert.NoError(t, err) {
			data, _ := io.ReadAll(f)
			assert.Equal(t, "img-bytes", string(data))
			assert.Equal(t, "dress.png", hdr.Filename)
		}

		_, _ = w.Write([]byte(`{"public_id":"angel-paradise-products/abc","secure_url":"https://res.cloudinary.com/demo/image/upload/abc.png"}`))
	})

	res, err := s.Upload(context.Background(), &storage.UploadInput{
		Key:      "angel-paradise-products/abc.png",
		Filename: "dress.png",
		Data:     strings.NewReader("img-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/abc.png", res.URL)
	assert.Equal(t, "angel-paradise-products/abc", res.Key)
	assert.Equal(t, "cloudinary", s.Name())
}

func TestUpload_RejectedByHost(t *testing.T) {
	s := newTestStorage(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid image file"}}`))
	})

	_, err := s.Upload(context.Background(), &storage.UploadInput{Key: "x.txt", Data: strings.NewReader("nope")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestUpload_NoURL(t *testing.T) {
	s := newTestStorage(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"public_id":"x"}`))
	})

	_, err := s.Upload(context.Background(), &storage.UploadInput{Key: "x.png", Data: strings.NewReader("a")})
	require.Error(t, err)
}
