package cloudinary

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/utafrali/AngelsParadise/internal/storage"
	"github.com/utafrali/AngelsParadise/pkg/httpclient"
)

// Config holds Cloudinary account settings.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	BaseURL   string
}

// Storage uploads images to Cloudinary with signed requests.
type Storage struct {
	client httpclient.Doer
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Cloudinary-backed image host.
func New(client httpclient.Doer, cfg Config, logger *slog.Logger) *Storage {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Storage{client: client, cfg: cfg, logger: logger, now: time.Now}
}

// Name returns the host name.
func (s *Storage) Name() string {
	return "cloudinary"
}

type uploadResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
}

// Upload sends the file as multipart form data. input.Key is split into
// folder and public id.
func (s *Storage) Upload(ctx context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	params := map[string]string{
		"timestamp": strconv.FormatInt(s.now().Unix(), 10),
		"public_id": strings.TrimSuffix(path.Base(input.Key), path.Ext(input.Key)),
	}
	if folder := path.Dir(input.Key); folder != "." {
		params["folder"] = folder
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range params {
		if err := mw.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if err := mw.WriteField("api_key", s.cfg.APIKey); err != nil {
		return nil, fmt.Errorf("write field api_key: %w", err)
	}
	if err := mw.WriteField("signature", Sign(params, s.cfg.APISecret)); err != nil {
		return nil, fmt.Errorf("write field signature: %w", err)
	}

	filename := input.Filename
	if filename == "" {
		filename = path.Base(input.Key)
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, input.Data); err != nil {
		return nil, fmt.Errorf("copy upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1_1/%s/image/upload", s.cfg.BaseURL, s.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("build cloudinary request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpclient.ParseResponseError(resp, "cloudinary")
	}
	defer func() { _ = resp.Body.Close() }()

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode cloudinary response: %w", err)
	}
	url := out.SecureURL
	if url == "" {
		url = out.URL
	}
	if url == "" {
		return nil, fmt.Errorf("cloudinary response for %s has no url", out.PublicID)
	}

	s.logger.InfoContext(ctx, "image uploaded",
		slog.String("public_id", out.PublicID),
		slog.Int64("size", input.Size),
	)

	return &storage.UploadResult{Key: out.PublicID, URL: url}, nil
}

// Sign computes the Cloudinary request signature: the parameters sorted by
// name, joined as k=v with '&', suffixed with the secret, SHA-1 hex encoded.
func Sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + params[k]
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}
