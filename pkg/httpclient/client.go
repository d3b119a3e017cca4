package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Doer is what callers of this package depend on. Both *Client and
// *CircuitBreakerClient satisfy it.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Config holds HTTP client configuration.
type Config struct {
	Timeout         time.Duration
	MaxRetries      int
	RetryWaitMin    time.Duration
	RetryWaitMax    time.Duration
	MaxConnsPerHost int
}

// DefaultConfig returns defaults suited to third-party APIs.
func DefaultConfig() Config {
	return Config{
		Timeout:         15 * time.Second,
		MaxRetries:      2,
		RetryWaitMin:    200 * time.Millisecond,
		RetryWaitMax:    2 * time.Second,
		MaxConnsPerHost: 32,
	}
}

// Client wraps http.Client with bounded retries on network errors and 5xx.
type Client struct {
	httpClient *http.Client
	config     Config
}

// New creates a client with a pooled transport.
func New(cfg Config) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          64,
		MaxIdleConnsPerHost:   cfg.MaxConnsPerHost,
		MaxConnsPerHost:       cfg.MaxConnsPerHost,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
	return &Client{
		httpClient: &http.Client{Transport: transport, Timeout: cfg.Timeout},
		config:     cfg,
	}
}

// Do sends req, retrying network errors and 5xx (except 501). A request with
// a body is only retried when req.GetBody can rewind it.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	canReplay := req.Body == nil || req.Body == http.NoBody || req.GetBody != nil

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			if !canReplay {
				break
			}
			if err := c.wait(ctx, attempt); err != nil {
				return nil, err
			}
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, fmt.Errorf("rewind request body: %w", err)
				}
				req.Body = body
			}
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if isRetryableError(err) {
				continue
			}
			return nil, fmt.Errorf("http request failed after %d attempts: %w", attempt+1, err)
		}

		retryable := resp.StatusCode >= 500 && resp.StatusCode != http.StatusNotImplemented
		if retryable && attempt < c.config.MaxRetries && canReplay {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
			continue
		}
		return resp, nil
	}
	return nil, fmt.Errorf("http request failed: %w", lastErr)
}

func (c *Client) wait(ctx context.Context, attempt int) error {
	wait := c.config.RetryWaitMin * time.Duration(1<<uint(attempt-1))
	if c.config.RetryWaitMax > 0 && wait > c.config.RetryWaitMax {
		wait = c.config.RetryWaitMax
	}
	select {
	case <-time.After(wait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Get performs a GET through Do.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create GET request: %w", err)
	}
	return c.Do(ctx, req)
}

func isRetryableError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
