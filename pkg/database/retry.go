package database

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"
)

const (
	defaultRetryAttempts = 3
	defaultRetryBaseWait = 1 * time.Second
	retryJitterFraction  = 0.25
)

// retryBackoff returns 1s, 2s, 4s... for attempt 0, 1, 2 with ±25% jitter.
func retryBackoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	base := defaultRetryBaseWait << attempt
	jitter := time.Duration(float64(base) * retryJitterFraction * (2*rand.Float64() - 1)) // #nosec G404 -- non-cryptographic jitter
	return base + jitter
}

// connectWithRetry calls dial up to defaultRetryAttempts times, sleeping
// retryBackoff between attempts. A nil logger silences retry warnings.
func connectWithRetry[T any](ctx context.Context, target string, logger *slog.Logger, dial func(context.Context) (T, error)) (T, error) {
	var (
		zero    T
		lastErr error
	)
	for attempt := 0; attempt < defaultRetryAttempts; attempt++ {
		conn, err := dial(ctx)
		if err == nil {
			return conn, nil
		}
		lastErr = err
		if attempt == defaultRetryAttempts-1 {
			break
		}

		wait := retryBackoff(attempt)
		if logger != nil {
			logger.Warn(target+" connection failed, retrying",
				slog.Int("attempt", attempt+1),
				slog.Int("max_attempts", defaultRetryAttempts),
				slog.Duration("backoff", wait),
				slog.String("error", err.Error()),
			)
		}
		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("connect to %s: context canceled during retry: %w", target, ctx.Err())
		case <-time.After(wait):
		}
	}
	return zero, fmt.Errorf("connect to %s after %d attempts: %w", target, defaultRetryAttempts, lastErr)
}

var connErrorPatterns = []string{
	"connection refused",
	"connection reset",
	"broken pipe",
	"no such host",
	"i/o timeout",
	"connect: connection",
	"dial tcp",
	"EOF",
	"connection timed out",
	"server closed the connection unexpectedly",
	"could not connect",
}

// isConnectionError reports whether err looks transient (network) rather
// than a SQL or constraint failure.
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, p := range connErrorPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
