package middleware

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/AngelsParadise/pkg/logger"
)

// UserHeader identifies the shopper; there is no authentication layer.
const UserHeader = "X-User-ID"

// RequestLogger stores a logger enriched with correlation_id, user_id,
// trace_id and span_id in the request context. Mount it after
// RequestLogging and Tracing.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if userID := r.Header.Get(UserHeader); userID != "" {
				ctx = logger.WithUserID(ctx, userID)
			}
			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
