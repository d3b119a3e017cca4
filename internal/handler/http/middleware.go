package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/utafrali/AngelsParadise/pkg/httputil"
	"github.com/utafrali/AngelsParadise/pkg/logger"
	"github.com/utafrali/AngelsParadise/pkg/middleware"
)

// UserIDFromHeader reads the cart owner from X-User-ID and stores it in the
// request context. Requests without it are rejected with 401.
func UserIDFromHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := strings.TrimSpace(r.Header.Get(middleware.UserHeader))
		if uid == "" {
			httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "X-User-ID header is required"},
			})
			return
		}
		next.ServeHTTP(w, r.WithContext(logger.WithUserID(r.Context(), uid)))
	})
}

func userIDFromContext(ctx context.Context) string {
	return logger.UserIDFromContext(ctx)
}

// ContentTypeJSON rejects request bodies that declare a non-JSON content type.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "UNSUPPORTED_MEDIA_TYPE", Message: "Content-Type must be application/json"},
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
