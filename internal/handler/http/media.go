package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/AngelsParadise/pkg/httputil"
)

// MediaSource serves files kept by the in-process image host.
type MediaSource interface {
	Get(key string) ([]byte, string, bool)
}

// serveMedia handles GET /media/* for the memory image host.
func serveMedia(src MediaSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, contentType, ok := src.Get(chi.URLParam(r, "*"))
		if !ok {
			httputil.WriteJSON(w, http.StatusNotFound, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "NOT_FOUND", Message: "media not found"},
			})
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
