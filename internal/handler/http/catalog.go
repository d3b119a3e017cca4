package http

import (
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/utafrali/AngelsParadise/internal/service"
	apperrors "github.com/utafrali/AngelsParadise/pkg/errors"
	"github.com/utafrali/AngelsParadise/pkg/httputil"
)

// CatalogHandler serves the filtered, paginated storefront catalog.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// Query handles
// GET /api/v1/catalog?category=&size=&min_price=&max_price=&q=&page=&page_size=
// size may repeat or hold a comma-separated list.
func (h *CatalogHandler) Query(w http.ResponseWriter, r *http.Request) {
	q, err := parseCatalogQuery(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	result, err := h.service.Query(r.Context(), q)
	if err != nil {
		httputil.WriteError(w, r, orInternal(err, "failed to fetch catalog"), h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, result)
}

func parseCatalogQuery(values url.Values) (service.CatalogQuery, error) {
	q := service.CatalogQuery{
		Category: strings.TrimSpace(values.Get("category")),
		Search:   values.Get("q"),
	}

	for _, raw := range values["size"] {
		for _, size := range strings.Split(raw, ",") {
			if size = strings.TrimSpace(size); size != "" {
				q.Sizes = append(q.Sizes, size)
			}
		}
	}

	var err error
	if q.MinPrice, err = parseOptionalFloat(values, "min_price"); err != nil {
		return q, err
	}
	if q.MaxPrice, err = parseOptionalFloat(values, "max_price"); err != nil {
		return q, err
	}
	if q.Page, err = parseOptionalInt(values, "page"); err != nil {
		return q, err
	}
	if q.PageSize, err = parseOptionalInt(values, "page_size"); err != nil {
		return q, err
	}
	return q, nil
}

func parseOptionalFloat(values url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, apperrors.InvalidInput(key + " must be a number")
	}
	return &v, nil
}

func parseOptionalInt(values url.Values, key string) (int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.InvalidInput(key + " must be an integer")
	}
	return v, nil
}
