package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/AngelsParadise/internal/domain"
	"github.com/utafrali/AngelsParadise/internal/service"
	apperrors "github.com/utafrali/AngelsParadise/pkg/errors"
	"github.com/utafrali/AngelsParadise/pkg/httputil"
	"github.com/utafrali/AngelsParadise/pkg/validator"
)

// Fixed messages for store failures on the review routes.
const (
	msgSummaryFailed = "failed to fetch ratings summary"
	msgListFailed    = "failed to fetch reviews"
	msgSubmitFailed  = "failed to add review"
)

// ReviewHandler handles HTTP requests for review and rating endpoints.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: svc,
		logger:  logger,
	}
}

// SubmitReviewRequest is the JSON body of POST /api/v1/reviews. UserID may be
// omitted for an anonymous review.
type SubmitReviewRequest struct {
	ProductID string `json:"productId" validate:"notblank"`
	UserID    string `json:"userId"`
	Rating    int    `json:"rating" validate:"gte=1,lte=5"`
	Comment   string `json:"comment" validate:"notblank"`
}

// GetSummary handles GET /api/v1/reviews/summary/{productId} and its
// /api/v1/ratings-summary/{productId} alias.
func (h *ReviewHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	summary, err := h.service.GetSummary(r.Context(), productID)
	if err != nil {
		httputil.WriteError(w, r, orInternal(err, msgSummaryFailed), h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, summary)
}

// ListReviews handles GET /api/v1/reviews/{productId}?sort=newest|oldest|none
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	order, err := domain.ParseSortOrder(r.URL.Query().Get("sort"))
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput(err.Error()), h.logger)
		return
	}

	reviews, err := h.service.ListReviews(r.Context(), productID, order)
	if err != nil {
		httputil.WriteError(w, r, orInternal(err, msgListFailed), h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, reviews)
}

// SubmitReview handles POST /api/v1/reviews
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var req SubmitReviewRequest
	if err := validator.DecodeStrict(r.Body, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	review, err := h.service.SubmitReview(r.Context(), &service.SubmitReviewInput{
		ProductID: req.ProductID,
		UserID:    req.UserID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		httputil.WriteError(w, r, orInternal(err, msgSubmitFailed), h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, review)
}
