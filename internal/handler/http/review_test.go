package http

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/AngelsParadise/internal/domain"
)

func TestGetSummary(t *testing.T) {
	env := newTestEnv(t)
	h := env.router(t)

	env.reviews.On("ListByProduct", mock.Anything, "p1").Return([]domain.Review{
		{Rating: 5}, {Rating: 4}, {Rating: 2},
	}, nil)

	for _, path := range []string{"/api/v1/reviews/summary/p1", "/api/v1/ratings-summary/p1"} {
		t.Run(path, func(t *testing.T) {
			rec := doRequest(t, h, http.MethodGet, path, nil)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

			body := rec.Body.String()
			assert.Contains(t, body, `"breakdown":{"1":0,"2":1,"3":0,"4":1,"5":1}`)

			summary := decodeData[domain.RatingsSummary](t, rec)
			assert.Equal(t, 3.67, summary.Average)
			assert.Equal(t, 3, summary.Count)
		})
	}
}

func TestGetSummary_NoReviews(t *testing.T) {
	env := newTestEnv(t)
	h := env.router(t)

	env.reviews.On("ListByProduct", mock.Anything, "p9").Return([]domain.Review{}, nil)

	rec := doRequest(t, h, http.MethodGet, "/api/v1/reviews/summary/p9", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"data":{"average":0,"count":0,"breakdown":{"1":0,"2":0,"3":0,"4":0,"5":0}}}`,
		rec.Body.String())
}

func TestGetSummary_StoreFailure(t *testing.T) {
	env := newTestEnv(t)
	h := env.router(t)

	env.reviews.On("ListByProduct", mock.Anything, "p1").Return(nil, errors.New("connection refused"))

	rec := doRequest(t, h, http.MethodGet, "/api/v1/reviews/summary/p1", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	e := decodeError(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", e.Code)
	assert.Equal(t, "failed to fetch ratings summary", e.Message)
	assert.NotEmpty(t, e.RequestID)
}

func TestListReviews_DefaultsToNewest(t *testing.T) {
	env := newTestEnv(t)
	h := env.router(t)

	now := time.Now().UTC()
	env.reviews.On("ListByProductSorted", mock.Anything, "p1", domain.SortNewest).Return([]domain.Review{
		{ID: "r2", ProductID: "p1", Rating: 5, CreatedAt: now},
		{ID: "r1", ProductID: "p1", Rating: 3, CreatedAt: now.Add(-time.Hour)},
	}, nil)

	rec := doRequest(t, h, http.MethodGet, "/api/v1/reviews/p1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	reviews := decodeData[[]domain.Review](t, rec)
	require.Len(t, reviews, 2)
	assert.Equal(t, "r2", reviews[0].ID)
	env.reviews.AssertExpectations(t)
}

func TestListReviews_Oldest(t *testing.T) {
	env := newTestEnv(t)
	h := env.router(t)

	env.reviews.On("ListByProductSorted", mock.Anything, "p1", domain.SortOldest).Return([]domain.Review{}, nil)

	rec := doRequest(t, h, http.MethodGet, "/api/v1/reviews/p1?sort=oldest", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestListReviews_UnknownSort(t *testing.T) {
	env := newTestEnv(t)
	h := env.router(t)

	rec := doRequest(t, h, http.MethodGet, "/api/v1/reviews/p1?sort=best", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", decodeError(t, rec).Code)
	env.reviews.AssertNotCalled(t, "ListByProductSorted", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitReview_Anonymous(t *testing.T) {
	env := newTestEnv(t)
	h := env.router(t)

	env.reviews.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Review) bool {
		return r.ProductID == "p1" && r.UserID == domain.AnonymousUser && r.Rating == 4
	})).Return(nil)

	rec := doRequest(t, h, http.MethodPost, "/api/v1/reviews", map[string]any{
		"productId": "p1",
		"rating":    4,
		"comment":   "Lovely fabric",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	review := decodeData[domain.Review](t, rec)
	assert.NotEmpty(t, review.ID)
	assert.Equal(t, domain.AnonymousUser, review.UserID)
	assert.Equal(t, "Lovely fabric", review.Comment)
	assert.False(t, review.CreatedAt.IsZero())
	env.reviews.AssertExpectations(t)
}

func TestSubmitReview_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
		field    string
	}{
		{"rating too high", `{"productId":"p1","rating":6,"comment":"x"}`, "VALIDATION_ERROR", "rating"},
		{"rating missing", `{"productId":"p1","comment":"x"}`, "VALIDATION_ERROR", "rating"},
		{"blank comment", `{"productId":"p1","rating":3,"comment":"   "}`, "VALIDATION_ERROR", "comment"},
		{"no product", `{"rating":3,"comment":"x"}`, "VALIDATION_ERROR", "productId"},
		{"fractional rating", `{"productId":"p1","rating":4.5,"comment":"x"}`, "INVALID_INPUT", ""},
		{"rating as string", `{"productId":"p1","rating":"5","comment":"x"}`, "INVALID_INPUT", ""},
		{"unknown field", `{"productId":"p1","rating":5,"comment":"x","stars":5}`, "INVALID_INPUT", ""},
		{"malformed", `{"productId":`, "INVALID_INPUT", ""},
		{"trailing bracket", `{"productId":"p1","rating":4,"comment":"Nice"}]`, "INVALID_INPUT", ""},
		{"trailing brace", `{"productId":"p1","rating":4,"comment":"Nice"}}`, "INVALID_INPUT", ""},
		{"second document", `{"productId":"p1","rating":4,"comment":"Nice"}{}`, "INVALID_INPUT", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			h := env.router(t)

			rec := doRequest(t, h, http.MethodPost, "/api/v1/reviews", tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			e := decodeError(t, rec)
			assert.Equal(t, tc.wantCode, e.Code)
			if tc.field != "" {
				assert.Contains(t, e.Fields, tc.field)
			}
			env.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmitReview_StoreFailure(t *testing.T) {
	env := newTestEnv(t)
	h := env.router(t)

	env.reviews.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	rec := doRequest(t, h, http.MethodPost, "/api/v1/reviews",
		`{"productId":"p1","userId":"Jane","rating":5,"comment":"Perfect"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "failed to add review", decodeError(t, rec).Message)
	assert.NotContains(t, rec.Body.String(), "disk full")
}

func TestSubmitReview_WrongContentType(t *testing.T) {
	env := newTestEnv(t)
	h := env.router(t)

	rec := doRequest(t, h, http.MethodPost, "/api/v1/reviews",
		`{"productId":"p1","rating":5,"comment":"x"}`,
		"Content-Type", "text/plain")
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestSubmitReview_RateLimited(t *testing.T) {
	env := newTestEnv(t)
	env.opts.RateLimitRPS = 0.001
	env.opts.RateLimitBurst = 1
	h := env.router(t)

	env.reviews.On("Create", mock.Anything, mock.Anything).Return(nil)

	body := `{"productId":"p1","rating":5,"comment":"x"}`
	first := doRequest(t, h, http.MethodPost, "/api/v1/reviews", body)
	require.Equal(t, http.StatusCreated, first.Code)

	second := doRequest(t, h, http.MethodPost, "/api/v1/reviews", body)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	// Reads are not limited.
	env.reviews.On("ListByProduct", mock.Anything, "p1").Return([]domain.Review{}, nil)
	read := doRequest(t, h, http.MethodGet, "/api/v1/reviews/summary/p1", nil)
	assert.Equal(t, http.StatusOK, read.Code)
}
