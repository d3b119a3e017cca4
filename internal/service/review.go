package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/AngelsParadise/internal/domain"
	"github.com/utafrali/AngelsParadise/internal/repository"
	apperrors "github.com/utafrali/AngelsParadise/pkg/errors"
	"github.com/utafrali/AngelsParadise/pkg/validator"
)

// SubmitReviewInput holds the parameters for submitting a review.
type SubmitReviewInput struct {
	ProductID string `json:"productId" validate:"notblank"`
	UserID    string `json:"userId"`
	Rating    int    `json:"rating" validate:"gte=1,lte=5"`
	Comment   string `json:"comment" validate:"notblank"`
}

// ReviewHook is called once for every review that was persisted.
type ReviewHook func(ctx context.Context, review domain.Review)

// ReviewService implements the business logic for review operations.
type ReviewService struct {
	repo   repository.ReviewRepository
	logger *slog.Logger
	now    func() time.Time

	mu    sync.RWMutex
	hooks []ReviewHook
}

// NewReviewService creates a new review service.
func NewReviewService(repo repository.ReviewRepository, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// OnSubmitted registers a hook that runs after each successful submission.
func (s *ReviewService) OnSubmitted(hook ReviewHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, hook)
}

// SubmitReview validates input, assigns the id and timestamp, persists the
// review and then runs the submission hooks. A blank user becomes
// domain.AnonymousUser.
func (s *ReviewService) SubmitReview(ctx context.Context, input *SubmitReviewInput) (*domain.Review, error) {
	if err := validator.Validate(input); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}
	if !domain.ValidRating(input.Rating) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating))
	}

	review := &domain.Review{
		ID:        uuid.New().String(),
		ProductID: strings.TrimSpace(input.ProductID),
		UserID:    domain.DisplayName(input.UserID),
		Rating:    input.Rating,
		Comment:   strings.TrimSpace(input.Comment),
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.logger.InfoContext(ctx, "review created",
		slog.String("review_id", review.ID),
		slog.String("product_id", review.ProductID),
		slog.Int("rating", review.Rating),
	)

	s.mu.RLock()
	hooks := make([]ReviewHook, len(s.hooks))
	copy(hooks, s.hooks)
	s.mu.RUnlock()
	for _, hook := range hooks {
		hook(ctx, *review)
	}

	return review, nil
}

// ListReviews returns every review for a product in the requested order.
func (s *ReviewService) ListReviews(ctx context.Context, productID string, order domain.SortOrder) ([]domain.Review, error) {
	reviews, err := s.repo.ListByProductSorted(ctx, productID, order)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// GetSummary aggregates every stored review of a product. Reviews with a
// rating outside 1..5 are left out and reported at warn level.
func (s *ReviewService) GetSummary(ctx context.Context, productID string) (domain.RatingsSummary, error) {
	reviews, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return domain.RatingsSummary{}, fmt.Errorf("list reviews for summary: %w", err)
	}

	summary, ignored := domain.Aggregate(reviews)
	if ignored > 0 {
		s.logger.WarnContext(ctx, "ignored reviews with out-of-range rating",
			slog.String("product_id", productID),
			slog.Int("ignored", ignored),
		)
	}
	return summary, nil
}
