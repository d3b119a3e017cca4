package client

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/utafrali/AngelsParadise/internal/domain"
)

// DefaultDraftRating is the star value a fresh review form starts with.
const DefaultDraftRating = domain.MaxRating

// ErrEmptyComment is returned by Submit when the draft has no comment.
var ErrEmptyComment = errors.New("review comment is required")

// ReviewAPI is the part of Client a ReviewPanel uses.
type ReviewAPI interface {
	Reviews(ctx context.Context, productID string) ([]domain.Review, error)
	RatingsSummary(ctx context.Context, productID string) (domain.RatingsSummary, error)
	SubmitReview(ctx context.Context, draft ReviewDraft) (*domain.Review, error)
}

// ReviewPanel holds what a product page shows about reviews: the list, the
// rating summary and the visitor's unsent draft. A successful Submit
// refreshes list and summary exactly once.
type ReviewPanel struct {
	api       ReviewAPI
	productID string
	logger    *slog.Logger

	mu      sync.RWMutex
	reviews []domain.Review
	summary domain.RatingsSummary
	draft   ReviewDraft
}

// NewReviewPanel creates an empty panel for productID. Call Refresh to load it.
func NewReviewPanel(api ReviewAPI, productID string, logger *slog.Logger) *ReviewPanel {
	return &ReviewPanel{
		api:       api,
		productID: productID,
		logger:    logger,
		reviews:   []domain.Review{},
		draft:     ReviewDraft{ProductID: productID, Rating: DefaultDraftRating},
	}
}

// Refresh reloads the review list and the summary. A failed summary fetch
// shows a zeroed summary; a failed list fetch keeps the previous list and is
// returned.
func (p *ReviewPanel) Refresh(ctx context.Context) error {
	var (
		wg         sync.WaitGroup
		reviews    []domain.Review
		listErr    error
		summary    domain.RatingsSummary
		summaryErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		reviews, listErr = p.api.Reviews(ctx, p.productID)
	}()
	go func() {
		defer wg.Done()
		summary, summaryErr = p.api.RatingsSummary(ctx, p.productID)
	}()
	wg.Wait()

	if summaryErr != nil {
		p.logger.WarnContext(ctx, "ratings summary unavailable",
			slog.String("product_id", p.productID),
			slog.String("error", summaryErr.Error()),
		)
		summary = domain.RatingsSummary{}
	}

	p.mu.Lock()
	p.summary = summary
	if listErr == nil {
		p.reviews = reviews
	}
	p.mu.Unlock()

	return listErr
}

// Reviews returns a copy of the loaded reviews.
func (p *ReviewPanel) Reviews() []domain.Review {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.reviews)
}

// Summary returns the loaded rating summary.
func (p *ReviewPanel) Summary() domain.RatingsSummary {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.summary
}

// Draft returns the unsent review.
func (p *ReviewPanel) Draft() ReviewDraft {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.draft
}

// EditDraft updates the unsent review. The product is fixed by the panel.
func (p *ReviewPanel) EditDraft(userID string, rating int, comment string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.draft = ReviewDraft{ProductID: p.productID, UserID: userID, Rating: rating, Comment: comment}
}

// Submit sends the draft. On failure the draft is kept for another attempt
// and the error is returned. On success the comment is cleared and the panel
// is refreshed once; a refresh failure is logged, not returned, so the
// caller never resubmits a stored review.
func (p *ReviewPanel) Submit(ctx context.Context) (*domain.Review, error) {
	draft := p.Draft()
	if draft.Comment == "" {
		return nil, ErrEmptyComment
	}

	review, err := p.api.SubmitReview(ctx, draft)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	if p.draft == draft {
		p.draft.Comment = ""
	}
	p.mu.Unlock()

	if err := p.Refresh(ctx); err != nil {
		p.logger.WarnContext(ctx, "refresh after review submit failed",
			slog.String("product_id", p.productID),
			slog.String("error", err.Error()),
		)
	}
	return review, nil
}
