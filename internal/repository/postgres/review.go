package postgres

import (
	"context"
	"fmt"

	"github.com/utafrali/AngelsParadise/internal/domain"
	"github.com/utafrali/AngelsParadise/pkg/database"
)

const reviewColumns = `id, product_id, user_id, rating, comment, created_at`

// ReviewRepository implements repository.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	pool database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool database.DBTX) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Create inserts a new review into the database.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (err error) {
	query := `
		INSERT INTO reviews (` + reviewColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`

	ctx, end := database.TraceQuery(ctx, "CreateReview", query)
	defer func() { end(err) }()

	_, err = r.pool.Exec(ctx, query,
		review.ID,
		review.ProductID,
		review.UserID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}

	return nil
}

// ListByProduct returns all reviews for a product in storage order.
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	return r.ListByProductSorted(ctx, productID, domain.SortNone)
}

// ListByProductSorted returns all reviews for a product ordered by created_at.
// The id breaks ties so equal timestamps list deterministically.
func (r *ReviewRepository) ListByProductSorted(ctx context.Context, productID string, order domain.SortOrder) (_ []domain.Review, err error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE product_id = $1`

	switch order {
	case domain.SortNewest:
		query += `
		ORDER BY created_at DESC, id DESC`
	case domain.SortOldest:
		query += `
		ORDER BY created_at ASC, id ASC`
	}

	ctx, end := database.TraceQuery(ctx, "ListReviews", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(
			&rv.ID,
			&rv.ProductID,
			&rv.UserID,
			&rv.Rating,
			&rv.Comment,
			&rv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}
