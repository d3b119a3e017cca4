package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/utafrali/AngelsParadise/internal/domain"
	"github.com/utafrali/AngelsParadise/pkg/database"
)

// ReviewRepository implements repository.ReviewRepository using MongoDB.
type ReviewRepository struct {
	coll *mongo.Collection
}

// NewReviewRepository creates a new MongoDB-backed review repository.
func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{coll: db.Collection(reviewsCollection)}
}

// Create inserts a new review document.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (err error) {
	ctx, end := database.TraceOperation(ctx, database.SystemMongo, "CreateReview", "reviews.insertOne")
	defer func() { end(err) }()

	doc := document[domain.Review]{ID: documentID(review.ID), Data: *review}
	if _, err = r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// ListByProduct returns all reviews for a product in natural order.
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	return r.ListByProductSorted(ctx, productID, domain.SortNone)
}

// ListByProductSorted returns all reviews for a product ordered by createdAt.
func (r *ReviewRepository) ListByProductSorted(ctx context.Context, productID string, order domain.SortOrder) (_ []domain.Review, err error) {
	ctx, end := database.TraceOperation(ctx, database.SystemMongo, "ListReviews", "reviews.find")
	defer func() { end(err) }()

	opts := options.Find()
	switch order {
	case domain.SortNewest:
		opts.SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	case domain.SortOldest:
		opts.SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	}

	cursor, err := r.coll.Find(ctx, bson.M{"productId": productID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find reviews: %w", err)
	}

	var docs []document[domain.Review]
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}

	reviews := make([]domain.Review, len(docs))
	for i, d := range docs {
		reviews[i] = d.Data
		reviews[i].ID = string(d.ID)
	}
	return reviews, nil
}
