package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/utafrali/AngelsParadise/internal/domain"
	"github.com/utafrali/AngelsParadise/pkg/database"
	apperrors "github.com/utafrali/AngelsParadise/pkg/errors"
)

// ProductRepository implements repository.ProductRepository using MongoDB.
type ProductRepository struct {
	coll *mongo.Collection
}

// NewProductRepository creates a new MongoDB-backed product repository.
func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(productsCollection)}
}

// Create inserts a new product document.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (err error) {
	ctx, end := database.TraceOperation(ctx, database.SystemMongo, "CreateProduct", "products.insertOne")
	defer func() { end(err) }()

	if _, err = r.coll.InsertOne(ctx, document[domain.Product]{ID: documentID(p.ID), Data: *p}); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (_ *domain.Product, err error) {
	ctx, end := database.TraceOperation(ctx, database.SystemMongo, "GetProduct", "products.findOne")
	defer func() { end(err) }()

	var doc document[domain.Product]
	if err = r.coll.FindOne(ctx, byID(id)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return toProduct(doc), nil
}

// ListAll returns every product in insertion order.
func (r *ProductRepository) ListAll(ctx context.Context) (_ []domain.Product, err error) {
	ctx, end := database.TraceOperation(ctx, database.SystemMongo, "ListProducts", "products.find")
	defer func() { end(err) }()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}

	var docs []document[domain.Product]
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	products := make([]domain.Product, len(docs))
	for i := range docs {
		products[i] = *toProduct(docs[i])
	}
	return products, nil
}

// Update replaces an existing product document.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) (err error) {
	ctx, end := database.TraceOperation(ctx, database.SystemMongo, "UpdateProduct", "products.replaceOne")
	defer func() { end(err) }()

	res, err := r.coll.ReplaceOne(ctx, byID(p.ID), document[domain.Product]{ID: documentID(p.ID), Data: *p})
	if err != nil {
		return fmt.Errorf("replace product: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("product", p.ID)
	}
	return nil
}

// toProduct copies the _id into the entity and normalizes legacy documents
// that predate the sizes and colors fields.
func toProduct(doc document[domain.Product]) *domain.Product {
	p := doc.Data
	p.ID = string(doc.ID)
	if p.Sizes == nil {
		p.Sizes = []string{}
	}
	if p.Colors == nil {
		p.Colors = []string{}
	}
	return &p
}
