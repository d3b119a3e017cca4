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

// OrderRepository implements repository.OrderRepository using MongoDB.
type OrderRepository struct {
	coll *mongo.Collection
}

// NewOrderRepository creates a new MongoDB-backed order repository.
func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection(ordersCollection)}
}

// Create inserts a new order document.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (err error) {
	ctx, end := database.TraceOperation(ctx, database.SystemMongo, "CreateOrder", "orders.insertOne")
	defer func() { end(err) }()

	if _, err = r.coll.InsertOne(ctx, document[domain.Order]{ID: documentID(o.ID), Data: *o}); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID retrieves an order by its ID.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (_ *domain.Order, err error) {
	ctx, end := database.TraceOperation(ctx, database.SystemMongo, "GetOrder", "orders.findOne")
	defer func() { end(err) }()

	var doc document[domain.Order]
	if err = r.coll.FindOne(ctx, byID(id)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("order", id)
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return toOrder(doc), nil
}

// List returns all orders, newest first.
func (r *OrderRepository) List(ctx context.Context) (_ []domain.Order, err error) {
	ctx, end := database.TraceOperation(ctx, database.SystemMongo, "ListOrders", "orders.find")
	defer func() { end(err) }()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}

	var docs []document[domain.Order]
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	orders := make([]domain.Order, len(docs))
	for i := range docs {
		orders[i] = *toOrder(docs[i])
	}
	return orders, nil
}

// Update sets the mutable fields of an order.
func (r *OrderRepository) Update(ctx context.Context, o *domain.Order) (err error) {
	ctx, end := database.TraceOperation(ctx, database.SystemMongo, "UpdateOrder", "orders.updateOne")
	defer func() { end(err) }()

	update := bson.M{"$set": bson.M{
		"status":          o.Status,
		"shippingAddress": o.ShippingAddress,
		"paymentId":       o.PaymentID,
		"updatedAt":       o.UpdatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, byID(o.ID), update)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("order", o.ID)
	}
	return nil
}

func toOrder(doc document[domain.Order]) *domain.Order {
	o := doc.Data
	o.ID = string(doc.ID)
	if o.Items == nil {
		o.Items = []domain.OrderItem{}
	}
	return &o
}
