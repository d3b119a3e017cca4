package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/AngelsParadise/internal/domain"
	pkgkafka "github.com/utafrali/AngelsParadise/pkg/kafka"
	"github.com/utafrali/AngelsParadise/pkg/logger"
)

// Aggregate type constants.
const (
	AggregateReview       = "review"
	AggregateProduct      = "product"
	AggregateOrder        = "order"
	AggregateCart         = "cart"
	AggregateBusinessInfo = "business_info"
)

// Source identifies events originating from this service.
const Source = "angels-paradise"

// Topics for storefront domain events.
var (
	TopicReviewCreated       = pkgkafka.Topic(AggregateReview, "created")
	TopicProductCreated      = pkgkafka.Topic(AggregateProduct, "created")
	TopicProductUpdated      = pkgkafka.Topic(AggregateProduct, "updated")
	TopicOrderCreated        = pkgkafka.Topic(AggregateOrder, "created")
	TopicOrderUpdated        = pkgkafka.Topic(AggregateOrder, "updated")
	TopicCartUpdated         = pkgkafka.Topic(AggregateCart, "updated")
	TopicBusinessInfoUpdated = pkgkafka.Topic(AggregateBusinessInfo, "updated")
)

// ReviewCreatedData is the payload for a review.created event.
type ReviewCreatedData struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	UserID    string `json:"userId"`
	Rating    int    `json:"rating"`
}

// OrderData is the payload for order.created and order.updated events.
type OrderData struct {
	ID        string  `json:"id"`
	User      string  `json:"user"`
	Status    string  `json:"status"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"itemCount"`
	PaymentID string  `json:"paymentId,omitempty"`
}

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	UserID    string  `json:"userId"`
	ItemCount int     `json:"itemCount"`
	Subtotal  float64 `json:"subtotal"`
	Version   int     `json:"version"`
}

// Publisher is the part of pkg/kafka.Producer the event producer uses.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Discard drops every event. It backs the producer when events are disabled.
type Discard struct{}

// Publish implements Publisher.
func (Discard) Publish(context.Context, string, *pkgkafka.Event) error { return nil }

// Producer publishes storefront domain events.
type Producer struct {
	publisher Publisher
	logger    *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(publisher Publisher, logger *slog.Logger) *Producer {
	if publisher == nil {
		publisher = Discard{}
	}
	return &Producer{
		publisher: publisher,
		logger:    logger,
	}
}

// PublishReviewCreated publishes a review.created event.
func (p *Producer) PublishReviewCreated(ctx context.Context, review *domain.Review) error {
	data := ReviewCreatedData{
		ID:        review.ID,
		ProductID: review.ProductID,
		UserID:    review.UserID,
		Rating:    review.Rating,
	}
	return p.publish(ctx, TopicReviewCreated, review.ID, AggregateReview, data)
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	return p.publish(ctx, TopicProductCreated, product.ID, AggregateProduct, product)
}

// PublishProductUpdated publishes a product.updated event.
func (p *Producer) PublishProductUpdated(ctx context.Context, product *domain.Product) error {
	return p.publish(ctx, TopicProductUpdated, product.ID, AggregateProduct, product)
}

// PublishOrderCreated publishes an order.created event.
func (p *Producer) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	return p.publish(ctx, TopicOrderCreated, order.ID, AggregateOrder, orderData(order))
}

// PublishOrderUpdated publishes an order.updated event.
func (p *Producer) PublishOrderUpdated(ctx context.Context, order *domain.Order) error {
	return p.publish(ctx, TopicOrderUpdated, order.ID, AggregateOrder, orderData(order))
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	data := CartUpdatedData{
		UserID:    cart.UserID,
		ItemCount: cart.ItemCount(),
		Subtotal:  cart.Subtotal(),
		Version:   cart.Version,
	}
	return p.publish(ctx, TopicCartUpdated, cart.UserID, AggregateCart, data)
}

// PublishBusinessInfoUpdated publishes a business_info.updated event.
func (p *Producer) PublishBusinessInfoUpdated(ctx context.Context, info *domain.BusinessInfo) error {
	return p.publish(ctx, TopicBusinessInfoUpdated, info.ID, AggregateBusinessInfo, info)
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	evt, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, Source, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		evt.WithCorrelationID(id)
	}

	if err := p.publisher.Publish(ctx, topic, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)
	return nil
}

func orderData(o *domain.Order) OrderData {
	count := 0
	for _, it := range o.Items {
		count += it.Quantity
	}
	return OrderData{
		ID:        o.ID,
		User:      o.User,
		Status:    o.Status,
		Total:     o.Total,
		ItemCount: count,
		PaymentID: o.PaymentID,
	}
}
