package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/AngelsParadise/internal/domain"
	"github.com/utafrali/AngelsParadise/internal/repository"
	apperrors "github.com/utafrali/AngelsParadise/pkg/errors"
	"github.com/utafrali/AngelsParadise/pkg/validator"
)

// CreateOrderInput holds the parameters for placing an order.
type CreateOrderInput struct {
	User            string
	Items           []domain.OrderItem
	Total           float64
	ShippingAddress string
	PaymentID       string
	Status          string
}

// OrderService implements the business logic for order operations.
type OrderService struct {
	repo   repository.OrderRepository
	events OrderEvents
	logger *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(repo repository.OrderRepository, events OrderEvents, logger *slog.Logger) *OrderService {
	return &OrderService{
		repo:   repo,
		events: events,
		logger: logger,
	}
}

// CreateOrder validates and stores a new order. Status defaults to pending.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*domain.Order, error) {
	if strings.TrimSpace(input.User) == "" {
		return nil, apperrors.InvalidInput("user is required")
	}
	if len(input.Items) == 0 {
		return nil, apperrors.InvalidInput("order must contain at least one item")
	}
	for i := range input.Items {
		if err := validator.Validate(&input.Items[i]); err != nil {
			return nil, apperrors.InvalidInput(fmt.Sprintf("item %d: %s", i, err.Error()))
		}
	}
	if input.Total < 0 {
		return nil, apperrors.InvalidInput("total must not be negative")
	}
	if strings.TrimSpace(input.ShippingAddress) == "" {
		return nil, apperrors.InvalidInput("shipping address is required")
	}

	status := input.Status
	if status == "" {
		status = domain.OrderStatusPending
	}
	if !domain.IsValidOrderStatus(status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid order status %q", status))
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:              uuid.New().String(),
		User:            strings.TrimSpace(input.User),
		Items:           input.Items,
		Total:           input.Total,
		Status:          status,
		ShippingAddress: input.ShippingAddress,
		PaymentID:       input.PaymentID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if itemsTotal := order.ItemsTotal(); order.Total < itemsTotal {
		s.logger.WarnContext(ctx, "order total below sum of items",
			slog.Float64("total", order.Total),
			slog.Float64("items_total", itemsTotal),
		)
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.events.PublishOrderCreated(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.created event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order created",
		slog.String("order_id", order.ID),
		slog.Int("items", len(order.Items)),
		slog.Float64("total", order.Total),
	)

	return order, nil
}

// GetOrder retrieves an order by its ID.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order by id: %w", err)
	}
	return order, nil
}

// ListOrders returns all orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// UpdateOrder changes the status, shipping address or payment id of an order.
func (s *OrderService) UpdateOrder(ctx context.Context, id string, patch domain.OrderPatch) (*domain.Order, error) {
	if patch.Status != nil && !domain.IsValidOrderStatus(*patch.Status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid order status %q", *patch.Status))
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order for update: %w", err)
	}
	if patch.IsEmpty() {
		return order, nil
	}

	previous := order.Status
	order.Apply(patch)
	order.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	if err := s.events.PublishOrderUpdated(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.updated event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order updated",
		slog.String("order_id", order.ID),
		slog.String("from_status", previous),
		slog.String("to_status", order.Status),
	)

	return order, nil
}
