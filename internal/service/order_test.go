package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/AngelsParadise/internal/domain"
	apperrors "github.com/utafrali/AngelsParadise/pkg/errors"
)

func newTestOrderService(repo *mockOrderRepository, events *mockEvents) *OrderService {
	return NewOrderService(repo, events, newTestLogger())
}

func validOrderInput() *CreateOrderInput {
	return &CreateOrderInput{
		User: "Jane",
		Items: []domain.OrderItem{
			{ProductID: "p1", Name: "Pink Dress", Price: 20, Quantity: 2},
		},
		Total:           45,
		ShippingAddress: "1 Main St",
	}
}

func TestCreateOrder_DefaultsToPending(t *testing.T) {
	repo, events := new(mockOrderRepository), new(mockEvents)
	svc := newTestOrderService(repo, events)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)
	events.On("PublishOrderCreated", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)

	order, err := svc.CreateOrder(ctx, validOrderInput())
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, 45.0, order.Total)

	repo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestCreateOrder_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*CreateOrderInput)
	}{
		{"no user", func(in *CreateOrderInput) { in.User = " " }},
		{"no items", func(in *CreateOrderInput) { in.Items = nil }},
		{"item without product", func(in *CreateOrderInput) { in.Items[0].ProductID = "" }},
		{"item zero quantity", func(in *CreateOrderInput) { in.Items[0].Quantity = 0 }},
		{"item negative price", func(in *CreateOrderInput) { in.Items[0].Price = -1 }},
		{"negative total", func(in *CreateOrderInput) { in.Total = -5 }},
		{"no address", func(in *CreateOrderInput) { in.ShippingAddress = "" }},
		{"bad status", func(in *CreateOrderInput) { in.Status = "lost" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo, events := new(mockOrderRepository), new(mockEvents)
			svc := newTestOrderService(repo, events)

			in := validOrderInput()
			tc.modify(in)

			_, err := svc.CreateOrder(context.Background(), in)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateOrder_StoreFailure(t *testing.T) {
	repo, events := new(mockOrderRepository), new(mockEvents)
	svc := newTestOrderService(repo, events)
	ctx := context.Background()

	repo.On("Create", ctx, mock.Anything).Return(errors.New("down"))

	_, err := svc.CreateOrder(ctx, validOrderInput())
	require.Error(t, err)
	events.AssertNotCalled(t, "PublishOrderCreated", mock.Anything, mock.Anything)
}

func TestUpdateOrder_Status(t *testing.T) {
	repo, events := new(mockOrderRepository), new(mockEvents)
	svc := newTestOrderService(repo, events)
	ctx := context.Background()

	existing := &domain.Order{ID: "o1", Status: domain.OrderStatusPending}
	repo.On("GetByID", ctx, "o1").Return(existing, nil)
	repo.On("Update", ctx, existing).Return(nil)
	events.On("PublishOrderUpdated", ctx, existing).Return(nil)

	order, err := svc.UpdateOrder(ctx, "o1", domain.OrderPatch{
		Status:    ptr(domain.OrderStatusPaid),
		PaymentID: ptr("pi_1"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaid, order.Status)
	assert.Equal(t, "pi_1", order.PaymentID)
	repo.AssertExpectations(t)
}

func TestUpdateOrder_InvalidStatus(t *testing.T) {
	repo, events := new(mockOrderRepository), new(mockEvents)
	svc := newTestOrderService(repo, events)

	_, err := svc.UpdateOrder(context.Background(), "o1", domain.OrderPatch{Status: ptr("refunded")})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUpdateOrder_NotFound(t *testing.T) {
	repo, events := new(mockOrderRepository), new(mockEvents)
	svc := newTestOrderService(repo, events)
	ctx := context.Background()

	repo.On("GetByID", ctx, "o9").Return(nil, apperrors.NotFound("order", "o9"))

	_, err := svc.UpdateOrder(ctx, "o9", domain.OrderPatch{ShippingAddress: ptr("x")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListAndGetOrders(t *testing.T) {
	repo, events := new(mockOrderRepository), new(mockEvents)
	svc := newTestOrderService(repo, events)
	ctx := context.Background()

	repo.On("List", ctx).Return([]domain.Order{{ID: "o2"}, {ID: "o1"}}, nil)
	repo.On("GetByID", ctx, "o1").Return(&domain.Order{ID: "o1"}, nil)

	orders, err := svc.ListOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	order, err := svc.GetOrder(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "o1", order.ID)
}
