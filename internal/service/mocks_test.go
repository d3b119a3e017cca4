package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/utafrali/AngelsParadise/internal/domain"
	"github.com/utafrali/AngelsParadise/internal/payment"
	"github.com/utafrali/AngelsParadise/internal/storage"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// capturingHandler records every log record so tests can assert on warnings.
type capturingHandler struct {
	records *[]slog.Record
}

func (h capturingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h capturingHandler) Handle(_ context.Context, r slog.Record) error {
	*h.records = append(*h.records, r)
	return nil
}
func (h capturingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h capturingHandler) WithGroup(string) slog.Handler      { return h }

func newCapturingLogger() (*slog.Logger, *[]slog.Record) {
	records := &[]slog.Record{}
	return slog.New(capturingHandler{records: records}), records
}

// --- Mock Review Repository ---

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepository) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepository) ListByProductSorted(ctx context.Context, productID string, order domain.SortOrder) ([]domain.Review, error) {
	args := m.Called(ctx, productID, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

// --- Mock Product Repository ---

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// --- Mock Order Repository ---

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *mockOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// --- Mock Business Info Repository ---

type mockBusinessInfoRepository struct {
	mock.Mock
}

func (m *mockBusinessInfoRepository) Get(ctx context.Context) (*domain.BusinessInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessInfo), args.Error(1)
}

func (m *mockBusinessInfoRepository) Save(ctx context.Context, info *domain.BusinessInfo) error {
	args := m.Called(ctx, info)
	return args.Error(0)
}

// --- Mock Cart Repository ---

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *mockCartRepository) SaveIfVersion(ctx context.Context, cart *domain.Cart, expectedVersion int) (bool, error) {
	args := m.Called(ctx, cart, expectedVersion)
	return args.Bool(0), args.Error(1)
}

func (m *mockCartRepository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock Events ---

type mockEvents struct {
	mock.Mock
}

func (m *mockEvents) PublishProductCreated(ctx context.Context, p *domain.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockEvents) PublishProductUpdated(ctx context.Context, p *domain.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockEvents) PublishOrderCreated(ctx context.Context, o *domain.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockEvents) PublishOrderUpdated(ctx context.Context, o *domain.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockEvents) PublishCartUpdated(ctx context.Context, c *domain.Cart) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockEvents) PublishBusinessInfoUpdated(ctx context.Context, b *domain.BusinessInfo) error {
	return m.Called(ctx, b).Error(0)
}

// --- Mock Payment Provider ---

type mockPaymentProvider struct {
	mock.Mock
}

func (m *mockPaymentProvider) Name() string { return "test" }

func (m *mockPaymentProvider) CreatePaymentIntent(ctx context.Context, input *payment.IntentInput) (*payment.Intent, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Intent), args.Error(1)
}

// --- Mock Storage ---

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Name() string { return "test" }

func (m *mockStorage) Upload(ctx context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.UploadResult), args.Error(1)
}
