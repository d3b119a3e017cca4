package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/AngelsParadise/internal/domain"
	"github.com/utafrali/AngelsParadise/internal/event"
	"github.com/utafrali/AngelsParadise/internal/payment"
	paymentmock "github.com/utafrali/AngelsParadise/internal/payment/mock"
	redisrepo "github.com/utafrali/AngelsParadise/internal/repository/redis"
	"github.com/utafrali/AngelsParadise/internal/service"
	"github.com/utafrali/AngelsParadise/internal/storage/memory"
	"github.com/utafrali/AngelsParadise/pkg/health"
	"github.com/utafrali/AngelsParadise/pkg/httputil"
	"github.com/utafrali/AngelsParadise/pkg/middleware"
)

// --- Mock repositories ---

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	return m.Called(ctx, review).Error(0)
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

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return m.Called(ctx, product).Error(0)
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
	return m.Called(ctx, product).Error(0)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
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
	return m.Called(ctx, order).Error(0)
}

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
	return m.Called(ctx, info).Error(0)
}

// failingProvider rejects every payment intent.
type failingProvider struct{ err error }

func (p failingProvider) Name() string { return "failing" }

func (p failingProvider) CreatePaymentIntent(context.Context, *payment.IntentInput) (*payment.Intent, error) {
	return nil, p.err
}

// --- Test Helpers ---

type testEnv struct {
	reviews  *mockReviewRepository
	products *mockProductRepository
	orders   *mockOrderRepository
	business *mockBusinessInfoRepository
	media    *memory.Storage
	redis    *miniredis.Miniredis
	provider payment.Provider
	opts     Options
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{
		reviews:  new(mockReviewRepository),
		products: new(mockProductRepository),
		orders:   new(mockOrderRepository),
		business: new(mockBusinessInfoRepository),
		media:    memory.New("http://localhost:5000"),
		redis:    miniredis.RunT(t),
		provider: paymentmock.NewProvider(),
		opts: Options{
			ServiceName:    "angels-paradise-test",
			CORS:           middleware.DefaultCORSConfig(),
			RequestTimeout: 5 * time.Second,
			MaxUploadBytes: 1 << 20,
		},
	}
}

// router builds the production router over the env's fakes.
func (e *testEnv) router(t *testing.T) http.Handler {
	t.Helper()
	logger := testLogger()
	producer := event.NewProducer(nil, logger)

	client := goredis.NewClient(&goredis.Options{Addr: e.redis.Addr()})
	t.Cleanup(func() { client.Close() })

	svcs := Services{
		Reviews:      service.NewReviewService(e.reviews, logger),
		Catalog:      service.NewCatalogService(e.products),
		Products:     service.NewProductService(e.products, producer, logger),
		Orders:       service.NewOrderService(e.orders, producer, logger),
		BusinessInfo: service.NewBusinessInfoService(e.business, producer, logger),
		Cart:         service.NewCartService(redisrepo.NewCartRepository(client, time.Hour), producer, logger),
		Payments:     service.NewPaymentService(e.provider, logger),
		Uploads:      service.NewUploadService(e.media, "products", e.opts.MaxUploadBytes, logger),
	}

	opts := e.opts
	opts.Media = e.media

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewRouter(ctx, svcs, health.NewHandler(), opts, logger)
}

func doRequest(t *testing.T, h http.Handler, method, target string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeData reads the data envelope of rec into a T.
func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var resp struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Data
}

// decodeError reads the error envelope of rec.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *httputil.ErrorResponse {
	t.Helper()
	var resp httputil.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Error)
	return resp.Error
}
