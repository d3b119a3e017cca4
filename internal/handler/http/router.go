package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/AngelsParadise/internal/service"
	"github.com/utafrali/AngelsParadise/pkg/health"
	"github.com/utafrali/AngelsParadise/pkg/middleware"
)

// Services groups the business services the router exposes.
type Services struct {
	Reviews      *service.ReviewService
	Catalog      *service.CatalogService
	Products     *service.ProductService
	Orders       *service.OrderService
	BusinessInfo *service.BusinessInfoService
	Cart         *service.CartService
	Payments     *service.PaymentService
	Uploads      *service.UploadService
}

// Options tunes the HTTP edge.
type Options struct {
	ServiceName    string
	CORS           middleware.CORSConfig
	RequestTimeout time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	PprofCIDRs     []string
	MaxUploadBytes int64
	// Media is mounted at /media/* when the in-process image host is used.
	Media MediaSource
}

// NewRouter creates a chi router with all storefront routes registered. The
// rate limiter's idle-visitor sweeper stops when ctx is done.
func NewRouter(
	ctx context.Context,
	svcs Services,
	healthHandler *health.Handler,
	opts Options,
	logger *slog.Logger,
) http.Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(opts.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(opts.RequestTimeout))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(opts.ServiceName))
	r.Use(middleware.Tracing(opts.ServiceName))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	middleware.RegisterPprof(r, opts.PprofCIDRs, logger)

	if opts.Media != nil {
		r.Get("/media/*", serveMedia(opts.Media))
	}

	limit := middleware.RateLimit(ctx, opts.RateLimitRPS, opts.RateLimitBurst, logger)

	// Reviews and ratings
	reviewHandler := NewReviewHandler(svcs.Reviews, logger)

	r.Route("/api/v1/reviews", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.NoStore)

		r.Get("/summary/{productId}", reviewHandler.GetSummary)
		r.Get("/{productId}", reviewHandler.ListReviews)
		r.With(limit).Post("/", reviewHandler.SubmitReview)
	})
	r.With(middleware.NoStore).Get("/api/v1/ratings-summary/{productId}", reviewHandler.GetSummary)

	// Catalog
	catalogHandler := NewCatalogHandler(svcs.Catalog, logger)
	r.With(middleware.NoStore).Get("/api/v1/catalog", catalogHandler.Query)

	// Products
	productHandler := NewProductHandler(svcs.Products, svcs.Uploads, opts.MaxUploadBytes, logger)

	r.Route("/api/v1/products", func(r chi.Router) {
		r.With(limit).Post("/upload", productHandler.UploadImage)

		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON)

			r.Get("/", productHandler.ListProducts)
			r.Get("/{id}", productHandler.GetProduct)
			r.Post("/", productHandler.CreateProduct)
			r.Put("/{id}", productHandler.UpdateProduct)
		})
	})

	// Orders
	orderHandler := NewOrderHandler(svcs.Orders, logger)

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", orderHandler.ListOrders)
		r.Get("/{id}", orderHandler.GetOrder)
		r.With(limit).Post("/", orderHandler.CreateOrder)
		r.Put("/{id}", orderHandler.UpdateOrder)
	})

	// Business info
	businessHandler := NewBusinessInfoHandler(svcs.BusinessInfo, logger)

	r.Route("/api/v1/business-info", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", businessHandler.Get)
		r.Post("/", businessHandler.Upsert)
	})

	// Payments
	paymentHandler := NewPaymentHandler(svcs.Payments, logger)

	r.Route("/api/v1/payments", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.With(limit).Post("/create-payment-intent", paymentHandler.CreatePaymentIntent)
	})

	// Cart
	cartHandler := NewCartHandler(svcs.Cart, logger)

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(UserIDFromHeader)
		r.Use(middleware.NoStore)

		r.Get("/", cartHandler.GetCart)
		r.Delete("/", cartHandler.ClearCart)

		r.Post("/items", cartHandler.AddItem)
		r.Put("/items/{productId}", cartHandler.UpdateItemQuantity)
		r.Delete("/items/{productId}", cartHandler.RemoveItem)
	})

	return r
}
