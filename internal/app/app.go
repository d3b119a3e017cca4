package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/utafrali/AngelsParadise/internal/config"
	"github.com/utafrali/AngelsParadise/internal/domain"
	"github.com/utafrali/AngelsParadise/internal/event"
	handler "github.com/utafrali/AngelsParadise/internal/handler/http"
	"github.com/utafrali/AngelsParadise/internal/payment"
	paymentmock "github.com/utafrali/AngelsParadise/internal/payment/mock"
	"github.com/utafrali/AngelsParadise/internal/payment/stripe"
	"github.com/utafrali/AngelsParadise/internal/repository"
	mongorepo "github.com/utafrali/AngelsParadise/internal/repository/mongo"
	"github.com/utafrali/AngelsParadise/internal/repository/postgres"
	redisrepo "github.com/utafrali/AngelsParadise/internal/repository/redis"
	"github.com/utafrali/AngelsParadise/internal/service"
	"github.com/utafrali/AngelsParadise/internal/storage"
	"github.com/utafrali/AngelsParadise/internal/storage/cloudinary"
	"github.com/utafrali/AngelsParadise/internal/storage/memory"
	"github.com/utafrali/AngelsParadise/pkg/database"
	"github.com/utafrali/AngelsParadise/pkg/health"
	"github.com/utafrali/AngelsParadise/pkg/httpclient"
	pkgkafka "github.com/utafrali/AngelsParadise/pkg/kafka"
	"github.com/utafrali/AngelsParadise/pkg/tracing"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	stores         *stores
	rdb            *redis.Client
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown tracing.ShutdownFunc
	stop           context.CancelFunc
}

// stores holds the document repositories of the selected driver.
type stores struct {
	driver       string
	reviews      repository.ReviewRepository
	products     repository.ProductRepository
	orders       repository.OrderRepository
	businessInfo repository.BusinessInfoRepository
	ping         health.Checker
	close        func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.Init(ctx, cfg.Tracing())
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	if cfg.SlowQueryThresholdMs > 0 {
		database.SetSlowQueryLogging(time.Duration(cfg.SlowQueryThresholdMs)*time.Millisecond, logger)
	}

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	// Initialize Redis client for carts.
	rdb, err := database.NewRedisClient(ctx, cfg.Redis(), logger)
	if err != nil {
		_ = st.close(context.Background())
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.Redis().Addr()),
		slog.Int("db", cfg.RedisDB),
	)

	// Initialize Kafka producer when events are enabled.
	var (
		producer  *pkgkafka.Producer
		publisher event.Publisher
	)
	if cfg.EventsEnabled {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = producer
		if err := producer.Ping(ctx); err != nil {
			logger.Warn("kafka ping failed, continuing in degraded mode",
				slog.String("error", err.Error()),
			)
		} else {
			logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
		}
	} else {
		logger.Info("domain events disabled")
	}
	eventProducer := event.NewProducer(publisher, logger)

	provider, err := newPaymentProvider(cfg, logger)
	if err != nil {
		_ = st.close(context.Background())
		_ = rdb.Close()
		return nil, err
	}
	media, err := newMediaStorage(cfg, logger)
	if err != nil {
		_ = st.close(context.Background())
		_ = rdb.Close()
		return nil, err
	}

	// Build the dependency graph.
	reviewService := service.NewReviewService(st.reviews, logger)
	reviewService.OnSubmitted(func(ctx context.Context, review domain.Review) {
		if err := eventProducer.PublishReviewCreated(ctx, &review); err != nil {
			logger.ErrorContext(ctx, "failed to publish review.created event",
				slog.String("review_id", review.ID),
				slog.String("error", err.Error()),
			)
		}
	})

	svcs := handler.Services{
		Reviews:      reviewService,
		Catalog:      service.NewCatalogService(st.products),
		Products:     service.NewProductService(st.products, eventProducer, logger),
		Orders:       service.NewOrderService(st.orders, eventProducer, logger),
		BusinessInfo: service.NewBusinessInfoService(st.businessInfo, eventProducer, logger),
		Cart:         service.NewCartService(redisrepo.NewCartRepository(rdb, cfg.CartTTL()), eventProducer, logger),
		Payments:     service.NewPaymentService(provider, logger),
		Uploads:      service.NewUploadService(media, cfg.CloudinaryFolder, cfg.MaxUploadBytes(), logger),
	}

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register(st.driver, st.ping)
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	if producer != nil {
		healthHandler.Register("kafka", producer.Ping)
	}

	opts := handler.Options{
		ServiceName:    config.ServiceName,
		CORS:           cfg.CORS(),
		RequestTimeout: cfg.RequestTimeout(),
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		PprofCIDRs:     cfg.PprofAllowedCIDRs,
		MaxUploadBytes: cfg.MaxUploadBytes(),
	}
	if src, ok := media.(handler.MediaSource); ok {
		opts.Media = src
	}

	// HTTP router. Its background workers live until Shutdown.
	runCtx, stop := context.WithCancel(context.Background())
	router := handler.NewRouter(runCtx, svcs, healthHandler, opts, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		stores:         st,
		rdb:            rdb,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
		stop:           stop,
	}, nil
}

// openStores connects the document store named by STORE_DRIVER.
func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMongo:
		db, err := database.NewMongoDatabase(ctx, cfg.Mongo(), logger)
		if err != nil {
			return nil, fmt.Errorf("connect to mongodb: %w", err)
		}
		logger.Info("connected to MongoDB", slog.String("database", cfg.MongoDB))

		return &stores{
			driver:       "mongodb",
			reviews:      mongorepo.NewReviewRepository(db),
			products:     mongorepo.NewProductRepository(db),
			orders:       mongorepo.NewOrderRepository(db),
			businessInfo: mongorepo.NewBusinessInfoRepository(db),
			ping: func(ctx context.Context) error {
				return db.Client().Ping(ctx, readpref.Primary())
			},
			close: func(ctx context.Context) error {
				return db.Client().Disconnect(ctx)
			},
		}, nil

	default:
		pgCfg := cfg.Postgres()
		pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		logger.Info("connected to PostgreSQL",
			slog.String("host", cfg.PostgresHost),
			slog.Int("port", cfg.PostgresPort),
			slog.String("database", cfg.PostgresDB),
		)
		if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, pool, config.ServiceName); err != nil {
			logger.Warn("pool metrics not registered", slog.String("error", err.Error()))
		}

		if err := database.RunMigrations(ctx, pool, postgres.Migrations(), logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("database migrations completed")

		return &stores{
			driver:       "postgres",
			reviews:      postgres.NewReviewRepository(pool),
			products:     postgres.NewProductRepository(pool),
			orders:       postgres.NewOrderRepository(pool),
			businessInfo: postgres.NewBusinessInfoRepository(pool),
			ping:         pool.Ping,
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil
	}
}

// newPaymentProvider selects the payment intent backend.
func newPaymentProvider(cfg *config.Config, logger *slog.Logger) (payment.Provider, error) {
	switch cfg.PaymentProvider {
	case config.PaymentProviderMock:
		logger.Warn("using mock payment provider")
		return paymentmock.NewProvider(), nil
	case config.PaymentProviderStripe:
		client := httpclient.NewCircuitBreakerClient(
			httpclient.New(httpclient.DefaultConfig()),
			httpclient.DefaultCircuitBreakerConfig("stripe"),
			logger,
		)
		return stripe.NewProvider(client, stripe.Config{
			SecretKey: cfg.StripeSecretKey,
			BaseURL:   cfg.StripeAPIURL,
		}, logger), nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", cfg.PaymentProvider)
	}
}

// newMediaStorage selects the image host.
func newMediaStorage(cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	switch cfg.MediaProvider {
	case config.MediaProviderMemory:
		logger.Warn("using in-memory image host, uploads are lost on restart")
		return memory.New(cfg.MediaBaseURL), nil
	case config.MediaProviderCloudinary:
		client := httpclient.NewCircuitBreakerClient(
			httpclient.New(httpclient.DefaultConfig()),
			httpclient.DefaultCircuitBreakerConfig("cloudinary"),
			logger,
		)
		return cloudinary.New(client, cloudinary.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			BaseURL:   cfg.CloudinaryAPIURL,
		}, logger), nil
	default:
		return nil, fmt.Errorf("unknown media provider %q", cfg.MediaProvider)
	}
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
			slog.String("store", a.stores.driver),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		_ = a.Shutdown()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in order: HTTP server, tracer,
// Kafka producer, document store, Redis.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}
	a.stop()

	tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer tracerCancel()
	if err := a.tracerShutdown(tracerCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	storeCtx, storeCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer storeCancel()
	if err := a.stores.close(storeCtx); err != nil {
		a.logger.Error("store close error",
			slog.String("driver", a.stores.driver),
			slog.String("error", err.Error()),
		)
		errs = append(errs, err)
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
