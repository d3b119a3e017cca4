package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/utafrali/AngelsParadise/pkg/config"
	"github.com/utafrali/AngelsParadise/pkg/database"
	"github.com/utafrali/AngelsParadise/pkg/middleware"
	"github.com/utafrali/AngelsParadise/pkg/tracing"
)

// ServiceName tags logs, metrics and traces.
const ServiceName = "angels-paradise"

// Store drivers.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"
)

// Payment providers.
const (
	PaymentProviderMock   = "mock"
	PaymentProviderStripe = "stripe"
)

// Media providers.
const (
	MediaProviderMemory     = "memory"
	MediaProviderCloudinary = "cloudinary"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Version     string `env:"SERVICE_VERSION" envDefault:"dev"`

	// HTTP server
	HTTPPort              int `env:"HTTP_PORT" envDefault:"5000"`
	RequestTimeoutSeconds int `env:"REQUEST_TIMEOUT_SECONDS" envDefault:"15"`

	// Store selection
	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"angels"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"angels_secret"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"angels_paradise"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Database pool
	DBMaxConns            int32 `env:"DB_MAX_CONNS" envDefault:"20"`
	DBMinConns            int32 `env:"DB_MIN_CONNS" envDefault:"2"`
	DBMaxConnLifetimeMins int   `env:"DB_MAX_CONN_LIFETIME_MINUTES" envDefault:"60"`
	DBMaxConnIdleTimeMins int   `env:"DB_MAX_CONN_IDLE_TIME_MINUTES" envDefault:"30"`

	// MongoDB
	MongoURI string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB  string `env:"MONGO_DB" envDefault:"angel_paradise"`

	// Redis
	RedisHost string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Cart TTL in hours (default: 7 days)
	CartTTLHours int `env:"CART_TTL_HOURS" envDefault:"168"`

	// Kafka
	EventsEnabled bool     `env:"EVENTS_ENABLED" envDefault:"false"`
	KafkaBrokers  []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Payments
	PaymentProvider string `env:"PAYMENT_PROVIDER" envDefault:"mock"`
	StripeSecretKey string `env:"STRIPE_SECRET_KEY" envDefault:""`
	StripeAPIURL    string `env:"STRIPE_API_URL" envDefault:"https://api.stripe.com"`

	// Media
	MediaProvider       string `env:"MEDIA_PROVIDER" envDefault:"memory"`
	MediaBaseURL        string `env:"MEDIA_BASE_URL" envDefault:"http://localhost:5000"`
	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME" envDefault:""`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY" envDefault:""`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET" envDefault:""`
	CloudinaryAPIURL    string `env:"CLOUDINARY_API_URL" envDefault:"https://api.cloudinary.com"`
	CloudinaryFolder    string `env:"CLOUDINARY_FOLDER" envDefault:"angel-paradise-products"`
	MaxUploadMB         int    `env:"MAX_UPLOAD_MB" envDefault:"10"`

	// HTTP edge
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:5173,http://localhost:3000" envSeparator:","`
	RateLimitRPS       float64  `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst     int      `env:"RATE_LIMIT_BURST" envDefault:"10"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// Pprof debug endpoints (IP allowlist in CIDR notation)
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.0/8,::1/128" envSeparator:","`

	// Slow query logging
	SlowQueryThresholdMs int `env:"LOG_SLOW_QUERY_MS" envDefault:"500"`
}

// Load reads configuration from the environment and an optional .env file.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.RequestTimeoutSeconds < 1 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive, got %d", c.RequestTimeoutSeconds)
	}

	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.PostgresHost == "" {
			return fmt.Errorf("POSTGRES_HOST is required")
		}
		if c.PostgresUser == "" {
			return fmt.Errorf("POSTGRES_USER is required")
		}
	case StoreDriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreDriverPostgres, StoreDriverMongo, c.StoreDriver)
	}

	if c.CartTTLHours < 1 {
		return fmt.Errorf("CART_TTL_HOURS must be positive, got %d", c.CartTTLHours)
	}
	if c.EventsEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when EVENTS_ENABLED is set")
	}

	switch c.PaymentProvider {
	case PaymentProviderMock:
	case PaymentProviderStripe:
		if c.StripeSecretKey == "" {
			return fmt.Errorf("STRIPE_SECRET_KEY is required for the stripe payment provider")
		}
	default:
		return fmt.Errorf("PAYMENT_PROVIDER must be %q or %q, got %q", PaymentProviderMock, PaymentProviderStripe, c.PaymentProvider)
	}

	switch c.MediaProvider {
	case MediaProviderMemory:
	case MediaProviderCloudinary:
		if c.CloudinaryCloudName == "" || c.CloudinaryAPIKey == "" || c.CloudinaryAPISecret == "" {
			return fmt.Errorf("CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required for the cloudinary media provider")
		}
	default:
		return fmt.Errorf("MEDIA_PROVIDER must be %q or %q, got %q", MediaProviderMemory, MediaProviderCloudinary, c.MediaProvider)
	}

	if c.MaxUploadMB < 1 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.OTELSampleRate)
	}
	return nil
}

// Postgres returns the connection settings for database.NewPostgresPool.
func (c *Config) Postgres() database.PostgresConfig {
	return database.PostgresConfig{
		Host:            c.PostgresHost,
		Port:            c.PostgresPort,
		User:            c.PostgresUser,
		Password:        c.PostgresPass,
		DBName:          c.PostgresDB,
		SSLMode:         c.PostgresSSL,
		MaxConns:        c.DBMaxConns,
		MinConns:        c.DBMinConns,
		MaxConnLifetime: time.Duration(c.DBMaxConnLifetimeMins) * time.Minute,
		MaxConnIdleTime: time.Duration(c.DBMaxConnIdleTimeMins) * time.Minute,
	}
}

// Mongo returns the connection settings for database.NewMongoDatabase.
func (c *Config) Mongo() database.MongoConfig {
	return database.MongoConfig{URI: c.MongoURI, Database: c.MongoDB}
}

// Redis returns the connection settings for database.NewRedisClient.
func (c *Config) Redis() database.RedisConfig {
	return database.RedisConfig{
		Host:     c.RedisHost,
		Port:     c.RedisPort,
		Password: c.RedisPass,
		DB:       c.RedisDB,
	}
}

// Tracing returns the tracer provider settings.
func (c *Config) Tracing() tracing.Config {
	return tracing.Config{
		ServiceName:    ServiceName,
		ServiceVersion: c.Version,
		Environment:    c.Environment,
		OTLPEndpoint:   c.OTELEndpoint,
		SampleRate:     c.OTELSampleRate,
		Enabled:        c.OTELEnabled,
	}
}

// CORS returns the CORS policy with the configured origins.
func (c *Config) CORS() middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = c.CORSAllowedOrigins
	cors.AllowCredentials = true
	return cors
}

// CartTTL returns the cart expiry as a duration.
func (c *Config) CartTTL() time.Duration {
	return time.Duration(c.CartTTLHours) * time.Hour
}

// RequestTimeout returns the per-request deadline.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// MaxUploadBytes returns the upload size limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}
