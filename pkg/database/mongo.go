package database

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// NewMongoDatabase connects, pings the primary and returns the named database.
// The caller owns the client via db.Client().Disconnect.
func NewMongoDatabase(ctx context.Context, cfg MongoConfig, logger *slog.Logger) (*mongo.Database, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	opts := options.Client().ApplyURI(cfg.URI).SetConnectTimeout(timeout)

	client, err := connectWithRetry(ctx, "mongodb", logger, func(ctx context.Context) (*mongo.Client, error) {
		client, err := mongo.Connect(ctx, opts)
		if err != nil {
			return nil, err
		}
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return client, nil
	})
	if err != nil {
		return nil, err
	}
	return client.Database(cfg.Database), nil
}
