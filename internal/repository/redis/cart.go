package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/AngelsParadise/internal/domain"
	"github.com/utafrali/AngelsParadise/pkg/database"
	apperrors "github.com/utafrali/AngelsParadise/pkg/errors"
)

const keyPrefix = "cart:"

var errVersionMismatch = errors.New("cart version mismatch")

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// CartRepository implements repository.CartRepository using Redis.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository creates a new Redis-backed cart repository.
func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves a cart by user ID from Redis.
func (r *CartRepository) Get(ctx context.Context, userID string) (_ *domain.Cart, err error) {
	ctx, end := database.TraceOperation(ctx, database.SystemRedis, "GetCart", "GET")
	defer func() { end(err) }()

	cart, err := r.load(ctx, r.client, keyPrefix+userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, apperrors.NotFound("cart", userID)
	}
	return cart, nil
}

// SaveIfVersion writes cart only when the stored version equals
// expectedVersion. A missing cart has version 0. On success cart.Version,
// UpdatedAt and ExpiresAt are refreshed.
func (r *CartRepository) SaveIfVersion(ctx context.Context, cart *domain.Cart, expectedVersion int) (_ bool, err error) {
	ctx, end := database.TraceOperation(ctx, database.SystemRedis, "SaveCart", "WATCH/MULTI/SET")
	defer func() { end(err) }()

	key := keyPrefix + cart.UserID

	txf := func(tx *redis.Tx) error {
		stored, err := r.load(ctx, tx, key)
		if err != nil {
			return err
		}
		current := 0
		if stored != nil {
			current = stored.Version
		}
		if current != expectedVersion {
			return errVersionMismatch
		}

		next := *cart
		next.Version = expectedVersion + 1
		next.UpdatedAt = time.Now().UTC()
		next.ExpiresAt = next.UpdatedAt.Add(r.ttl)

		data, err := json.Marshal(&next)
		if err != nil {
			return fmt.Errorf("marshal cart: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		if err != nil {
			return err
		}

		*cart = next
		return nil
	}

	err = r.client.Watch(ctx, txf, key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errVersionMismatch), errors.Is(err, redis.TxFailedErr):
		return false, nil
	default:
		return false, fmt.Errorf("redis save cart: %w", err)
	}
}

// Delete removes a cart from Redis by user ID.
func (r *CartRepository) Delete(ctx context.Context, userID string) (err error) {
	ctx, end := database.TraceOperation(ctx, database.SystemRedis, "DeleteCart", "DEL")
	defer func() { end(err) }()

	if err = r.client.Del(ctx, keyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("redis del cart: %w", err)
	}
	return nil
}

// load returns nil, nil when the key does not exist.
func (r *CartRepository) load(ctx context.Context, c getter, key string) (*domain.Cart, error) {
	data, err := c.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	return &cart, nil
}
