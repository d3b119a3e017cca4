package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/AngelsParadise/internal/domain"
	apperrors "github.com/utafrali/AngelsParadise/pkg/errors"
)

func setupTestRedis(t *testing.T) (*CartRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	repo := NewCartRepository(client, 24*time.Hour)
	return repo, mr
}

func sampleCart() *domain.Cart {
	return &domain.Cart{
		UserID: "user-001",
		Items: []domain.CartItem{
			{
				ProductID: "prod-1",
				Name:      "Pink Dress",
				Price:     19.9,
				Quantity:  2,
				Size:      "M",
				Color:     "pink",
			},
		},
	}
}

func storeCart(t *testing.T, mr *miniredis.Miniredis, cart *domain.Cart) {
	t.Helper()
	data, err := json.Marshal(cart)
	require.NoError(t, err)
	require.NoError(t, mr.Set("cart:"+cart.UserID, string(data)))
}

// ---------------------------------------------------------------------------
// Get
// ---------------------------------------------------------------------------

func TestCartRepository_Get_Success(t *testing.T) {
	repo, mr := setupTestRedis(t)

	cart := sampleCart()
	cart.Version = 4
	storeCart(t, mr, cart)

	got, err := repo.Get(context.Background(), cart.UserID)
	require.NoError(t, err)
	assert.Equal(t, cart.UserID, got.UserID)
	assert.Equal(t, 4, got.Version)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "prod-1", got.Items[0].ProductID)
	assert.Equal(t, "M", got.Items[0].Size)
	assert.Equal(t, 2, got.Items[0].Quantity)
}

func TestCartRepository_Get_NotFound(t *testing.T) {
	repo, _ := setupTestRedis(t)

	_, err := repo.Get(context.Background(), "nobody")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestCartRepository_Get_CorruptData(t *testing.T) {
	repo, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("cart:user-001", "{not json"))

	_, err := repo.Get(context.Background(), "user-001")
	require.Error(t, err)
	assert.False(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestCartRepository_Get_NullItemsBecomeEmpty(t *testing.T) {
	repo, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("cart:user-001", `{"userId":"user-001","items":null,"version":1}`))

	got, err := repo.Get(context.Background(), "user-001")
	require.NoError(t, err)
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
}

// ---------------------------------------------------------------------------
// SaveIfVersion
// ---------------------------------------------------------------------------

func TestCartRepository_SaveIfVersion_NewCart(t *testing.T) {
	repo, mr := setupTestRedis(t)
	cart := sampleCart()

	ok, err := repo.SaveIfVersion(context.Background(), cart, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, cart.Version)
	assert.False(t, cart.UpdatedAt.IsZero())
	assert.Equal(t, cart.UpdatedAt.Add(24*time.Hour), cart.ExpiresAt)

	assert.True(t, mr.Exists("cart:user-001"))
	assert.Equal(t, 24*time.Hour, mr.TTL("cart:user-001"))

	got, err := repo.Get(context.Background(), "user-001")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Version)
	assert.Len(t, got.Items, 1)
}

func TestCartRepository_SaveIfVersion_SequentialSaves(t *testing.T) {
	repo, _ := setupTestRedis(t)
	cart := sampleCart()

	for want := 1; want <= 3; want++ {
		ok, err := repo.SaveIfVersion(context.Background(), cart, cart.Version)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want, cart.Version)
	}
}

func TestCartRepository_SaveIfVersion_StaleVersion(t *testing.T) {
	repo, mr := setupTestRedis(t)

	stored := sampleCart()
	stored.Version = 3
	storeCart(t, mr, stored)

	stale := sampleCart()
	stale.Version = 2
	stale.Items[0].Quantity = 9

	ok, err := repo.SaveIfVersion(context.Background(), stale, 2)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 2, stale.Version)

	got, err := repo.Get(context.Background(), stale.UserID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Version)
	assert.Equal(t, 2, got.Items[0].Quantity)
}

func TestCartRepository_SaveIfVersion_ExistingCartExpectsZero(t *testing.T) {
	repo, mr := setupTestRedis(t)

	stored := sampleCart()
	stored.Version = 1
	storeCart(t, mr, stored)

	ok, err := repo.SaveIfVersion(context.Background(), sampleCart(), 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCartRepository_SaveIfVersion_RedisDown(t *testing.T) {
	repo, mr := setupTestRedis(t)
	mr.Close()

	ok, err := repo.SaveIfVersion(context.Background(), sampleCart(), 0)
	require.Error(t, err)
	assert.False(t, ok)
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestCartRepository_Delete(t *testing.T) {
	repo, mr := setupTestRedis(t)
	storeCart(t, mr, sampleCart())

	require.NoError(t, repo.Delete(context.Background(), "user-001"))
	assert.False(t, mr.Exists("cart:user-001"))
}

func TestCartRepository_Delete_MissingIsNoop(t *testing.T) {
	repo, _ := setupTestRedis(t)
	assert.NoError(t, repo.Delete(context.Background(), "nobody"))
}
