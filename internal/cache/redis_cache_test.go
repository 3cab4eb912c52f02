package cache_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/cache"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/go-redis/redismock/v9"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setup(t *testing.T) (cache.Cache, redismock.ClientMock, *config.CacheConfig) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	cfg := &config.CacheConfig{DefaultTTL: 10 * time.Minute, Namespace: "test"}

	return cache.NewRedisCache(client, cfg), mock, cfg
}

func testProduct() *models.Product {
	return &models.Product{
		ID:       primitive.NewObjectID(),
		Name:     "Trail Shoe",
		Category: "shoes",
		Price:    79.5,
		Stock:    4,
	}
}

func TestGet(t *testing.T) {
	ctx := t.Context()
	product := testProduct()
	key := cache.ProductKey(product.ID)
	stored := "test:" + key

	jsonData, err := json.Marshal(product)
	require.NoError(t, err)

	t.Run("Success - Product Found", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		mock.ExpectGet(stored).SetVal(string(jsonData))

		// Act
		var result models.Product
		found, err := redisCache.Get(ctx, key, &result)

		// Assert
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, product.ID, result.ID)
		assert.Equal(t, product.Price, result.Price)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Cache Miss", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		mock.ExpectGet(stored).SetErr(redis.Nil)
		misses := testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("miss"))

		// Act
		var result models.Product
		found, err := redisCache.Get(ctx, key, &result)

		// Assert
		require.NoError(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
		assert.Equal(t, misses+1, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("miss")))
	})

	t.Run("Success - Empty Namespace Uses Key As Is", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		redisCache := cache.NewRedisCache(client, &config.CacheConfig{DefaultTTL: time.Minute})
		mock.ExpectGet(key).SetVal(string(jsonData))

		var result models.Product
		found, err := redisCache.Get(ctx, key, &result)

		require.NoError(t, err)
		assert.True(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		expectedErr := errors.New("redis connection error")
		mock.ExpectGet(stored).SetErr(expectedErr)

		// Act
		var result models.Product
		found, err := redisCache.Get(ctx, key, &result)

		// Assert
		require.Error(t, err)
		assert.False(t, found)
		assert.ErrorIs(t, err, expectedErr)
		assert.Contains(t, err.Error(), "failed to get key "+key+" from redis")
	})

	t.Run("Failure - Corrupt Entry", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		mock.ExpectGet(stored).SetVal(`{"price": "cheap"}`)

		// Act
		var result models.Product
		found, err := redisCache.Get(ctx, key, &result)

		// Assert
		require.Error(t, err)
		assert.False(t, found)

		var jsonErr *json.UnmarshalTypeError
		assert.ErrorAs(t, err, &jsonErr)
	})
}

func TestSet(t *testing.T) {
	ctx := t.Context()
	product := testProduct()
	key := cache.ProductKey(product.ID)
	stored := "test:" + key

	jsonData, err := json.Marshal(product)
	require.NoError(t, err)

	t.Run("Success - With Specific TTL", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		mock.ExpectSet(stored, jsonData, time.Minute).SetVal("OK")

		// Act
		err := redisCache.Set(ctx, key, product, time.Minute)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Falls Back To Default TTL", func(t *testing.T) {
		// Arrange
		redisCache, mock, cfg := setup(t)
		mock.ExpectSet(stored, jsonData, cfg.DefaultTTL).SetVal("OK")

		// Act
		err := redisCache.Set(ctx, key, product, 0)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Marshal Error", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)

		// Act
		err := redisCache.Set(ctx, key, make(chan int), time.Minute)

		// Assert
		require.Error(t, err)

		var jsonErr *json.UnsupportedTypeError
		assert.ErrorAs(t, err, &jsonErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		expectedErr := errors.New("redis SET failed")
		mock.ExpectSet(stored, jsonData, time.Minute).SetErr(expectedErr)

		// Act
		err := redisCache.Set(ctx, key, product, time.Minute)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, expectedErr)
	})
}

func TestDelete(t *testing.T) {
	ctx := t.Context()
	key := cache.ProductKey(primitive.NewObjectID())
	stored := "test:" + key

	t.Run("Success", func(t *testing.T) {
		redisCache, mock, _ := setup(t)
		mock.ExpectDel(stored).SetVal(1)

		require.NoError(t, redisCache.Delete(ctx, key))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		redisCache, mock, _ := setup(t)
		expectedErr := errors.New("redis DEL failed")
		mock.ExpectDel(stored).SetErr(expectedErr)

		err := redisCache.Delete(ctx, key)

		require.Error(t, err)
		assert.ErrorIs(t, err, expectedErr)
	})
}

func TestProductKey(t *testing.T) {
	id, err := primitive.ObjectIDFromHex("65a1f0c2e4b0a1b2c3d4e5f6")
	require.NoError(t, err)

	assert.Equal(t, "product:65a1f0c2e4b0a1b2c3d4e5f6", cache.ProductKey(id))
	assert.Equal(t, "prefix:", cache.Key("prefix", ""))
}
