package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRateLimit(t *testing.T, now time.Time) (*redisRepository, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	repo := &redisRepository{
		client: client,
		cfg:    config.RateConfig{MaxAttempts: 3, WindowSize: time.Minute},
		now:    func() time.Time { return now },
	}

	return repo, mock
}

func TestCheckRateLimit(t *testing.T) {
	ctx := t.Context()
	now := time.Unix(1_700_000_000, 0)
	key := "rate_limit:payments:user-1"

	t.Run("Success - Under Limit", func(t *testing.T) {
		// Arrange
		repo, mock := setupRateLimit(t, now)

		mock.ExpectZRemRangeByScore(key, "0", fmt.Sprintf("%d", now.Unix()-60)).SetVal(0)
		mock.ExpectZAdd(key, redis.Z{Score: float64(now.Unix()), Member: now.Unix()}).SetVal(1)
		mock.ExpectZCard(key).SetVal(1)
		mock.ExpectExpire(key, time.Minute).SetVal(true)

		// Act
		allowed, remaining, retryAfter, err := repo.CheckRateLimit(ctx, "payments:user-1")

		// Assert
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 2, remaining)
		assert.Equal(t, 0, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Limit Exceeded", func(t *testing.T) {
		// Arrange
		repo, mock := setupRateLimit(t, now)

		mock.ExpectZRemRangeByScore(key, "0", fmt.Sprintf("%d", now.Unix()-60)).SetVal(0)
		mock.ExpectZAdd(key, redis.Z{Score: float64(now.Unix()), Member: now.Unix()}).SetVal(1)
		mock.ExpectZCard(key).SetVal(4)
		mock.ExpectExpire(key, time.Minute).SetVal(true)
		mock.ExpectZRangeArgsWithScores(redis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).
			SetVal([]redis.Z{{Score: float64(now.Unix() - 20), Member: fmt.Sprintf("%d", now.Unix()-20)}})

		// Act
		allowed, remaining, retryAfter, err := repo.CheckRateLimit(ctx, "payments:user-1")

		// Assert
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Equal(t, 0, remaining)
		assert.Equal(t, 40, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Pipeline Error", func(t *testing.T) {
		// Arrange
		repo, mock := setupRateLimit(t, now)

		mock.ExpectZRemRangeByScore(key, "0", fmt.Sprintf("%d", now.Unix()-60)).SetErr(errors.New("connection refused"))

		// Act
		allowed, _, _, err := repo.CheckRateLimit(ctx, "payments:user-1")

		// Assert
		require.Error(t, err)
		assert.False(t, allowed)
		assert.Contains(t, err.Error(), "redis pipeline error")
	})
}
