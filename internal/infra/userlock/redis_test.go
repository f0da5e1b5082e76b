//go:build unit

package userlock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestRedisLocker_TryLock(t *testing.T) {
	ctx := context.Background()

	t.Run("基本成功ケース", func(t *testing.T) {
		client, mr := setupTestRedis(t)
		locker := NewRedisLocker(client, 10*time.Second)
		userID := uuid.New()

		unlock, ok, err := locker.TryLock(ctx, userID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, mr.Exists(keyPrefix+userID.String()))

		require.NoError(t, unlock(ctx))
		assert.False(t, mr.Exists(keyPrefix+userID.String()))
	})

	t.Run("同一ユーザーの二重取得は失敗", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		locker := NewRedisLocker(client, 10*time.Second)
		userID := uuid.New()

		unlock, ok, err := locker.TryLock(ctx, userID)
		require.NoError(t, err)
		require.True(t, ok)
		defer func() { _ = unlock(ctx) }()

		_, ok, err = locker.TryLock(ctx, userID)
		require.NoError(t, err)
		assert.False(t, ok)

		// other users are independent
		otherUnlock, ok, err := locker.TryLock(ctx, uuid.New())
		require.NoError(t, err)
		assert.True(t, ok)
		require.NoError(t, otherUnlock(ctx))
	})

	t.Run("期限切れ後は再取得でき古い解放は新しいロックを消さない", func(t *testing.T) {
		client, mr := setupTestRedis(t)
		locker := NewRedisLocker(client, time.Second)
		userID := uuid.New()

		staleUnlock, ok, err := locker.TryLock(ctx, userID)
		require.NoError(t, err)
		require.True(t, ok)

		mr.FastForward(2 * time.Second)

		_, ok, err = locker.TryLock(ctx, userID)
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, staleUnlock(ctx))
		assert.True(t, mr.Exists(keyPrefix+userID.String()))
	})

	t.Run("Redis停止時はエラー", func(t *testing.T) {
		client, mr := setupTestRedis(t)
		locker := NewRedisLocker(client, time.Second)
		mr.Close()

		_, ok, err := locker.TryLock(ctx, uuid.New())
		assert.Error(t, err)
		assert.False(t, ok)
	})
}
