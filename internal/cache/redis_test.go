package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacchuvinay/ultra-fitness-backend/internal/config"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/models"
)

func setupTestCache(t *testing.T) *Cache {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return cache
}

func TestSetAndGet(t *testing.T) {
	cache := setupTestCache(t)

	expected := models.Customer{
		UID:      "uid-1",
		MemberID: "U001",
		Name:     "Alice",
		Plan:     "Gold",
		Validity: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	err := cache.Set("customer:uid-1", expected, time.Minute)
	require.NoError(t, err)

	var actual models.Customer
	found, err := cache.Get("customer:uid-1", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected.MemberID, actual.MemberID)
	assert.True(t, expected.Validity.Equal(actual.Validity))
}

func TestGetNotFound(t *testing.T) {
	cache := setupTestCache(t)

	var out models.Customer
	found, err := cache.Get("no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache := setupTestCache(t)

	err := cache.Set("key", "value", time.Minute)
	require.NoError(t, err)

	err = cache.Invalidate("key")
	require.NoError(t, err)

	var out string
	found, err := cache.Get("key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetInvalidJSON(t *testing.T) {
	cache := setupTestCache(t)

	err := cache.Db.Set(context.Background(), "bad", []byte("not-json"), time.Minute).Err()
	require.NoError(t, err)

	var out models.Customer
	found, err := cache.Get("bad", &out)
	require.Error(t, err)
	assert.False(t, found)
}
