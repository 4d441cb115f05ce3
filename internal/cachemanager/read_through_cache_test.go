package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadThroughCache_MissCallsLoader(t *testing.T) {
	cache := NewInMemoryCacheManager[string, []string]("test", DefaultExpiration, DefaultCleanupInterval)

	calls := 0
	rtc := NewReadThroughCache(cache, func(ctx context.Context, category string) ([]string, error) {
		calls++
		return []string{"Physician"}, nil
	}, false)

	got, err := rtc.Get(context.Background(), "types:Medical Staff", "Medical Staff", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, []string{"Physician"}, got)
	assert.Equal(t, 1, calls)
}

func TestReadThroughCache_HitSkipsLoader(t *testing.T) {
	cache := NewInMemoryCacheManager[string, []string]("test", DefaultExpiration, DefaultCleanupInterval)

	calls := 0
	rtc := NewReadThroughCache(cache, func(ctx context.Context, category string) ([]string, error) {
		calls++
		return []string{"Physician"}, nil
	}, false)

	ctx := context.Background()
	_, err := rtc.Get(ctx, "k", "in", time.Minute)
	require.NoError(t, err)
	_, err = rtc.Get(ctx, "k", "in", time.Minute)
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "second Get should be served from the cache")
}

func TestReadThroughCache_ErrorNotCached(t *testing.T) {
	cache := NewInMemoryCacheManager[string, []string]("test", DefaultExpiration, DefaultCleanupInterval)

	calls := 0
	rtc := NewReadThroughCache(cache, func(ctx context.Context, category string) ([]string, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("backend down")
		}
		return []string{"Nurse"}, nil
	}, false)

	ctx := context.Background()
	_, err := rtc.Get(ctx, "k", "in", time.Minute)
	require.Error(t, err)

	got, err := rtc.Get(ctx, "k", "in", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, []string{"Nurse"}, got)
	assert.Equal(t, 2, calls)
}

func TestReadThroughCache_SkipCache(t *testing.T) {
	cache := NewInMemoryCacheManager[string, []string]("test", DefaultExpiration, DefaultCleanupInterval)

	calls := 0
	rtc := NewReadThroughCache(cache, func(ctx context.Context, category string) ([]string, error) {
		calls++
		return nil, nil
	}, true)

	ctx := context.Background()
	_, _ = rtc.Get(ctx, "k", "in", time.Minute)
	_, _ = rtc.Get(ctx, "k", "in", time.Minute)

	assert.Equal(t, 2, calls, "skip-cache mode must always call the loader")
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	cache := NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()

	cache.Set(ctx, "a", 1, time.Minute)
	cache.Set(ctx, "b", 2, time.Minute)

	require.NoError(t, cache.Delete(ctx, "a"))
	_, ok := cache.Get(ctx, "a")
	assert.False(t, ok)
	_, ok = cache.Get(ctx, "b")
	assert.True(t, ok)

	require.NoError(t, cache.Flush(ctx))
	_, ok = cache.Get(ctx, "b")
	assert.False(t, ok)
}
