package common

import (
	"testing"
	"time"
)

func setupTestCache(t *testing.T) (*Cache, func()) {
	t.Helper()

	cache := NewCache(0, 0)

	cleanup := func() {
		cache.Flush()
	}

	return cache, cleanup
}

func TestCache_SetGet(t *testing.T) {
	cache, cleanup := setupTestCache(t)
	defer cleanup()

	cache.Set(CacheKeyTrendingBlogs(), []string{"blog-a", "blog-b"})

	if _, ok := cache.Get(CacheKeyTrendingBlogs()); !ok {
		t.Error("expected key to be set")
	}
}

func TestCache_SetWithExpiration(t *testing.T) {
	cache, cleanup := setupTestCache(t)
	defer cleanup()

	cache.Set(CacheKeyPublishedCount(), 42, 10*time.Millisecond)

	if _, ok := cache.Get(CacheKeyPublishedCount()); !ok {
		t.Error("expected key to be set")
	}

	time.Sleep(20 * time.Millisecond)

	if _, ok := cache.Get(CacheKeyPublishedCount()); ok {
		t.Error("expected key to have expired")
	}
}

func TestCache_Flush(t *testing.T) {
	cache, cleanup := setupTestCache(t)
	defer cleanup()

	cache.Set(CacheKeyLatestBlogs(1), "value")
	cache.Flush()

	if _, ok := cache.Get(CacheKeyLatestBlogs(1)); ok {
		t.Error("expected cache to be flushed")
	}
}
