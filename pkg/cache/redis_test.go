package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedis is an in-memory redisClient. failures makes the next N calls
// return a connection error.
type fakeRedis struct {
	mu       sync.Mutex
	data     map[string][]byte
	ttls     map[string]time.Duration
	failures int
	calls    int
	closed   bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) fail() error {
	f.calls++
	if f.failures > 0 {
		f.failures--
		return errors.New("connection refused")
	}
	return nil
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail(); err != nil {
		return redis.NewStringResult("", err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail(); err != nil {
		return redis.NewStatusResult("", err)
	}
	f.data[key] = value.([]byte)
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail(); err != nil {
		return redis.NewIntResult(0, err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	c := newRedisCache(fake, "textvary:")

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get on empty cache = hit %v, err %v; want miss", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, ok := fake.data["textvary:k"]; !ok {
		t.Error("Set should store under the prefixed key")
	}
	if fake.ttls["textvary:k"] != time.Minute {
		t.Errorf("ttl = %v, want 1m", fake.ttls["textvary:k"])
	}

	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Errorf("Get = %q, %v, %v; want v, true, nil", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}

	if err := c.Close(); err != nil || !fake.closed {
		t.Error("Close should close the client")
	}
}

func TestRedisCacheNegativeTTL(t *testing.T) {
	fake := newFakeRedis()
	c := newRedisCache(fake, "")
	_ = c.Set(context.Background(), "k", []byte("v"), -time.Second)
	if fake.ttls["k"] != 0 {
		t.Errorf("negative ttl should be stored as no expiry, got %v", fake.ttls["k"])
	}
}

func TestRedisCacheRetriesTransientErrors(t *testing.T) {
	fake := newFakeRedis()
	fake.data["k"] = []byte("v")
	fake.failures = 1
	c := newRedisCache(fake, "")

	data, hit, err := c.Get(context.Background(), "k")
	if err != nil || !hit || string(data) != "v" {
		t.Errorf("Get = %q, %v, %v; want recovery after one failure", data, hit, err)
	}
	if fake.calls != 2 {
		t.Errorf("calls = %d, want 2", fake.calls)
	}
}

func TestRedisCacheCancelledContext(t *testing.T) {
	fake := newFakeRedis()
	fake.failures = 10
	c := newRedisCache(fake, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := c.Get(ctx, "k")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Get error = %v, want context.Canceled", err)
	}
	if !errors.Is(transient(errors.New("boom")), ErrNetwork) {
		t.Error("transient errors should wrap ErrNetwork")
	}
	if IsRetryable(transient(context.DeadlineExceeded)) {
		t.Error("context errors should not be retryable")
	}
}
