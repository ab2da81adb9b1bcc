package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// setupTestRedis creates a test Redis client, skipping the test when no
// local Redis is available. Integration tests against a containerized
// Redis live in cmd/scrape-server.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15, // Use a separate DB for tests
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for testing: %v", err)
	}

	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush test DB: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

func TestNewManager_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("NewManager should panic with nil redis client")
		}
	}()
	NewManager(nil)
}

func TestNilManager(t *testing.T) {
	var m *Manager
	ctx := context.Background()
	key := Key{URL: "http://example.com/"}

	if _, err := m.Get(ctx, key); err != ErrCacheMiss {
		t.Errorf("nil manager Get error = %v, want ErrCacheMiss", err)
	}
	if err := m.Set(ctx, key, NewEntry("x", 200, time.Minute)); err != nil {
		t.Errorf("nil manager Set error = %v, want nil", err)
	}
	if err := m.Delete(ctx, key); err != nil {
		t.Errorf("nil manager Delete error = %v, want nil", err)
	}
}

func TestManager_SetAndGet(t *testing.T) {
	client := setupTestRedis(t)
	manager := NewManager(client)
	ctx := context.Background()

	key := Key{URL: "http://example.com/list?page=1"}
	entry := NewEntry("<table><tr><td>x</td></tr></table>", 200, 5*time.Minute)

	if err := manager.Set(ctx, key, entry); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := manager.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Body != entry.Body {
		t.Errorf("Body = %q, want %q", got.Body, entry.Body)
	}
	if got.StatusCode != 200 {
		t.Errorf("StatusCode = %d, want 200", got.StatusCode)
	}
}

func TestManager_GetMiss(t *testing.T) {
	client := setupTestRedis(t)
	manager := NewManager(client)

	_, err := manager.Get(context.Background(), Key{URL: "http://example.com/absent"})
	if err != ErrCacheMiss {
		t.Errorf("Get error = %v, want ErrCacheMiss", err)
	}
}

func TestManager_ExpiredEntryNotStored(t *testing.T) {
	client := setupTestRedis(t)
	manager := NewManager(client)
	ctx := context.Background()

	key := Key{URL: "http://example.com/expired"}
	entry := &Entry{
		Body:      "stale",
		FetchedAt: time.Now().Add(-time.Hour),
		Expires:   time.Now().Add(-time.Minute),
	}

	if err := manager.Set(ctx, key, entry); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := manager.Get(ctx, key); err != ErrCacheMiss {
		t.Errorf("Get error = %v, want ErrCacheMiss (expired entries are not written)", err)
	}
}

func TestManager_Delete(t *testing.T) {
	client := setupTestRedis(t)
	manager := NewManager(client)
	ctx := context.Background()

	key := Key{URL: "http://example.com/gone"}
	if err := manager.Set(ctx, key, NewEntry("x", 200, time.Minute)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := manager.Delete(ctx, key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := manager.Get(ctx, key); err != ErrCacheMiss {
		t.Errorf("Get after Delete error = %v, want ErrCacheMiss", err)
	}
}
