package main

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tablescrape/tablescrape/internal/testutil"
	"github.com/tablescrape/tablescrape/pkg/cache"
	"github.com/tablescrape/tablescrape/pkg/fetch"
	"github.com/tablescrape/tablescrape/pkg/scrape"
	"github.com/tablescrape/tablescrape/pkg/table"
)

func setupTestRedis(t *testing.T) (*redis.Client, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("Failed to start Redis container: %v", err)
	}

	host, err := redisC.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := redisC.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: host + ":" + port.Port(),
	})

	cleanup := func() {
		redisClient.Close()
		redisC.Terminate(ctx)
	}

	return redisClient, cleanup
}

// TestScrapeWithPageCache verifies that a cache-enabled fetcher serves
// repeated scrapes from Redis instead of refetching every page.
func TestScrapeWithPageCache(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	redisClient, cleanup := setupTestRedis(t)
	defer cleanup()

	site := testutil.NewMockSite()
	defer site.Close()
	testutil.PaginatedTableSite(site, 3, 2)

	cfg := fetch.DefaultConfig()
	cfg.Cache = cache.NewManager(redisClient)
	cfg.CacheTTL = time.Minute
	fetcher := fetch.New(cfg)

	scraper := scrape.New(fetcher, scrape.DefaultConfig())
	pages := []int{1, 2, 3}
	spec := table.DefaultSpec()

	first := scraper.ScrapePages(context.Background(), site.URL()+"/list", pages, spec)
	if len(first.Rows) != 6 {
		t.Fatalf("first scrape rows = %d, want 6", len(first.Rows))
	}
	fetched := site.GetRequestCount()
	if fetched != 3 {
		t.Fatalf("requests after first scrape = %d, want 3", fetched)
	}

	second := scraper.ScrapePages(context.Background(), site.URL()+"/list", pages, spec)
	if len(second.Rows) != 6 {
		t.Fatalf("second scrape rows = %d, want 6", len(second.Rows))
	}
	if got := site.GetRequestCount(); got != fetched {
		t.Errorf("requests after second scrape = %d, want %d (pages served from cache)", got, fetched)
	}
}
