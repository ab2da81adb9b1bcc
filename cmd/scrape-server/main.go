package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/tablescrape/tablescrape/pkg/cache"
	"github.com/tablescrape/tablescrape/pkg/fetch"
	"github.com/tablescrape/tablescrape/pkg/logging"
)

func main() {
	// Configuration from environment
	port := getEnv("PORT", "8080")
	redisURL := getEnv("REDIS_URL", "")
	cacheTTL := getDurationEnv("CACHE_TTL", 5*time.Minute)
	indexFile := getEnv("INDEX_FILE", "web/index.html")

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(getEnv("LOG_LEVEL", "info")),
		Pretty: getEnv("LOG_PRETTY", "") == "true",
		Output: os.Stderr,
	})
	logger := logging.NewLogger("scrape-server")

	// Page cache is optional: enabled only when REDIS_URL is set.
	var pageCache *cache.Manager
	if redisURL != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr: redisURL,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Fatal().Err(err).Str("redis_url", redisURL).Msg("Failed to connect to Redis")
		}
		pageCache = cache.NewManager(redisClient)
		logger.Info().Str("redis_url", redisURL).Dur("ttl", cacheTTL).Msg("Page cache enabled")
	}

	fetcherCfg := fetch.DefaultConfig()
	fetcherCfg.Cache = pageCache
	fetcherCfg.CacheTTL = cacheTTL
	fetcher := fetch.New(fetcherCfg)

	srv := newServer(fetcher, indexFile)

	addr := ":" + port
	logger.Info().Str("addr", addr).Msg("Starting scrape server")

	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Msg("Invalid duration, using default")
		return defaultValue
	}
	return d
}
