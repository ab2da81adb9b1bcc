// Package fetch provides the single-page HTTP fetcher with a
// browser-like identity, per-request timeout and optional Redis-backed
// page caching.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tablescrape/tablescrape/pkg/cache"
)

// Prometheus metrics for page fetch operations.
var (
	fetchRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tablescrape_fetch_requests_total",
		Help: "Total page fetches by outcome",
	}, []string{"status"})

	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tablescrape_fetch_duration_seconds",
		Help:    "Page fetch duration in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20},
	})

	fetchErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tablescrape_fetch_errors_total",
		Help: "Total page fetch errors by class",
	}, []string{"class"})
)

// BrowserUserAgent is the identification header sent with every fetch.
// Some sites serve different (or no) markup to non-browser agents.
const BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultTimeout bounds a single page fetch.
const DefaultTimeout = 20 * time.Second

// Config holds the fetcher configuration.
type Config struct {
	// Timeout per page fetch (default: DefaultTimeout).
	Timeout time.Duration

	// UserAgent sent with every request (default: BrowserUserAgent).
	UserAgent string

	// Cache is the optional page body cache; nil disables caching.
	Cache *cache.Manager

	// CacheTTL is how long fetched bodies stay cached.
	CacheTTL time.Duration
}

// DefaultConfig returns a configuration with caching disabled.
func DefaultConfig() Config {
	return Config{
		Timeout:   DefaultTimeout,
		UserAgent: BrowserUserAgent,
		CacheTTL:  5 * time.Minute,
	}
}

// Fetcher fetches single pages. Safe for concurrent use.
type Fetcher struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger
}

// New creates a page fetcher.
func New(cfg Config) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = BrowserUserAgent
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		config: cfg,
		logger: log.With().Str("component", "fetcher").Logger(),
	}
}

// Page fetches one page and returns its body text.
//
// Any failure (network error, timeout, non-2xx status) is returned as
// an error; callers are expected to absorb it and let the page
// contribute zero rows. There are no retries.
func (f *Fetcher) Page(ctx context.Context, url string) (string, error) {
	startTime := time.Now()
	defer func() {
		fetchDuration.Observe(time.Since(startTime).Seconds())
	}()

	cacheKey := cache.Key{URL: url}
	if entry, err := f.config.Cache.Get(ctx, cacheKey); err == nil {
		f.logger.Debug().
			Str("url", url).
			Dur("age", entry.Age()).
			Msg("Page cache hit")
		fetchRequestsTotal.WithLabelValues("cache_hit").Inc()
		return entry.Body, nil
	} else if err != cache.ErrCacheMiss {
		f.logger.Warn().Err(err).Str("url", url).Msg("Cache get error")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		fetchErrorsTotal.WithLabelValues(string(ErrorClassClient)).Inc()
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logger.Warn().Err(err).Str("url", url).Msg("Page fetch failed")
		fetchErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		fetchRequestsTotal.WithLabelValues("network_error").Inc()
		return "", &FetchError{URL: url, ErrorClass: ErrorClassNetwork, Err: err}
	}
	defer resp.Body.Close()

	fetchRequestsTotal.WithLabelValues(fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errClass := classifyStatus(resp.StatusCode)
		fetchErrorsTotal.WithLabelValues(string(errClass)).Inc()
		f.logger.Warn().
			Str("url", url).
			Int("status", resp.StatusCode).
			Str("error_class", string(errClass)).
			Msg("Page fetch returned error status")
		return "", &FetchError{
			URL:        url,
			StatusCode: resp.StatusCode,
			ErrorClass: errClass,
			Message:    resp.Status,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fetchErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		return "", &FetchError{URL: url, ErrorClass: ErrorClassNetwork, Err: err}
	}

	if f.config.Cache != nil {
		entry := cache.NewEntry(string(body), resp.StatusCode, f.config.CacheTTL)
		if err := f.config.Cache.Set(ctx, cacheKey, entry); err != nil {
			f.logger.Warn().Err(err).Str("url", url).Msg("Failed to cache page")
		} else {
			f.logger.Debug().
				Str("url", url).
				Dur("ttl", entry.TTL()).
				Msg("Cached page body")
		}
	}

	return string(body), nil
}
