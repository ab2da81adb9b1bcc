package scrape

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tablescrape/tablescrape/pkg/table"
	"github.com/tablescrape/tablescrape/pkg/urltemplate"
)

// Concurrency bounds for the worker pool.
const (
	MinConcurrency     = 1
	MaxConcurrency     = 32
	DefaultConcurrency = 10
)

// Config holds the aggregator configuration.
type Config struct {
	// Concurrency is the worker pool size, clamped to [1, 32].
	Concurrency int

	// PageTimeout bounds each page task (default: 20s).
	PageTimeout time.Duration
}

// DefaultConfig returns safe defaults.
func DefaultConfig() Config {
	return Config{
		Concurrency: DefaultConcurrency,
		PageTimeout: 20 * time.Second,
	}
}

// PageFetcher fetches a single page body. *fetch.Fetcher implements it.
type PageFetcher interface {
	Page(ctx context.Context, url string) (string, error)
}

// pageResult carries one page's contribution to the collector.
type pageResult struct {
	page  int
	table table.Table
	ok    bool
}

// Scraper fans page tasks out over a bounded worker pool and merges
// the per-page tables into one aggregate.
type Scraper struct {
	fetcher PageFetcher
	config  Config
	logger  zerolog.Logger
}

// New creates a scraper. Concurrency outside [1, 32] is clamped.
func New(fetcher PageFetcher, config Config) *Scraper {
	if config.Concurrency < MinConcurrency {
		config.Concurrency = DefaultConcurrency
	}
	if config.Concurrency > MaxConcurrency {
		config.Concurrency = MaxConcurrency
	}
	if config.PageTimeout <= 0 {
		config.PageTimeout = 20 * time.Second
	}

	return &Scraper{
		fetcher: fetcher,
		config:  config,
		logger:  log.With().Str("component", "scraper").Logger(),
	}
}

// ScrapePages fetches every page in pages, extracts the table selected
// by spec from each, and returns the row-wise union.
//
// The aggregate's headers come from the first page collected with data;
// later pages merge positionally. Rows appear in page completion
// order. When no page yields data the returned table is empty.
func (s *Scraper) ScrapePages(ctx context.Context, template string, pages []int, spec table.Spec) table.Table {
	start := time.Now()

	s.logger.Info().
		Str("template", template).
		Int("pages", len(pages)).
		Int("concurrency", s.config.Concurrency).
		Msg("Starting page scrape")

	pageQueue := make(chan int, len(pages))
	results := make(chan pageResult, len(pages))

	for _, page := range pages {
		pageQueue <- page
	}
	close(pageQueue)

	workers := s.config.Concurrency
	if workers > len(pages) {
		workers = len(pages)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go s.worker(ctx, template, spec, pageQueue, results, &wg, i)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var agg table.Table
	collected := 0
	for result := range results {
		if !result.ok || result.table.Empty() {
			continue
		}
		collected++
		if agg.Headers == nil {
			agg = result.table
			continue
		}
		agg.Append(result.table)
	}

	s.logger.Info().
		Int("pages_with_data", collected).
		Int("pages_total", len(pages)).
		Int("rows", len(agg.Rows)).
		Dur("duration", time.Since(start)).
		Msg("Scrape complete")

	return agg
}

// worker processes pages from the queue until it is drained or the
// context is cancelled.
func (s *Scraper) worker(ctx context.Context, template string, spec table.Spec, pageQueue <-chan int, results chan<- pageResult, wg *sync.WaitGroup, workerID int) {
	defer wg.Done()

	for page := range pageQueue {
		select {
		case <-ctx.Done():
			s.logger.Debug().
				Int("worker_id", workerID).
				Msg("Worker stopping (context cancelled)")
			return
		default:
		}

		results <- s.scrapeOne(ctx, template, page, spec)
	}
}

// scrapeOne runs the full pipeline for a single page. Every failure
// mode collapses into an absent result.
func (s *Scraper) scrapeOne(ctx context.Context, template string, page int, spec table.Spec) pageResult {
	url := urltemplate.ForPage(template, page)

	pageCtx, cancel := context.WithTimeout(ctx, s.config.PageTimeout)
	defer cancel()

	body, err := s.fetcher.Page(pageCtx, url)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Int("page", page).
			Str("url", url).
			Msg("Page fetch failed")
		return pageResult{page: page}
	}

	tbl, ok := table.FromHTML(body, spec)
	if !ok {
		s.logger.Debug().
			Int("page", page).
			Str("url", url).
			Msg("Page has no extractable table data")
		return pageResult{page: page}
	}

	return pageResult{page: page, table: tbl, ok: true}
}
