package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tablescrape/tablescrape/pkg/export"
	"github.com/tablescrape/tablescrape/pkg/logging"
	"github.com/tablescrape/tablescrape/pkg/scrape"
	"github.com/tablescrape/tablescrape/pkg/table"
)

// Request field defaults and limits.
const (
	defaultSelector = "table"
	defaultMaxPages = 100
	hardMaxPages    = 100
)

// scrapeRequest is the POST /api/scrape body.
type scrapeRequest struct {
	Template           string `json:"template"`
	CSSSelector        string `json:"css_selector"`
	TableIndex         int    `json:"table_index"`
	HeaderStrategy     string `json:"header_strategy"`
	StartPage          int    `json:"start_page"`
	EndPage            int    `json:"end_page"`
	Concurrency        int    `json:"concurrency"`
	MaxPagesPerRequest int    `json:"max_pages_per_request"`
	Format             string `json:"format"`
}

// applyDefaults fills unset fields with their documented defaults.
func (r *scrapeRequest) applyDefaults() {
	if r.CSSSelector == "" {
		r.CSSSelector = defaultSelector
	}
	if r.HeaderStrategy == "" {
		r.HeaderStrategy = string(table.HeaderAuto)
	}
	if r.StartPage == 0 {
		r.StartPage = 1
	}
	if r.EndPage == 0 {
		r.EndPage = 1
	}
	if r.Concurrency == 0 {
		r.Concurrency = scrape.DefaultConcurrency
	}
	if r.MaxPagesPerRequest == 0 {
		r.MaxPagesPerRequest = defaultMaxPages
	}
	if r.Format == "" {
		r.Format = "csv"
	}
}

// validate checks the request, fail-fast with no processing attempted.
func (r *scrapeRequest) validate() error {
	if r.Template == "" {
		return fmt.Errorf("template is required")
	}
	if r.TableIndex < 0 {
		return fmt.Errorf("table_index must be >= 0")
	}
	if _, err := table.ParseStrategy(r.HeaderStrategy); err != nil {
		return err
	}
	if r.StartPage < 1 {
		return fmt.Errorf("start_page must be >= 1")
	}
	if r.EndPage < 1 {
		return fmt.Errorf("end_page must be >= 1")
	}
	if r.Concurrency < scrape.MinConcurrency || r.Concurrency > scrape.MaxConcurrency {
		return fmt.Errorf("concurrency must be between %d and %d", scrape.MinConcurrency, scrape.MaxConcurrency)
	}
	if r.MaxPagesPerRequest < 1 || r.MaxPagesPerRequest > hardMaxPages {
		return fmt.Errorf("max_pages_per_request must be between 1 and %d", hardMaxPages)
	}
	if r.Format != "csv" && r.Format != "json" {
		return fmt.Errorf("format must be csv or json")
	}
	if r.EndPage < r.StartPage {
		return fmt.Errorf("end_page must be >= start_page")
	}
	if pageCount := r.EndPage - r.StartPage + 1; pageCount > r.MaxPagesPerRequest {
		return fmt.Errorf("too many pages (max %d)", r.MaxPagesPerRequest)
	}
	return nil
}

// server wires the HTTP handlers to the shared page fetcher.
type server struct {
	fetcher   scrape.PageFetcher
	indexFile string
	logger    zerolog.Logger
}

func newServer(fetcher scrape.PageFetcher, indexFile string) *server {
	return &server{
		fetcher:   fetcher,
		indexFile: indexFile,
		logger:    logging.NewLogger("api"),
	}
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scrape", s.handleScrape)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", s.handleIndex)
	return mux
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleIndex serves the static homepage as-is.
func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	page, err := os.ReadFile(s.indexFile)
	if err != nil {
		s.logger.Error().Err(err).Str("file", s.indexFile).Msg("Failed to read index page")
		http.Error(w, "index page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *server) handleScrape(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"detail": "method not allowed"})
		return
	}

	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid request body: " + err.Error()})
		return
	}
	req.applyDefaults()
	if err := req.validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	strategy, _ := table.ParseStrategy(req.HeaderStrategy)
	spec := table.Spec{
		Selector: req.CSSSelector,
		Index:    req.TableIndex,
		Headers:  strategy,
	}

	pages := make([]int, 0, req.EndPage-req.StartPage+1)
	for p := req.StartPage; p <= req.EndPage; p++ {
		pages = append(pages, p)
	}

	start := time.Now()
	scraper := scrape.New(s.fetcher, scrape.Config{Concurrency: req.Concurrency})
	result := scraper.ScrapePages(r.Context(), req.Template, pages, spec)

	s.logger.Info().
		Str("template", req.Template).
		Int("pages", len(pages)).
		Int("rows", len(result.Rows)).
		Str("format", req.Format).
		Dur("duration", time.Since(start)).
		Msg("Scrape request handled")

	if result.Empty() {
		writeJSON(w, http.StatusOK, map[string]any{
			"rows":    0,
			"message": "No data found. Tweak selector/table index/header strategy.",
		})
		return
	}

	if req.Format == "json" {
		writeJSON(w, http.StatusOK, map[string]any{
			"rows": len(result.Rows),
			"data": export.Records(result),
		})
		return
	}

	csvBytes, err := export.CSV(result)
	if err != nil {
		s.logger.Error().Err(err).Msg("CSV serialization failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "csv serialization failed"})
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=scraped_table.csv")
	w.WriteHeader(http.StatusOK)
	w.Write(csvBytes)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
