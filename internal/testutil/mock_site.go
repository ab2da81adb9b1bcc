// Package testutil provides testing utilities for tablescrape.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// MockPage defines the response served for one path of the mock site.
type MockPage struct {
	StatusCode int
	Body       string
	Delay      time.Duration
}

// MockSite is a configurable mock website serving paginated HTML
// tables for testing.
type MockSite struct {
	server *httptest.Server
	mu     sync.RWMutex
	pages  map[string]MockPage

	// Tracking
	RequestCount      int
	LastRequestHeader http.Header
}

// NewMockSite creates a new mock site.
func NewMockSite() *MockSite {
	site := &MockSite{
		pages: make(map[string]MockPage),
	}

	site.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		site.mu.Lock()
		site.RequestCount++
		site.LastRequestHeader = r.Header.Clone()
		site.mu.Unlock()

		site.mu.RLock()
		page, exists := site.pages[r.URL.RequestURI()]
		site.mu.RUnlock()

		if !exists {
			http.NotFound(w, r)
			return
		}

		if page.Delay > 0 {
			time.Sleep(page.Delay)
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		status := page.StatusCode
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		if page.Body != "" {
			w.Write([]byte(page.Body))
		}
	}))

	return site
}

// URL returns the mock site base URL.
func (m *MockSite) URL() string {
	return m.server.URL
}

// Close shuts down the mock site.
func (m *MockSite) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockSite) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.LastRequestHeader = nil
}

// SetPage configures the response for a path (including query string).
func (m *MockSite) SetPage(path string, page MockPage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[path] = page
}

// GetRequestCount returns the number of requests made to the site.
func (m *MockSite) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// TablePage builds an HTML page containing a single table with a
// header row and the given data rows, for use as a MockPage body.
func TablePage(headers []string, rows [][]string) string {
	html := "<html><body><table>\n<tr>"
	for _, h := range headers {
		html += "<th>" + h + "</th>"
	}
	html += "</tr>\n"
	for _, row := range rows {
		html += "<tr>"
		for _, cell := range row {
			html += "<td>" + cell + "</td>"
		}
		html += "</tr>\n"
	}
	return html + "</table></body></html>"
}

// PaginatedTableSite configures pages /list?page=1..n, each serving a
// table with rowsPerPage data rows tagged with the page number.
func PaginatedTableSite(site *MockSite, pages, rowsPerPage int) {
	for p := 1; p <= pages; p++ {
		rows := make([][]string, rowsPerPage)
		for r := range rows {
			rows[r] = []string{fmt.Sprintf("%d-%d", p, r+1), fmt.Sprintf("%d", p)}
		}
		site.SetPage(fmt.Sprintf("/list?page=%d", p), MockPage{
			Body: TablePage([]string{"ID", "Page"}, rows),
		})
	}
}
