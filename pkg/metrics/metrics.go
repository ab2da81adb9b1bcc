// Package metrics provides the central Prometheus registry reference
// for tablescrape. The metrics themselves are defined next to the code
// they instrument (pkg/fetch, pkg/cache) to keep packages independent;
// this package documents them in one place.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the service.
// All metrics register automatically via promauto in their packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Fetch Metrics (pkg/fetch):
//   - tablescrape_fetch_requests_total{status} (Counter): Page fetches by
//     outcome; status is the upstream HTTP code, "network_error" or "cache_hit"
//   - tablescrape_fetch_duration_seconds (Histogram): Page fetch duration
//   - tablescrape_fetch_errors_total{class} (Counter): Fetch errors by
//     class (client, server, network)
//
// Page Cache Metrics (pkg/cache):
//   - tablescrape_page_cache_hits_total (Counter): Cache hits
//   - tablescrape_page_cache_misses_total (Counter): Cache misses
//   - tablescrape_page_cache_errors_total{operation} (Counter): Cache
//     operation errors (get, set, delete)
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(tablescrape_page_cache_hits_total[5m])) /
//   (sum(rate(tablescrape_page_cache_hits_total[5m])) + sum(rate(tablescrape_page_cache_misses_total[5m])))
//
//   # Fetch Error Rate
//   rate(tablescrape_fetch_errors_total[5m])
//
//   # P95 Fetch Latency
//   histogram_quantile(0.95, rate(tablescrape_fetch_duration_seconds_bucket[5m]))
