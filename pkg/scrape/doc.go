// Package scrape aggregates table data across paginated fetches.
//
// One task per page runs the fetch -> locate -> extract -> normalize
// pipeline; a bounded worker pool caps the number of in-flight fetches.
// Per-page failures of any kind (network error, error status, missing
// table, no rows) are absorbed: the page contributes zero rows and the
// aggregate is still produced. An aggregate with zero rows is a valid
// outcome, not an error.
//
// Example usage:
//
//	scraper := scrape.New(fetcher, scrape.DefaultConfig())
//	result := scraper.ScrapePages(ctx, template, pages, spec)
//
// Rows are merged in page completion order, not numeric page order;
// each page's internal row order is preserved. Output has no required
// inter-page ordering, so no ordering logic is applied after the merge.
package scrape
