// Package scraper fetches PGA Tour articles and turns their HTML tables into league data.
//
// Three extractors share one column resolver: the purse breakdown (position to prize),
// the "points and payouts" results article (one row per golfer) and a field-status page
// (who made the cut). Every extractor has a pure Parse function over an io.Reader and a
// Fetch wrapper that performs a single bounded HTTP GET.
package scraper
