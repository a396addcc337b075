// Package pricing builds price search, comparison, cost projection and
// SKU discovery on top of the catalog client.
package pricing

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/costquery/azure-pricing-mcp/internal/catalog"
)

const (
	// DefaultLimit bounds a search when the caller does not say.
	DefaultLimit = 50

	// sortScanMax is how deep a sorted search scans the catalog before
	// ordering client-side. The catalog cannot order by price server-side,
	// so "cheapest N" must sort a wider window than N.
	sortScanMax = 1000
)

// CatalogAPI is the slice of the catalog client the searcher needs.
type CatalogAPI interface {
	Fetch(ctx context.Context, filter, currency string, maxItems int) (*catalog.Result, error)
}

// SearchOptions control result shaping. Zero values mean: default
// currency handled by the caller, no sorting, DefaultLimit records.
type SearchOptions struct {
	Currency    string
	SortByPrice bool
	Limit       int
}

// SearchResult is an ordered slice of matched records. Truncated is
// true when the catalog held more matches than Limit.
type SearchResult struct {
	Records   []catalog.PriceRecord
	Truncated bool
}

// Searcher orchestrates the filter builder and catalog client.
type Searcher struct {
	catalog CatalogAPI
	logger  zerolog.Logger
}

// NewSearcher creates a Searcher backed by the given catalog client.
func NewSearcher(api CatalogAPI, logger zerolog.Logger) *Searcher {
	return &Searcher{catalog: api, logger: logger}
}

// Search translates the conditions to a catalog filter, fetches
// matches and shapes the result. Zero matches is not an error.
func (s *Searcher) Search(ctx context.Context, conditions []catalog.Condition, opts SearchOptions) (*SearchResult, error) {
	filter, err := catalog.BuildFilter(conditions)
	if err != nil {
		return nil, err
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	fetchMax := limit
	if opts.SortByPrice {
		// Sorting is client-side, so over-fetch to keep "cheapest N" honest.
		fetchMax = sortScanMax
	}

	fetched, err := s.catalog.Fetch(ctx, filter, opts.Currency, fetchMax)
	if err != nil {
		return nil, err
	}

	records := fetched.Records
	if opts.SortByPrice {
		sortByPrice(records)
	}
	truncated := fetched.Truncated
	if len(records) > limit {
		records = records[:limit]
		truncated = true
	}

	s.logger.Debug().
		Str("filter", filter).
		Int("matches", len(records)).
		Bool("sorted", opts.SortByPrice).
		Bool("truncated", truncated).
		Msg("price search complete")

	return &SearchResult{Records: records, Truncated: truncated}, nil
}

// sortByPrice orders ascending by retail price, breaking ties by
// region then SKU name so equal prices come back deterministically.
func sortByPrice(records []catalog.PriceRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.RetailPrice != b.RetailPrice {
			return a.RetailPrice < b.RetailPrice
		}
		if a.ArmRegionName != b.ArmRegionName {
			return a.ArmRegionName < b.ArmRegionName
		}
		return a.SkuName < b.SkuName
	})
}
