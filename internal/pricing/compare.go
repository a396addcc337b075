package pricing

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/costquery/azure-pricing-mcp/internal/catalog"
)

// Dimension names the single filter field a comparison varies.
type Dimension string

const (
	DimensionRegion Dimension = "region"
	DimensionSKU    Dimension = "skuName"
)

// ComparisonEntry pairs one dimension value with its cheapest match.
// Record is nil when the catalog had no match for that value; callers
// must distinguish "no data" from a zero price.
type ComparisonEntry struct {
	Value  string
	Record *catalog.PriceRecord
}

// ComparisonResult is dense over the requested values: one entry per
// value, in request order, gaps included.
type ComparisonResult struct {
	Dimension Dimension
	Entries   []ComparisonEntry
}

// Compare runs one search per value, holding every other condition
// constant and substituting only the named dimension. Each search
// takes the cheapest match. Comparison is single-dimension only; a
// region-by-SKU grid would make the substitution semantics ambiguous.
func (s *Searcher) Compare(ctx context.Context, base []catalog.Condition, dim Dimension, values []string, currency string) (*ComparisonResult, error) {
	if dim != DimensionRegion && dim != DimensionSKU {
		return nil, fmt.Errorf("unsupported comparison dimension %q", dim)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("comparison needs at least one %s value", dim)
	}

	// Drop any condition on the varied field so the per-value override
	// is the only one in play.
	kept := lo.Filter(base, func(c catalog.Condition, _ int) bool {
		return c.Field != string(dim)
	})

	result := &ComparisonResult{Dimension: dim}
	for _, value := range values {
		conditions := append(append([]catalog.Condition{}, kept...), catalog.Condition{
			Field: string(dim),
			Value: value,
			Mode:  catalog.MatchExact,
		})

		found, err := s.Search(ctx, conditions, SearchOptions{
			Currency:    currency,
			SortByPrice: true,
			Limit:       1,
		})
		if err != nil {
			return nil, fmt.Errorf("comparing %s=%q: %w", dim, value, err)
		}

		entry := ComparisonEntry{Value: value}
		if len(found.Records) > 0 {
			record := found.Records[0]
			entry.Record = &record
		}
		result.Entries = append(result.Entries, entry)
	}

	s.logger.Debug().
		Str("dimension", string(dim)).
		Int("values", len(values)).
		Int("matched", lo.CountBy(result.Entries, func(e ComparisonEntry) bool { return e.Record != nil })).
		Msg("price comparison complete")

	return result, nil
}
