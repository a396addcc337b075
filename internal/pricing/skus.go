package pricing

import (
	"sort"

	"github.com/samber/lo"

	"github.com/costquery/azure-pricing-mcp/internal/catalog"
)

// SKUSummary collapses every catalog row for one SKU into a single
// entry: where it is available and the cheapest listed price seen.
type SKUSummary struct {
	SkuName       string
	ArmSkuName    string
	ProductName   string
	MeterName     string
	UnitOfMeasure string
	MinPrice      float64
	Regions       []string
}

// SummarizeSKUs deduplicates records by SKU name, aggregating the
// regions each SKU appears in and its minimum positive price. Rows
// priced at zero only set MinPrice when no positive price exists for
// the SKU. Output is sorted by SKU name.
func SummarizeSKUs(records []catalog.PriceRecord) []SKUSummary {
	byName := make(map[string]*SKUSummary)
	order := make([]string, 0, len(records))

	for _, record := range records {
		if record.SkuName == "" {
			continue
		}
		summary, seen := byName[record.SkuName]
		if !seen {
			summary = &SKUSummary{
				SkuName:       record.SkuName,
				ArmSkuName:    record.ArmSkuName,
				ProductName:   record.ProductName,
				MeterName:     record.MeterName,
				UnitOfMeasure: record.UnitOfMeasure,
				MinPrice:      record.RetailPrice,
			}
			byName[record.SkuName] = summary
			order = append(order, record.SkuName)
		}
		if record.ArmRegionName != "" {
			summary.Regions = append(summary.Regions, record.ArmRegionName)
		}
		if record.RetailPrice > 0 && (summary.MinPrice <= 0 || record.RetailPrice < summary.MinPrice) {
			summary.MinPrice = record.RetailPrice
		}
	}

	summaries := make([]SKUSummary, 0, len(order))
	for _, name := range order {
		summary := byName[name]
		summary.Regions = lo.Uniq(summary.Regions)
		sort.Strings(summary.Regions)
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].SkuName < summaries[j].SkuName
	})
	return summaries
}
