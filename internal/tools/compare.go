package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/costquery/azure-pricing-mcp/internal/catalog"
	"github.com/costquery/azure-pricing-mcp/internal/pricing"
)

const skuComparisonScan = 20

func priceCompareTool() mcp.Tool {
	return mcp.NewTool("azure_price_compare",
		mcp.WithDescription("Compare Azure prices across regions or SKUs"),
		mcp.WithString("service_name",
			mcp.Required(),
			mcp.Description("Azure service name to compare, exact casing")),
		mcp.WithString("sku_name",
			mcp.Description("Specific SKU to compare (optional)")),
		mcp.WithArray("regions",
			mcp.Description("Region codes to compare; when given, comparison varies the region"),
			mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("skus",
			mcp.Description("SKU names to compare; when given (and regions is not), comparison varies the SKU")),
		mcp.WithString("region",
			mcp.Description("Region to hold constant when comparing SKUs")),
		mcp.WithString("currency_code",
			mcp.Description("Currency code (default USD)")),
	)
}

// PriceCompare implements the azure_price_compare tool. With an
// explicit value list it runs a dense one-dimension comparison; with
// neither list it falls back to surveying the cheapest price per SKU
// within the service.
func (h *Handler) PriceCompare(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	id := traceID()

	serviceName, err := req.RequireString("service_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	currency := req.GetString("currency_code", h.defaultCurrency)

	base := []catalog.Condition{{Field: "serviceName", Value: serviceName}}
	if sku := req.GetString("sku_name", ""); sku != "" {
		base = append(base, catalog.Condition{Field: "skuName", Value: sku})
	}
	if region := req.GetString("region", ""); region != "" {
		base = append(base, catalog.Condition{Field: "region", Value: region})
	}

	regions := req.GetStringSlice("regions", nil)
	skus := req.GetStringSlice("skus", nil)

	var (
		dim    pricing.Dimension
		values []string
	)
	switch {
	case len(regions) > 0:
		dim, values = pricing.DimensionRegion, regions
	case len(skus) > 0:
		dim, values = pricing.DimensionSKU, skus
	default:
		return h.compareAcrossFoundSKUs(ctx, id, start, base, serviceName, currency)
	}

	result, err := h.searcher.Compare(ctx, base, dim, values, currency)
	if err != nil {
		h.logError(id, "azure_price_compare", err)
		if msg := userError(err); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}
		return nil, err
	}

	h.logCall(id, "azure_price_compare", time.Since(start).Milliseconds(), len(result.Entries))

	body, err := formatComparison(result, currency)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(fmt.Sprintf("Price comparison for %s:\n\n%s", serviceName, body)), nil
}

// compareAcrossFoundSKUs surveys one service: a single sorted search,
// keeping the cheapest row per SKU. Used when the caller names no
// explicit regions or SKUs to compare.
func (h *Handler) compareAcrossFoundSKUs(ctx context.Context, id string, start time.Time, base []catalog.Condition, serviceName, currency string) (*mcp.CallToolResult, error) {
	found, err := h.searcher.Search(ctx, base, pricing.SearchOptions{
		Currency:    currency,
		SortByPrice: true,
		Limit:       skuComparisonScan,
	})
	if err != nil {
		h.logError(id, "azure_price_compare", err)
		if msg := userError(err); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}
		return nil, err
	}

	// Search results are price-ascending, so the first row seen for a
	// SKU is its cheapest.
	result := &pricing.ComparisonResult{Dimension: pricing.DimensionSKU}
	seen := map[string]bool{}
	for _, record := range found.Records {
		if record.SkuName == "" || seen[record.SkuName] {
			continue
		}
		seen[record.SkuName] = true
		r := record
		result.Entries = append(result.Entries, pricing.ComparisonEntry{Value: record.SkuName, Record: &r})
	}

	h.logCall(id, "azure_price_compare", time.Since(start).Milliseconds(), len(result.Entries))

	if len(result.Entries) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No pricing found for service %q.", serviceName)), nil
	}
	body, err := formatComparison(result, currency)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(fmt.Sprintf("Price comparison for %s:\n\n%s", serviceName, body)), nil
}
