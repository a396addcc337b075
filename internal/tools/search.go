package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/costquery/azure-pricing-mcp/internal/catalog"
	"github.com/costquery/azure-pricing-mcp/internal/pricing"
)

func priceSearchTool() mcp.Tool {
	return mcp.NewTool("azure_price_search",
		mcp.WithDescription("Search Azure retail prices with various filters"),
		mcp.WithString("service_name",
			mcp.Description("Azure service name, exact casing (e.g. 'Virtual Machines', 'Storage')")),
		mcp.WithString("service_family",
			mcp.Description("Service family (e.g. 'Compute', 'Storage', 'Networking')")),
		mcp.WithString("region",
			mcp.Description("Azure region code (e.g. 'eastus', 'westeurope')")),
		mcp.WithString("sku_name",
			mcp.Description("SKU name to search for; partial matches supported")),
		mcp.WithString("product_name",
			mcp.Description("Product name to search for; partial matches supported")),
		mcp.WithString("meter_name",
			mcp.Description("Meter name to search for; partial matches supported")),
		mcp.WithString("price_type",
			mcp.Description("Price type: 'Consumption', 'Reservation' or 'DevTestConsumption'")),
		mcp.WithString("currency_code",
			mcp.Description("Currency code (default USD)")),
		mcp.WithBoolean("sort_by_price",
			mcp.Description("Sort results ascending by price (default false)")),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (default 50)")),
	)
}

// searchConditions maps the shared filter arguments onto catalog
// filter conditions. Absent arguments contribute nothing.
func searchConditions(req mcp.CallToolRequest) []catalog.Condition {
	args := []struct {
		arg   string
		field string
	}{
		{"service_name", "serviceName"},
		{"service_family", "serviceFamily"},
		{"region", "region"},
		{"sku_name", "skuName"},
		{"product_name", "productName"},
		{"meter_name", "meterName"},
		{"price_type", "priceType"},
	}
	var conditions []catalog.Condition
	for _, a := range args {
		if value := req.GetString(a.arg, ""); value != "" {
			conditions = append(conditions, catalog.Condition{Field: a.field, Value: value})
		}
	}
	return conditions
}

// PriceSearch implements the azure_price_search tool.
func (h *Handler) PriceSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	id := traceID()

	currency := req.GetString("currency_code", h.defaultCurrency)
	result, err := h.searcher.Search(ctx, searchConditions(req), pricing.SearchOptions{
		Currency:    currency,
		SortByPrice: req.GetBool("sort_by_price", false),
		Limit:       req.GetInt("limit", pricing.DefaultLimit),
	})
	if err != nil {
		h.logError(id, "azure_price_search", err)
		if msg := userError(err); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}
		return nil, err
	}

	h.logCall(id, "azure_price_search", time.Since(start).Milliseconds(), len(result.Records))

	if len(result.Records) == 0 {
		return mcp.NewToolResultText("No pricing results found for the specified criteria."), nil
	}

	body, err := formatSearchResult(result, currency)
	if err != nil {
		return nil, err
	}
	header := fmt.Sprintf("Found %d Azure pricing results", len(result.Records))
	if result.Truncated {
		header += " (truncated; more matches exist)"
	}
	return mcp.NewToolResultText(header + ":\n\n" + body), nil
}
