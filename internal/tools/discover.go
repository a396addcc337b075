package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/costquery/azure-pricing-mcp/internal/catalog"
	"github.com/costquery/azure-pricing-mcp/internal/pricing"
)

const (
	discoverSKUsLimit  = 100
	skuDiscoveryLimit  = 30
	discoveryTopK      = 5
	suggestionSampleSz = 3
)

func discoverSKUsTool() mcp.Tool {
	return mcp.NewTool("azure_discover_skus",
		mcp.WithDescription("Discover available SKUs for a specific Azure service"),
		mcp.WithString("service_name",
			mcp.Required(),
			mcp.Description("Azure service name, exact casing")),
		mcp.WithString("region",
			mcp.Description("Azure region code (optional)")),
		mcp.WithString("price_type",
			mcp.Description("Price type (default 'Consumption')")),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of catalog rows to scan (default 100)")),
	)
}

// DiscoverSKUs implements azure_discover_skus: enumerate the SKUs of
// an exactly named service, deduplicated with their regions.
func (h *Handler) DiscoverSKUs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	id := traceID()

	serviceName, err := req.RequireString("service_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	conditions := []catalog.Condition{
		{Field: "serviceName", Value: serviceName},
		{Field: "priceType", Value: req.GetString("price_type", "Consumption")},
	}
	if region := req.GetString("region", ""); region != "" {
		conditions = append(conditions, catalog.Condition{Field: "region", Value: region})
	}

	found, err := h.searcher.Search(ctx, conditions, pricing.SearchOptions{
		Currency: h.defaultCurrency,
		Limit:    req.GetInt("limit", discoverSKUsLimit),
	})
	if err != nil {
		h.logError(id, "azure_discover_skus", err)
		if msg := userError(err); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}
		return nil, err
	}

	summaries := pricing.SummarizeSKUs(found.Records)
	h.logCall(id, "azure_discover_skus", time.Since(start).Milliseconds(), len(summaries))

	if len(summaries) == 0 {
		return mcp.NewToolResultText("No SKUs found for the specified service."), nil
	}
	body, err := formatSKUSummaries(serviceName, summaries, h.defaultCurrency)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(fmt.Sprintf("Found %d SKUs for %s:\n\n%s", len(summaries), serviceName, body)), nil
}

func skuDiscoveryTool() mcp.Tool {
	return mcp.NewTool("azure_sku_discovery",
		mcp.WithDescription("Discover Azure SKUs from a loose service description with fuzzy name matching"),
		mcp.WithString("service_hint",
			mcp.Required(),
			mcp.Description("Service name or description (e.g. 'app service', 'web app hosting', 'vm'); fuzzy matching supported")),
		mcp.WithString("region",
			mcp.Description("Azure region code to filter by (optional)")),
		mcp.WithString("currency_code",
			mcp.Description("Currency code (default USD)")),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of catalog rows to scan (default 30)")),
	)
}

// SKUDiscovery implements azure_sku_discovery: rank reference-table
// services against the hint, then search the catalog with the
// best-ranked exact service name that yields data.
func (h *Handler) SKUDiscovery(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	id := traceID()

	hint, err := req.RequireString("service_hint")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	currency := req.GetString("currency_code", h.defaultCurrency)
	limit := req.GetInt("limit", skuDiscoveryLimit)
	region := req.GetString("region", "")

	suggestions := h.discovery.Discover(hint, discoveryTopK)
	if len(suggestions) == 0 {
		h.logCall(id, "azure_sku_discovery", time.Since(start).Milliseconds(), 0)
		return mcp.NewToolResultText(noMatchHelp(hint)), nil
	}

	// Take the best-ranked suggestion that actually has catalog data.
	var searched []string
	for _, suggestion := range suggestions {
		conditions := []catalog.Condition{{Field: "serviceName", Value: suggestion.ServiceName}}
		if region != "" {
			conditions = append(conditions, catalog.Condition{Field: "region", Value: region})
		}
		found, err := h.searcher.Search(ctx, conditions, pricing.SearchOptions{
			Currency: currency,
			Limit:    limit,
		})
		if err != nil {
			h.logError(id, "azure_sku_discovery", err)
			if msg := userError(err); msg != "" {
				return mcp.NewToolResultError(msg), nil
			}
			return nil, err
		}
		searched = append(searched, suggestion.ServiceName)
		if len(found.Records) == 0 {
			continue
		}

		summaries := pricing.SummarizeSKUs(found.Records)
		h.logCall(id, "azure_sku_discovery", time.Since(start).Milliseconds(), len(summaries))

		body, err := formatSKUSummaries(suggestion.ServiceName, summaries, currency)
		if err != nil {
			return nil, err
		}
		header := fmt.Sprintf("SKU Discovery for %q (matched service: %s)\n\nFound %d SKUs:\n\n",
			hint, suggestion.ServiceName, len(summaries))
		return mcp.NewToolResultText(header + body), nil
	}

	h.logCall(id, "azure_sku_discovery", time.Since(start).Milliseconds(), 0)

	// Ranked matches existed but none had catalog rows (e.g. region
	// filter excluded them all). Report the candidates instead of a
	// bare miss.
	var b strings.Builder
	fmt.Fprintf(&b, "No pricing data found for %q.\n\nDid you mean one of these services?\n", hint)
	for i, name := range searched[:min(len(searched), suggestionSampleSz)] {
		fmt.Fprintf(&b, "%d. %s\n", i+1, name)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func noMatchHelp(hint string) string {
	return fmt.Sprintf(`No matches found for %q.

Try using terms like:
- 'app service' or 'web app' for Azure App Service
- 'vm' or 'virtual machine' for Virtual Machines
- 'storage' or 'blob' for Storage services
- 'sql' or 'database' for SQL Database
- 'kubernetes' or 'aks' for Azure Kubernetes Service`, hint)
}
