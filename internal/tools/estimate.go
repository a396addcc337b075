package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/costquery/azure-pricing-mcp/internal/catalog"
	"github.com/costquery/azure-pricing-mcp/internal/pricing"
)

// estimateCandidates is how many matches the estimator fetches before
// picking the first usable one. The catalog often lists zero-priced
// rows (free tiers, promo meters) next to the real one.
const estimateCandidates = 5

func costEstimateTool() mcp.Tool {
	return mcp.NewTool("azure_cost_estimate",
		mcp.WithDescription("Estimate Azure costs based on usage patterns, including savings plan terms"),
		mcp.WithString("service_name",
			mcp.Required(),
			mcp.Description("Azure service name, exact casing")),
		mcp.WithString("sku_name",
			mcp.Required(),
			mcp.Description("SKU name; partial matches supported")),
		mcp.WithString("region",
			mcp.Required(),
			mcp.Description("Azure region code")),
		mcp.WithNumber("hours_per_month",
			mcp.Description("Expected usage hours per month (default 730 for always-on)")),
		mcp.WithNumber("hours_per_day",
			mcp.Description("Expected usage hours per day; scaled by a 30-day month when hours_per_month is not given")),
		mcp.WithString("currency_code",
			mcp.Description("Currency code (default USD)")),
	)
}

// CostEstimate implements the azure_cost_estimate tool: find the
// matching record, then project daily/monthly/yearly cost for
// on-demand and each savings-plan term.
func (h *Handler) CostEstimate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	id := traceID()

	serviceName, err := req.RequireString("service_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	skuName, err := req.RequireString("sku_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	region, err := req.RequireString("region")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	usage := pricing.UsagePattern{
		HoursPerDay:   req.GetFloat("hours_per_day", 0),
		HoursPerMonth: req.GetFloat("hours_per_month", 0),
	}
	if usage.HoursPerDay == 0 && usage.HoursPerMonth == 0 {
		usage.HoursPerMonth = 730
	}
	currency := req.GetString("currency_code", h.defaultCurrency)

	conditions := []catalog.Condition{
		{Field: "serviceName", Value: serviceName},
		{Field: "skuName", Value: skuName},
		{Field: "region", Value: region},
	}
	found, err := h.searcher.Search(ctx, conditions, pricing.SearchOptions{
		Currency: currency,
		Limit:    estimateCandidates,
	})
	if err != nil {
		h.logError(id, "azure_cost_estimate", err)
		if msg := userError(err); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}
		return nil, err
	}
	if len(found.Records) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No pricing found for %s in %s.", skuName, region)), nil
	}

	projection, err := pricing.Estimate(pickEstimateRecord(found.Records), usage)
	if err != nil {
		h.logError(id, "azure_cost_estimate", err)
		if msg := userError(err); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}
		return nil, err
	}

	h.logCall(id, "azure_cost_estimate", time.Since(start).Milliseconds(), 1)

	return mcp.NewToolResultText(formatProjection(projection)), nil
}

// pickEstimateRecord prefers the first positively priced record so a
// leading free-tier row does not shadow the real meter. Falls back to
// the first record; Estimate then reports the missing price.
func pickEstimateRecord(records []catalog.PriceRecord) catalog.PriceRecord {
	for _, record := range records {
		if record.RetailPrice > 0 {
			return record
		}
	}
	return records[0]
}
