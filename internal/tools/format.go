package tools

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/costquery/azure-pricing-mcp/internal/catalog"
	"github.com/costquery/azure-pricing-mcp/internal/pricing"
)

// priceRow is the tool-facing shape of one search result.
type priceRow struct {
	Service      string                    `json:"service"`
	Product      string                    `json:"product"`
	Sku          string                    `json:"sku"`
	Region       string                    `json:"region"`
	Location     string                    `json:"location"`
	Price        float64                   `json:"price"`
	Unit         string                    `json:"unit"`
	Type         string                    `json:"type"`
	SavingsPlans []catalog.SavingsPlanTier `json:"savings_plans,omitempty"`
}

func formatSearchResult(result *pricing.SearchResult, currency string) (string, error) {
	rows := make([]priceRow, 0, len(result.Records))
	for _, record := range result.Records {
		rows = append(rows, priceRow{
			Service:      record.ServiceName,
			Product:      record.ProductName,
			Sku:          record.SkuName,
			Region:       record.ArmRegionName,
			Location:     record.Location,
			Price:        record.RetailPrice,
			Unit:         record.UnitOfMeasure,
			Type:         record.Type,
			SavingsPlans: record.SavingsPlan,
		})
	}
	payload := struct {
		Currency string     `json:"currency"`
		Items    []priceRow `json:"items"`
	}{Currency: currency, Items: rows}
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// comparisonRow is one line of a comparison: the varied value and the
// cheapest match, or an explicit no-data marker so gaps stay visible.
type comparisonRow struct {
	Value    string  `json:"value"`
	NoData   bool    `json:"no_data,omitempty"`
	Sku      string  `json:"sku,omitempty"`
	Product  string  `json:"product,omitempty"`
	Region   string  `json:"region,omitempty"`
	Price    float64 `json:"price,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	Meter    string  `json:"meter,omitempty"`
	Currency string  `json:"currency,omitempty"`
}

func formatComparison(result *pricing.ComparisonResult, currency string) (string, error) {
	rows := make([]comparisonRow, 0, len(result.Entries))
	for _, entry := range result.Entries {
		row := comparisonRow{Value: entry.Value}
		if entry.Record == nil {
			row.NoData = true
		} else {
			row.Sku = entry.Record.SkuName
			row.Product = entry.Record.ProductName
			row.Region = entry.Record.ArmRegionName
			row.Price = entry.Record.RetailPrice
			row.Unit = entry.Record.UnitOfMeasure
			row.Meter = entry.Record.MeterName
			row.Currency = currency
		}
		rows = append(rows, row)
	}
	payload := struct {
		Dimension string          `json:"dimension"`
		Rows      []comparisonRow `json:"comparisons"`
	}{Dimension: string(result.Dimension), Rows: rows}
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// money rounds a decimal figure for presentation. Internal arithmetic
// stays unrounded; this is the only place figures get truncated.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func rate(d decimal.Decimal) string {
	return d.StringFixed(4)
}

func formatProjection(p *pricing.CostProjection) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cost Estimate for %s - %s\n", p.ServiceName, p.SkuName)
	fmt.Fprintf(&b, "Region: %s\n", p.Region)
	fmt.Fprintf(&b, "Product: %s\n", p.ProductName)
	fmt.Fprintf(&b, "Unit: %s\n", p.UnitOfMeasure)
	fmt.Fprintf(&b, "Currency: %s\n\n", p.Currency)

	if p.HourDenominated {
		fmt.Fprintf(&b, "Usage Assumptions:\n")
		fmt.Fprintf(&b, "- Hours per day: %.1f\n", p.HoursPerDay)
		fmt.Fprintf(&b, "- Hours per month: %.1f\n\n", p.HoursPerMonth)
	} else {
		fmt.Fprintf(&b, "Note: this meter is not billed per hour (%s); the listed price is taken as the monthly cost and usage hours are not applied.\n\n", p.UnitOfMeasure)
	}

	fmt.Fprintf(&b, "On-Demand Pricing:\n")
	if p.HourDenominated {
		fmt.Fprintf(&b, "- Hourly Rate: %s\n", rate(p.OnDemand.HourlyRate))
	}
	fmt.Fprintf(&b, "- Daily Cost: %s\n", money(p.OnDemand.Daily))
	fmt.Fprintf(&b, "- Monthly Cost: %s\n", money(p.OnDemand.Monthly))
	fmt.Fprintf(&b, "- Yearly Cost: %s\n", money(p.OnDemand.Yearly))

	if len(p.Tiers) > 0 {
		fmt.Fprintf(&b, "\nSavings Plans Available:\n")
		for _, tier := range p.Tiers {
			fmt.Fprintf(&b, "\n%s Term:\n", tier.Term)
			if p.HourDenominated {
				fmt.Fprintf(&b, "- Hourly Rate: %s\n", rate(tier.Figures.HourlyRate))
			}
			fmt.Fprintf(&b, "- Monthly Cost: %s\n", money(tier.Figures.Monthly))
			fmt.Fprintf(&b, "- Yearly Cost: %s\n", money(tier.Figures.Yearly))
			fmt.Fprintf(&b, "- Savings: %s%% (%s annually)\n",
				tier.SavingsPercent.StringFixed(2), money(tier.AnnualSavings))
		}
	}
	return b.String()
}

// skuRow is the tool-facing shape of one discovered SKU.
type skuRow struct {
	SkuName       string   `json:"sku_name"`
	ArmSkuName    string   `json:"arm_sku_name,omitempty"`
	ProductName   string   `json:"product_name"`
	MeterName     string   `json:"meter_name,omitempty"`
	MinPrice      float64  `json:"min_price"`
	UnitOfMeasure string   `json:"unit_of_measure"`
	Regions       []string `json:"available_regions"`
}

func formatSKUSummaries(serviceName string, summaries []pricing.SKUSummary, currency string) (string, error) {
	rows := make([]skuRow, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, skuRow{
			SkuName:       s.SkuName,
			ArmSkuName:    s.ArmSkuName,
			ProductName:   s.ProductName,
			MeterName:     s.MeterName,
			MinPrice:      s.MinPrice,
			UnitOfMeasure: s.UnitOfMeasure,
			Regions:       s.Regions,
		})
	}
	payload := struct {
		ServiceName string   `json:"service_name"`
		Currency    string   `json:"currency"`
		TotalSkus   int      `json:"total_skus"`
		Skus        []skuRow `json:"skus"`
	}{ServiceName: serviceName, Currency: currency, TotalSkus: len(rows), Skus: rows}
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
