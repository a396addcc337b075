// Package catalog implements a client for the Azure Retail Prices API,
// including OData filter construction and paginated fetching.
package catalog

import "time"

// PriceRecord is a single row returned by the retail prices endpoint.
// Records are read verbatim from the catalog and never mutated.
type PriceRecord struct {
	CurrencyCode         string            `json:"currencyCode"`
	TierMinimumUnits     float64           `json:"tierMinimumUnits"`
	RetailPrice          float64           `json:"retailPrice"`
	UnitPrice            float64           `json:"unitPrice"`
	ArmRegionName        string            `json:"armRegionName"`
	Location             string            `json:"location"`
	EffectiveStartDate   time.Time         `json:"effectiveStartDate"`
	MeterID              string            `json:"meterId"`
	MeterName            string            `json:"meterName"`
	ProductID            string            `json:"productId"`
	SkuID                string            `json:"skuId"`
	ProductName          string            `json:"productName"`
	SkuName              string            `json:"skuName"`
	ServiceName          string            `json:"serviceName"`
	ServiceID            string            `json:"serviceId"`
	ServiceFamily        string            `json:"serviceFamily"`
	UnitOfMeasure        string            `json:"unitOfMeasure"`
	Type                 string            `json:"type"`
	IsPrimaryMeterRegion bool              `json:"isPrimaryMeterRegion"`
	ArmSkuName           string            `json:"armSkuName"`
	ReservationTerm      string            `json:"reservationTerm,omitempty"`
	SavingsPlan          []SavingsPlanTier `json:"savingsPlan,omitempty"`
}

// SavingsPlanTier is a discounted recurring price attached to a
// PriceRecord, keyed by commitment term ("1 Year", "3 Years").
type SavingsPlanTier struct {
	Term        string  `json:"term"`
	UnitPrice   float64 `json:"unitPrice"`
	RetailPrice float64 `json:"retailPrice"`
}

// pricePage matches the paginated response envelope of the retail
// prices endpoint. NextPageLink is empty on the final page.
type pricePage struct {
	BillingCurrency    string        `json:"BillingCurrency"`
	CustomerEntityID   string        `json:"CustomerEntityId"`
	CustomerEntityType string        `json:"CustomerEntityType"`
	Items              []PriceRecord `json:"Items"`
	NextPageLink       string        `json:"NextPageLink"`
	Count              int           `json:"Count"`
}

// Result is the aggregated outcome of a paginated fetch. Truncated is
// true when more records were available than the caller's item cap.
type Result struct {
	Records   []PriceRecord
	Truncated bool
}
