package pricing

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/costquery/azure-pricing-mcp/internal/catalog"
)

const (
	daysPerMonth  = 30
	monthsPerYear = 12
	hoursPerYear  = 8760
)

// ErrNoPricingData is returned when a record carries no usable price.
// A zero price is treated as missing data, never as a free resource.
var ErrNoPricingData = errors.New("pricing: record has no usable price")

// UsageError reports a usage pattern outside the physical bounds of a
// year.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string {
	return "pricing: invalid usage pattern: " + e.Reason
}

// UsagePattern describes expected consumption. HoursPerMonth wins when
// both are set; otherwise HoursPerDay is scaled by a 30-day month.
type UsagePattern struct {
	HoursPerDay   float64
	HoursPerMonth float64
}

// resolve fills in the missing dimension and validates bounds.
func (u UsagePattern) resolve() (perDay, perMonth float64, err error) {
	if u.HoursPerDay < 0 || u.HoursPerMonth < 0 {
		return 0, 0, &UsageError{Reason: "hours must not be negative"}
	}
	perDay, perMonth = u.HoursPerDay, u.HoursPerMonth
	switch {
	case perMonth == 0 && perDay > 0:
		perMonth = perDay * daysPerMonth
	case perDay == 0 && perMonth > 0:
		perDay = perMonth / daysPerMonth
	}
	if yearly := perMonth * monthsPerYear; yearly > hoursPerYear {
		return 0, 0, &UsageError{
			Reason: fmt.Sprintf("%.0f hours/year exceeds the %d hours in a year", yearly, hoursPerYear),
		}
	}
	return perDay, perMonth, nil
}

// CostFigures are projected recurring costs at one rate. Values stay
// exact decimals internally; rounding happens only at presentation so
// daily, monthly and yearly figures cannot drift apart.
type CostFigures struct {
	HourlyRate decimal.Decimal
	Daily      decimal.Decimal
	Monthly    decimal.Decimal
	Yearly     decimal.Decimal
}

// TierProjection is the projection for one savings-plan term plus its
// savings against on-demand, measured on the yearly figure.
type TierProjection struct {
	Term           string
	Figures        CostFigures
	AnnualSavings  decimal.Decimal
	SavingsPercent decimal.Decimal
}

// CostProjection is derived per request and never persisted.
type CostProjection struct {
	ServiceName   string
	SkuName       string
	ProductName   string
	Region        string
	Currency      string
	UnitOfMeasure string
	// HourDenominated reports whether the meter bills by the hour and
	// usage hours were applied. Non-hourly meters (per GB-month and the
	// like) pass the listed price through as the monthly figure.
	HourDenominated bool
	HoursPerDay     float64
	HoursPerMonth   float64
	OnDemand        CostFigures
	Tiers           []TierProjection
}

// hourUnitPattern matches the hour-denominated unit-of-measure strings
// the catalog is known to use: "1 Hour", "10 Hours", "100 Hours",
// "1/Hour". The leading quantity scales the listed price down to a
// per-hour rate. Anything else is treated as already reflecting the
// billing period and passes through unscaled.
var hourUnitPattern = regexp.MustCompile(`^(\d+)(?:\s+|/)Hours?$`)

// hourlyDivisor reports whether the unit is hour-denominated and, if
// so, how many hours the listed price covers.
func hourlyDivisor(unitOfMeasure string) (int64, bool) {
	m := hourUnitPattern.FindStringSubmatch(strings.TrimSpace(unitOfMeasure))
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}

// Estimate projects recurring cost for one matched record under the
// given usage pattern, including every attached savings-plan tier.
func Estimate(record catalog.PriceRecord, usage UsagePattern) (*CostProjection, error) {
	perDay, perMonth, err := usage.resolve()
	if err != nil {
		return nil, err
	}
	if record.RetailPrice <= 0 {
		return nil, ErrNoPricingData
	}

	divisor, hourly := hourlyDivisor(record.UnitOfMeasure)

	projection := &CostProjection{
		ServiceName:     record.ServiceName,
		SkuName:         record.SkuName,
		ProductName:     record.ProductName,
		Region:          record.ArmRegionName,
		Currency:        record.CurrencyCode,
		UnitOfMeasure:   record.UnitOfMeasure,
		HourDenominated: hourly,
		HoursPerDay:     perDay,
		HoursPerMonth:   perMonth,
		OnDemand:        project(record.RetailPrice, divisor, hourly, perDay, perMonth),
	}

	for _, tier := range record.SavingsPlan {
		if tier.RetailPrice <= 0 {
			continue
		}
		figures := project(tier.RetailPrice, divisor, hourly, perDay, perMonth)
		projection.Tiers = append(projection.Tiers, TierProjection{
			Term:           tier.Term,
			Figures:        figures,
			AnnualSavings:  projection.OnDemand.Yearly.Sub(figures.Yearly),
			SavingsPercent: savingsPercent(projection.OnDemand.Yearly, figures.Yearly),
		})
	}

	return projection, nil
}

// project computes the recurring figures for one listed price. Hourly
// meters scale by usage hours; everything else keeps the listed price
// as the monthly figure.
func project(listedPrice float64, divisor int64, hourly bool, perDay, perMonth float64) CostFigures {
	price := decimal.NewFromFloat(listedPrice)
	if !hourly {
		monthly := price
		return CostFigures{
			HourlyRate: decimal.Zero,
			Daily:      monthly.Div(decimal.NewFromInt(daysPerMonth)),
			Monthly:    monthly,
			Yearly:     monthly.Mul(decimal.NewFromInt(monthsPerYear)),
		}
	}
	rate := price.Div(decimal.NewFromInt(divisor))
	monthly := rate.Mul(decimal.NewFromFloat(perMonth))
	return CostFigures{
		HourlyRate: rate,
		Daily:      rate.Mul(decimal.NewFromFloat(perDay)),
		Monthly:    monthly,
		Yearly:     monthly.Mul(decimal.NewFromInt(monthsPerYear)),
	}
}

// savingsPercent is (onDemandYearly - tierYearly) / onDemandYearly,
// expressed as a percentage.
func savingsPercent(onDemandYearly, tierYearly decimal.Decimal) decimal.Decimal {
	if onDemandYearly.IsZero() {
		return decimal.Zero
	}
	return onDemandYearly.Sub(tierYearly).
		Div(onDemandYearly).
		Mul(decimal.NewFromInt(100))
}
