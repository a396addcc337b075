package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costquery/azure-pricing-mcp/internal/catalog"
)

func vmRecord() catalog.PriceRecord {
	return catalog.PriceRecord{
		ServiceName:   "Virtual Machines",
		SkuName:       "D2s v3",
		ProductName:   "Virtual Machines Dsv3 Series",
		ArmRegionName: "eastus",
		CurrencyCode:  "USD",
		UnitOfMeasure: "1 Hour",
		RetailPrice:   0.096,
		SavingsPlan: []catalog.SavingsPlanTier{
			{Term: "1 Year", RetailPrice: 0.0672},
			{Term: "3 Years", RetailPrice: 0.0528},
		},
	}
}

func TestEstimateOnDemandFigures(t *testing.T) {
	projection, err := Estimate(vmRecord(), UsagePattern{HoursPerMonth: 240, HoursPerDay: 8})
	require.NoError(t, err)

	assert.True(t, projection.HourDenominated)
	assert.InDelta(t, 23.04, projection.OnDemand.Monthly.InexactFloat64(), 0.01)
	assert.InDelta(t, 276.48, projection.OnDemand.Yearly.InexactFloat64(), 0.01)
	assert.InDelta(t, 0.768, projection.OnDemand.Daily.InexactFloat64(), 0.001)
	assert.InDelta(t, 0.096, projection.OnDemand.HourlyRate.InexactFloat64(), 0.0001)
}

func TestEstimateSavingsPlanTiers(t *testing.T) {
	projection, err := Estimate(vmRecord(), UsagePattern{HoursPerMonth: 240})
	require.NoError(t, err)
	require.Len(t, projection.Tiers, 2)

	oneYear := projection.Tiers[0]
	assert.Equal(t, "1 Year", oneYear.Term)
	assert.InDelta(t, 193.54, oneYear.Figures.Yearly.InexactFloat64(), 0.01)
	assert.InDelta(t, 30.0, oneYear.SavingsPercent.InexactFloat64(), 0.1)

	threeYear := projection.Tiers[1]
	assert.Equal(t, "3 Years", threeYear.Term)
	assert.InDelta(t, 152.06, threeYear.Figures.Yearly.InexactFloat64(), 0.01)
	assert.InDelta(t, 45.0, threeYear.SavingsPercent.InexactFloat64(), 0.1)
	assert.InDelta(t, 276.48-152.06, threeYear.AnnualSavings.InexactFloat64(), 0.02)
}

func TestEstimateUsageValidation(t *testing.T) {
	tests := []struct {
		name  string
		usage UsagePattern
	}{
		{"negative hours per day", UsagePattern{HoursPerDay: -1}},
		{"negative hours per month", UsagePattern{HoursPerMonth: -10}},
		{"more than a year of hours", UsagePattern{HoursPerMonth: 731}},
		{"hours per day overflowing the year", UsagePattern{HoursPerDay: 25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Estimate(vmRecord(), tt.usage)
			require.Error(t, err)
			var usageErr *UsageError
			assert.ErrorAs(t, err, &usageErr)
		})
	}
}

func TestEstimateUsageBounds(t *testing.T) {
	// 730 hours/month is exactly 8760 hours/year and must pass.
	_, err := Estimate(vmRecord(), UsagePattern{HoursPerMonth: 730})
	assert.NoError(t, err)

	// Zero usage is allowed and projects zero cost.
	projection, err := Estimate(vmRecord(), UsagePattern{})
	require.NoError(t, err)
	assert.True(t, projection.OnDemand.Monthly.IsZero())
}

func TestEstimateHoursPerDayScaling(t *testing.T) {
	projection, err := Estimate(vmRecord(), UsagePattern{HoursPerDay: 8})
	require.NoError(t, err)
	assert.Equal(t, 240.0, projection.HoursPerMonth)
	assert.InDelta(t, 23.04, projection.OnDemand.Monthly.InexactFloat64(), 0.01)
}

func TestEstimateRejectsMissingPrice(t *testing.T) {
	record := vmRecord()
	record.RetailPrice = 0

	_, err := Estimate(record, UsagePattern{HoursPerMonth: 100})
	assert.ErrorIs(t, err, ErrNoPricingData)
}

// Non-hourly meters keep the listed price as the monthly figure; usage
// hours must not be applied.
func TestEstimateNonHourlyUnitPassesThrough(t *testing.T) {
	record := vmRecord()
	record.UnitOfMeasure = "1 GB/Month"
	record.RetailPrice = 0.0184
	record.SavingsPlan = nil

	projection, err := Estimate(record, UsagePattern{HoursPerMonth: 10})
	require.NoError(t, err)
	assert.False(t, projection.HourDenominated)
	assert.InDelta(t, 0.0184, projection.OnDemand.Monthly.InexactFloat64(), 0.00001)
	assert.InDelta(t, 0.0184*12, projection.OnDemand.Yearly.InexactFloat64(), 0.0001)
}

func TestHourlyDivisor(t *testing.T) {
	tests := []struct {
		unit    string
		divisor int64
		hourly  bool
	}{
		{"1 Hour", 1, true},
		{"1 Hours", 1, true},
		{"10 Hours", 10, true},
		{"100 Hours", 100, true},
		{"1/Hour", 1, true},
		{" 1 Hour ", 1, true},
		{"1 GB/Month", 0, false},
		{"1 GB", 0, false},
		{"10K", 0, false},
		{"1 Month", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			divisor, hourly := hourlyDivisor(tt.unit)
			assert.Equal(t, tt.hourly, hourly)
			assert.Equal(t, tt.divisor, divisor)
		})
	}
}

// A "10 Hours" meter lists the price of ten hours; the hourly rate is
// a tenth of it.
func TestEstimateMultiHourUnit(t *testing.T) {
	record := vmRecord()
	record.UnitOfMeasure = "10 Hours"
	record.RetailPrice = 0.96
	record.SavingsPlan = nil

	projection, err := Estimate(record, UsagePattern{HoursPerMonth: 240})
	require.NoError(t, err)
	assert.InDelta(t, 0.096, projection.OnDemand.HourlyRate.InexactFloat64(), 0.0001)
	assert.InDelta(t, 23.04, projection.OnDemand.Monthly.InexactFloat64(), 0.01)
}

func TestEstimateSkipsZeroPricedTiers(t *testing.T) {
	record := vmRecord()
	record.SavingsPlan = []catalog.SavingsPlanTier{
		{Term: "1 Year", RetailPrice: 0},
		{Term: "3 Years", RetailPrice: 0.0528},
	}

	projection, err := Estimate(record, UsagePattern{HoursPerMonth: 240})
	require.NoError(t, err)
	require.Len(t, projection.Tiers, 1)
	assert.Equal(t, "3 Years", projection.Tiers[0].Term)
}
