package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFilter(t *testing.T) {
	tests := []struct {
		name       string
		conditions []Condition
		want       string
		wantErr    error
	}{
		{
			name:       "service name defaults to exact match",
			conditions: []Condition{{Field: "serviceName", Value: "Virtual Machines"}},
			want:       "serviceName eq 'Virtual Machines'",
		},
		{
			name:       "sku name defaults to contains",
			conditions: []Condition{{Field: "skuName", Value: "D2s v3"}},
			want:       "contains(skuName, 'D2s v3')",
		},
		{
			name:       "explicit contains on service name",
			conditions: []Condition{{Field: "serviceName", Value: "SQL", Mode: MatchContains}},
			want:       "contains(serviceName, 'SQL')",
		},
		{
			name:       "explicit exact on sku name",
			conditions: []Condition{{Field: "skuName", Value: "B1", Mode: MatchExact}},
			want:       "skuName eq 'B1'",
		},
		{
			name:       "region ignores contains request",
			conditions: []Condition{{Field: "region", Value: "eastus", Mode: MatchContains}},
			want:       "armRegionName eq 'eastus'",
		},
		{
			name:       "price type is always exact",
			conditions: []Condition{{Field: "priceType", Value: "Consumption", Mode: MatchContains}},
			want:       "priceType eq 'Consumption'",
		},
		{
			name: "multiple fields joined with and, in order",
			conditions: []Condition{
				{Field: "serviceName", Value: "Virtual Machines"},
				{Field: "region", Value: "westeurope"},
				{Field: "skuName", Value: "D2"},
			},
			want: "serviceName eq 'Virtual Machines' and armRegionName eq 'westeurope' and contains(skuName, 'D2')",
		},
		{
			name:       "single quotes are doubled",
			conditions: []Condition{{Field: "productName", Value: "O'Brien"}},
			want:       "contains(productName, 'O''Brien')",
		},
		{
			name:       "empty criteria refused",
			conditions: nil,
			wantErr:    ErrEmptyCriteria,
		},
		{
			name:       "blank values do not count as criteria",
			conditions: []Condition{{Field: "serviceName", Value: ""}},
			wantErr:    ErrEmptyCriteria,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildFilter(tt.conditions)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildFilterUnknownField(t *testing.T) {
	_, err := BuildFilter([]Condition{{Field: "flavor", Value: "spicy"}})
	require.Error(t, err)

	var unknownField *UnknownFieldError
	require.ErrorAs(t, err, &unknownField)
	assert.Equal(t, "flavor", unknownField.Field)
}

// Every recognized field must render exactly once when supplied once.
func TestBuildFilterAllFieldsOnce(t *testing.T) {
	conditions := make([]Condition, 0, len(fieldSpecs))
	for _, field := range FilterFields() {
		conditions = append(conditions, Condition{Field: field, Value: "x"})
	}

	got, err := BuildFilter(conditions)
	require.NoError(t, err)
	for _, spec := range fieldSpecs {
		assert.Contains(t, got, spec.attribute)
	}
	assert.Equal(t, len(conditions)-1, strings.Count(got, " and "))
}
