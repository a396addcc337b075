package catalog

import (
	"fmt"
	"strings"
)

// MatchMode selects how a filter condition compares its value against
// the catalog attribute. Matching is case-sensitive either way; the
// catalog itself is case-sensitive and the builder does not paper over
// that.
type MatchMode int

const (
	// MatchDefault applies the field's default mode.
	MatchDefault MatchMode = iota
	// MatchExact renders an OData "eq" comparison.
	MatchExact
	// MatchContains renders an OData "contains()" comparison.
	MatchContains
)

// Condition is one user-facing filter field with its match value.
type Condition struct {
	Field string
	Value string
	Mode  MatchMode
}

// fieldSpec maps a user-facing field name to its catalog attribute.
// exactOnly fields ignore a requested contains mode: region codes and
// price types are discrete values where substring matching only
// produces confusing partial hits.
type fieldSpec struct {
	attribute   string
	defaultMode MatchMode
	exactOnly   bool
}

var fieldSpecs = map[string]fieldSpec{
	"serviceName":   {attribute: "serviceName", defaultMode: MatchExact},
	"serviceFamily": {attribute: "serviceFamily", defaultMode: MatchExact},
	"region":        {attribute: "armRegionName", defaultMode: MatchExact, exactOnly: true},
	"priceType":     {attribute: "priceType", defaultMode: MatchExact, exactOnly: true},
	"skuName":       {attribute: "skuName", defaultMode: MatchContains},
	"armSkuName":    {attribute: "armSkuName", defaultMode: MatchExact},
	"productName":   {attribute: "productName", defaultMode: MatchContains},
	"meterName":     {attribute: "meterName", defaultMode: MatchContains},
}

// clause is a single rendered comparison.
type clause struct {
	attribute string
	value     string
	mode      MatchMode
}

func (c clause) String() string {
	escaped := strings.ReplaceAll(c.value, "'", "''")
	if c.mode == MatchContains {
		return fmt.Sprintf("contains(%s, '%s')", c.attribute, escaped)
	}
	return fmt.Sprintf("%s eq '%s'", c.attribute, escaped)
}

// BuildFilter renders the conditions as an OData $filter expression.
// Conditions combine with logical AND; the catalog does not support OR
// and neither does the builder. An empty condition set is refused with
// ErrEmptyCriteria, an unrecognized field with UnknownFieldError.
func BuildFilter(conditions []Condition) (string, error) {
	clauses := make([]string, 0, len(conditions))
	for _, cond := range conditions {
		if cond.Value == "" {
			continue
		}
		spec, ok := fieldSpecs[cond.Field]
		if !ok {
			return "", &UnknownFieldError{Field: cond.Field}
		}
		mode := cond.Mode
		if mode == MatchDefault {
			mode = spec.defaultMode
		}
		if spec.exactOnly {
			mode = MatchExact
		}
		clauses = append(clauses, clause{attribute: spec.attribute, value: cond.Value, mode: mode}.String())
	}
	if len(clauses) == 0 {
		return "", ErrEmptyCriteria
	}
	return strings.Join(clauses, " and "), nil
}

// FilterFields returns the recognized user-facing field names.
func FilterFields() []string {
	fields := make([]string, 0, len(fieldSpecs))
	for name := range fieldSpecs {
		fields = append(fields, name)
	}
	return fields
}
