// Package filters turns optional listing criteria into a conjunction of predicates.
//
// A criterion that is absent, or present with its zero value, imposes no constraint:
// min_beds=0 behaves exactly like omitting min_beds. Negative values are still applied.
package filters

import (
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// Comparison operators used by predicates
const (
	OpEq  = "="
	OpGte = ">="
	OpLte = "<="
)

// Predicate is one "column op value" condition over the properties table.
type Predicate struct {
	Column string
	Op     string
	Value  any
}

// PropertyFilters holds the recognized listing criteria. Nil means not supplied.
type PropertyFilters struct {
	TypeID    *int64
	MinBeds   *int
	MaxBeds   *int
	MinBaths  *int
	MaxBaths  *int
	MinGarage *int
	MaxGarage *int
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
}

// Predicates returns the active conditions in a fixed order. All of them are AND-ed.
func (f PropertyFilters) Predicates() []Predicate {
	var preds []Predicate

	if f.TypeID != nil && *f.TypeID != 0 {
		preds = append(preds, Predicate{Column: "type_id", Op: OpEq, Value: *f.TypeID})
	}

	ints := []struct {
		value  *int
		column string
		op     string
	}{
		{f.MinBeds, "num_bedrooms", OpGte},
		{f.MaxBeds, "num_bedrooms", OpLte},
		{f.MinBaths, "num_bathrooms", OpGte},
		{f.MaxBaths, "num_bathrooms", OpLte},
		{f.MinGarage, "num_garage", OpGte},
		{f.MaxGarage, "num_garage", OpLte},
	}
	for _, c := range ints {
		if c.value != nil && *c.value != 0 {
			preds = append(preds, Predicate{Column: c.column, Op: c.op, Value: *c.value})
		}
	}

	if f.MinPrice != nil && !f.MinPrice.IsZero() {
		preds = append(preds, Predicate{Column: "price", Op: OpGte, Value: *f.MinPrice})
	}
	if f.MaxPrice != nil && !f.MaxPrice.IsZero() {
		preds = append(preds, Predicate{Column: "price", Op: OpLte, Value: *f.MaxPrice})
	}

	return preds
}

// IsEmpty reports whether no criterion constrains the result
func (f PropertyFilters) IsEmpty() bool {
	return len(f.Predicates()) == 0
}

// FromQuery parses criteria from query parameters. Values that fail to parse are treated as absent.
func FromQuery(q url.Values) PropertyFilters {
	var f PropertyFilters

	if v := q.Get("type_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.TypeID = &id
		}
	}

	f.MinBeds = parseInt(q, "min_beds")
	f.MaxBeds = parseInt(q, "max_beds")
	f.MinBaths = parseInt(q, "min_baths")
	f.MaxBaths = parseInt(q, "max_baths")
	f.MinGarage = parseInt(q, "min_garage")
	f.MaxGarage = parseInt(q, "max_garage")
	f.MinPrice = parseDecimal(q, "min_price")
	f.MaxPrice = parseDecimal(q, "max_price")

	return f
}

func parseInt(q url.Values, key string) *int {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

func parseDecimal(q url.Values, key string) *decimal.Decimal {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil
	}
	return &d
}
