package database

import (
	"encoding/json"
	"fmt"
	"homefinder/internal/apperrors"
	"homefinder/internal/models"
	"math"

	"github.com/shopspring/decimal"
)

type coerceFunc func(v any) (any, error)

// updatableColumns lists the property columns a patch may touch.
var updatableColumns = map[string]coerceFunc{
	"title":         required(toString),
	"description":   nullable(toString),
	"price":         required(toPrice),
	"location":      required(toString),
	"num_bedrooms":  required(toInt),
	"num_bathrooms": required(toInt),
	"num_garage":    required(toInt),
	"image_url":     nullable(toString),
	"user_id":       nullable(toID),
	"type_id":       nullable(toID),
}

// propertyColumns converts a patch into typed column values, dropping unknown keys.
func propertyColumns(patch models.PropertyPatch) (map[string]any, error) {
	columns := make(map[string]any, len(patch))
	for key, raw := range patch {
		coerce, ok := updatableColumns[key]
		if !ok {
			continue
		}
		v, err := coerce(raw)
		if err != nil {
			return nil, apperrors.Validation("Invalid value for %s: %v", key, err)
		}
		columns[key] = v
	}
	return columns, nil
}

func required(fn coerceFunc) coerceFunc {
	return func(v any) (any, error) {
		if v == nil {
			return nil, fmt.Errorf("must not be null")
		}
		return fn(v)
	}
}

func nullable(fn coerceFunc) coerceFunc {
	return func(v any) (any, error) {
		if v == nil {
			return nil, nil
		}
		return fn(v)
	}
}

func toString(v any) (any, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case *string:
		if s == nil {
			return nil, nil
		}
		return *s, nil
	}
	return nil, fmt.Errorf("expected a string, got %T", v)
}

func toInt(v any) (any, error) {
	n, err := toInt64(v)
	if err != nil {
		return nil, err
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return nil, fmt.Errorf("%d is out of range", n)
	}
	return int(n), nil
}

func toID(v any) (any, error) {
	return toInt64(v)
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("expected an integer, got %s", n)
		}
		return i, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("expected an integer, got %v", n)
		}
		return int64(n), nil
	}
	return 0, fmt.Errorf("expected an integer, got %T", v)
}

func toPrice(v any) (any, error) {
	var d decimal.Decimal
	switch n := v.(type) {
	case decimal.Decimal:
		d = n
	case json.Number:
		parsed, err := decimal.NewFromString(n.String())
		if err != nil {
			return nil, err
		}
		d = parsed
	case string:
		parsed, err := decimal.NewFromString(n)
		if err != nil {
			return nil, err
		}
		d = parsed
	case float64:
		d = decimal.NewFromFloat(n)
	case int:
		d = decimal.NewFromInt(int64(n))
	case int64:
		d = decimal.NewFromInt(n)
	default:
		return nil, fmt.Errorf("expected a number, got %T", v)
	}
	return d.Round(2), nil
}
