// Package query holds the structured search criteria extracted from a
// natural-language request and compiles them into a storage filter.
package query

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type PriceRange string

const (
	PriceBudget   PriceRange = "budget"
	PriceModerate PriceRange = "moderate"
	PricePremium  PriceRange = "premium"
)

type Quality string

const (
	QualityHigh   Quality = "high"
	QualityMedium Quality = "medium"
	QualityLow    Quality = "low"
)

// Criteria is the flat, all-optional result of interpreting a search request.
// A nil field means the interpreter did not extract it.
type Criteria struct {
	Genre      *string     `json:"genre,omitempty"`
	Author     *string     `json:"author,omitempty"`
	SearchTerm *string     `json:"searchTerm,omitempty"`
	MinRating  *float64    `json:"minRating,omitempty"`
	MaxRating  *float64    `json:"maxRating,omitempty"`
	MinReviews *int        `json:"minReviews,omitempty"`
	MaxReviews *int        `json:"maxReviews,omitempty"`
	MinPrice   *float64    `json:"minPrice,omitempty"`
	MaxPrice   *float64    `json:"maxPrice,omitempty"`
	PriceRange *PriceRange `json:"priceRange,omitempty"`
	Quality    *Quality    `json:"quality,omitempty"`
}

// IsEmpty reports whether no field was extracted.
func (c Criteria) IsEmpty() bool {
	return c == Criteria{}
}

// UnmarshalJSON decodes model output leniently. Numeric strings are accepted
// for numeric fields, enum values are matched case-insensitively, and any
// value that cannot be coerced is dropped instead of failing the decode.
func (c *Criteria) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = Criteria{
		Genre:      coerceString(raw["genre"]),
		Author:     coerceString(raw["author"]),
		SearchTerm: coerceString(raw["searchTerm"]),
		MinRating:  coerceFloat(raw["minRating"]),
		MaxRating:  coerceFloat(raw["maxRating"]),
		MinReviews: coerceCount(raw["minReviews"], math.Ceil),
		MaxReviews: coerceCount(raw["maxReviews"], math.Floor),
		MinPrice:   coerceFloat(raw["minPrice"]),
		MaxPrice:   coerceFloat(raw["maxPrice"]),
	}

	if v := coerceString(raw["priceRange"]); v != nil {
		switch pr := PriceRange(strings.ToLower(*v)); pr {
		case PriceBudget, PriceModerate, PricePremium:
			c.PriceRange = &pr
		}
	}
	if v := coerceString(raw["quality"]); v != nil {
		switch q := Quality(strings.ToLower(*v)); q {
		case QualityHigh, QualityMedium, QualityLow:
			c.Quality = &q
		}
	}
	return nil
}

func coerceString(v any) *string {
	var s string
	switch t := v.(type) {
	case string:
		s = strings.TrimSpace(t)
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return nil
	}
	if s == "" {
		return nil
	}
	return &s
}

func coerceFloat(v any) *float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// coerceCount turns a review bound into an integer. Rounding towards the
// inside of the range keeps the predicate equivalent on integer counts.
// Bounds are clamped to the int32 range, which the reviews column uses.
func coerceCount(v any, round func(float64) float64) *int {
	f := coerceFloat(v)
	if f == nil {
		return nil
	}
	n := int(math.Max(math.MinInt32, math.Min(math.MaxInt32, round(*f))))
	return &n
}
