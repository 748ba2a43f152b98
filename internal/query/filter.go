package query

import (
	"fmt"
	"strings"
)

type Field string

const (
	FieldRating  Field = "rating"
	FieldReviews Field = "reviews"
	FieldPrice   Field = "price"
	FieldName    Field = "name"
	FieldAuthor  Field = "author"
	FieldGenre   Field = "genre"
)

type Op string

const (
	OpGte      Op = "gte"
	OpLte      Op = "lte"
	OpGt       Op = "gt"
	OpContains Op = "contains"
)

// Clause is a single predicate. Value is a float64 for rating and price,
// an int for reviews and a string for contains.
type Clause struct {
	Field Field `json:"field"`
	Op    Op    `json:"op"`
	Value any   `json:"value"`
}

// FilterExpression matches a book when every And clause holds and at least
// one Or clause holds. A nil And means no narrowing.
type FilterExpression struct {
	And []Clause `json:"and,omitempty"`
	Or  []Clause `json:"or"`
}

const (
	highMinRating    = 4.0
	highMinReviews   = 1000
	mediumMinRating  = 3.5
	mediumMinReviews = 500

	budgetMaxPrice   = 15.0
	moderateMaxPrice = 30.0
)

// Compile turns criteria into a filter. Tier clauses derived from Quality and
// PriceRange are added alongside explicit bounds, never instead of them, so
// contradictory criteria compile to a filter that matches nothing.
// When no text criteria were extracted, rawText is matched against name,
// author and genre.
func Compile(c Criteria, rawText string) FilterExpression {
	var and, or []Clause

	if c.Quality != nil {
		switch *c.Quality {
		case QualityHigh:
			and = append(and, gte(FieldRating, highMinRating), gte(FieldReviews, highMinReviews))
		case QualityMedium:
			and = append(and, gte(FieldRating, mediumMinRating), gte(FieldReviews, mediumMinReviews))
		}
	}

	if c.MinRating != nil {
		and = append(and, gte(FieldRating, *c.MinRating))
	}
	if c.MaxRating != nil {
		and = append(and, lte(FieldRating, *c.MaxRating))
	}

	if c.MinReviews != nil {
		and = append(and, gte(FieldReviews, *c.MinReviews))
	}
	if c.MaxReviews != nil {
		and = append(and, lte(FieldReviews, *c.MaxReviews))
	}

	if c.PriceRange != nil {
		switch *c.PriceRange {
		case PriceBudget:
			and = append(and, lte(FieldPrice, budgetMaxPrice))
		case PriceModerate:
			and = append(and, Clause{FieldPrice, OpGt, budgetMaxPrice}, lte(FieldPrice, moderateMaxPrice))
		case PricePremium:
			and = append(and, Clause{FieldPrice, OpGt, moderateMaxPrice})
		}
	}

	if c.MinPrice != nil {
		and = append(and, gte(FieldPrice, *c.MinPrice))
	}
	if c.MaxPrice != nil {
		and = append(and, lte(FieldPrice, *c.MaxPrice))
	}

	if c.Genre != nil {
		or = append(or, contains(FieldGenre, *c.Genre))
	}
	if c.Author != nil {
		or = append(or, contains(FieldAuthor, *c.Author))
	}
	if c.SearchTerm != nil {
		or = append(or, contains(FieldName, *c.SearchTerm))
	}

	if len(or) == 0 {
		or = []Clause{
			contains(FieldName, rawText),
			contains(FieldAuthor, rawText),
			contains(FieldGenre, rawText),
		}
	}

	return FilterExpression{And: and, Or: or}
}

func gte(f Field, v any) Clause { return Clause{f, OpGte, v} }

func lte(f Field, v any) Clause { return Clause{f, OpLte, v} }

func contains(f Field, s string) Clause { return Clause{f, OpContains, s} }

var opSymbols = map[Op]string{
	OpGte:      ">=",
	OpLte:      "<=",
	OpGt:       ">",
	OpContains: "~",
}

func (c Clause) String() string {
	if c.Op == OpContains {
		return fmt.Sprintf("%s~%q", c.Field, c.Value)
	}
	return fmt.Sprintf("%s%s%v", c.Field, opSymbols[c.Op], c.Value)
}

// String renders the expression compactly for logs.
func (e FilterExpression) String() string {
	var sb strings.Builder
	sb.WriteString("AND=[")
	for i, c := range e.And {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(c.String())
	}
	sb.WriteString("] OR=[")
	for i, c := range e.Or {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(c.String())
	}
	sb.WriteString("]")
	return sb.String()
}
