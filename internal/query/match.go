package query

import (
	"sort"
	"strings"

	"ai-book/backend/internal/model"

	"golang.org/x/text/cases"
)

// ResultLimit is the maximum number of books a search returns.
const ResultLimit = 10

// Matches evaluates the expression against a single book.
func (e FilterExpression) Matches(b model.Book) bool {
	fold := cases.Fold()
	for _, c := range e.And {
		if !c.matches(b, fold) {
			return false
		}
	}
	for _, c := range e.Or {
		if c.matches(b, fold) {
			return true
		}
	}
	return false
}

func (c Clause) matches(b model.Book, fold cases.Caser) bool {
	switch c.Field {
	case FieldRating:
		return compare(b.Rating, c.Op, toFloat(c.Value))
	case FieldReviews:
		return compare(float64(b.Reviews), c.Op, toFloat(c.Value))
	case FieldPrice:
		return compare(b.Price, c.Op, toFloat(c.Value))
	case FieldName:
		return containsFold(b.Name, c.Value, fold)
	case FieldAuthor:
		return containsFold(b.Author, c.Value, fold)
	case FieldGenre:
		return containsFold(b.Genre, c.Value, fold)
	}
	return false
}

func compare(have float64, op Op, want float64) bool {
	switch op {
	case OpGte:
		return have >= want
	case OpLte:
		return have <= want
	case OpGt:
		return have > want
	}
	return false
}

func containsFold(s string, v any, fold cases.Caser) bool {
	needle, _ := v.(string)
	return strings.Contains(fold.String(s), fold.String(needle))
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}

// Rank orders books by rating, then review count, both descending, and
// keeps at most limit of them. The input slice is not modified.
func Rank(books []model.Book, limit int) []model.Book {
	ranked := make([]model.Book, len(books))
	copy(ranked, books)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Rating != ranked[j].Rating {
			return ranked[i].Rating > ranked[j].Rating
		}
		return ranked[i].Reviews > ranked[j].Reviews
	})
	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
