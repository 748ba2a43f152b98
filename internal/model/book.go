package model

import (
	"math"
	"strconv"
	"strings"
	"time"
)

type Book struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Author    string    `json:"author"`
	Rating    float64   `json:"rating"`
	Reviews   int       `json:"reviews"`
	Price     float64   `json:"price"`
	Year      int       `json:"year"`
	Genre     string    `json:"genre"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewBookRequest is the add-book form payload. Numeric fields arrive as
// whatever the form produced (number or string) and are coerced by ToBook.
type NewBookRequest struct {
	Name       string `json:"name" binding:"required,max=300"`
	Author     string `json:"author" binding:"required,max=200"`
	Genre      string `json:"genre" binding:"required,max=100"`
	UserRating any    `json:"userRating,omitempty"`
	Rating     any    `json:"rating,omitempty"`
	Reviews    any    `json:"reviews,omitempty"`
	Price      any    `json:"price,omitempty"`
	Year       any    `json:"year,omitempty"`
}

// ToBook converts the form payload into a Book. Values that are not numeric
// fall back to zero, and a missing year falls back to the year of now.
func (r *NewBookRequest) ToBook(now time.Time) Book {
	rating := r.UserRating
	if rating == nil {
		rating = r.Rating
	}
	year := int(toFloat(r.Year))
	if year == 0 {
		year = now.Year()
	}
	return Book{
		Name:      strings.TrimSpace(r.Name),
		Author:    strings.TrimSpace(r.Author),
		Genre:     strings.TrimSpace(r.Genre),
		Rating:    toFloat(rating),
		Reviews:   int(toFloat(r.Reviews)),
		Price:     toFloat(r.Price),
		Year:      year,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	}
	return 0
}
