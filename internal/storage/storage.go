// Package storage holds what the book repositories share.
package storage

import (
	"errors"
	"time"

	"ai-book/backend/internal/model"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a book does not exist
var ErrNotFound = errors.New("book not found")

// Prepare fills in the identity and timestamps of a book about to be stored
func Prepare(b *model.Book, now time.Time) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = b.CreatedAt
	}
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
}
