package deps

import (
	"context"

	"ai-book/backend/internal/model"
	"ai-book/backend/internal/query"
)

// LLMClient abstracts a single JSON-mode completion call
type LLMClient interface {
	GenerateJSON(ctx context.Context, prompt string, temperature float32, maxOutputTokens int32) (string, error)
}

// BookRepository abstracts book data access
type BookRepository interface {
	List(ctx context.Context) ([]model.Book, error)
	GetByID(ctx context.Context, id string) (*model.Book, error)
	Create(ctx context.Context, book *model.Book) error
	// Search applies a compiled filter and returns at most limit books,
	// ordered by rating then review count, both descending.
	Search(ctx context.Context, expr query.FilterExpression, limit int) ([]model.Book, error)
	Ping(ctx context.Context) error
	Close() error
}
