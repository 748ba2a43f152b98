package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"ai-book/backend/internal/model"
	"ai-book/backend/internal/query"
	"ai-book/backend/internal/storage"
)

// BookRepository is a simple in-memory implementation of deps.BookRepository
type BookRepository struct {
	mu    sync.RWMutex
	books []model.Book
}

// NewBookRepository creates a new in-memory repository holding books
func NewBookRepository(books []model.Book) *BookRepository {
	now := time.Now()
	stored := make([]model.Book, len(books))
	for i, b := range books {
		storage.Prepare(&b, now)
		stored[i] = b
	}
	return &BookRepository{books: stored}
}

// GetByID finds a book by its ID
func (r *BookRepository) GetByID(ctx context.Context, id string) (*model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, book := range r.books {
		if book.ID == id {
			return &book, nil
		}
	}
	return nil, storage.ErrNotFound
}

// List returns all books, newest first
func (r *BookRepository) List(ctx context.Context) ([]model.Book, error) {
	r.mu.RLock()
	books := make([]model.Book, len(r.books))
	copy(books, r.books)
	r.mu.RUnlock()

	sort.SliceStable(books, func(i, j int) bool {
		return books[i].CreatedAt.After(books[j].CreatedAt)
	})
	return books, nil
}

// Create stores a new book
func (r *BookRepository) Create(ctx context.Context, book *model.Book) error {
	storage.Prepare(book, time.Now())
	r.mu.Lock()
	defer r.mu.Unlock()
	r.books = append(r.books, *book)
	return nil
}

// Search finds books matching the compiled filter
func (r *BookRepository) Search(ctx context.Context, expr query.FilterExpression, limit int) ([]model.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	var results []model.Book
	for _, book := range r.books {
		if expr.Matches(book) {
			results = append(results, book)
		}
	}
	r.mu.RUnlock()
	return query.Rank(results, limit), nil
}

// Ping always succeeds
func (r *BookRepository) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op
func (r *BookRepository) Close() error {
	return nil
}
