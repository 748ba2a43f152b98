package handler

import (
	"time"

	"ai-book/backend/internal/agent/deps"
	"ai-book/backend/internal/search"
)

// DefaultSearchTimeout is the maximum time allowed for a search request
const DefaultSearchTimeout = 30 * time.Second

// Handler serves the HTTP API over a search service and a book repository
type Handler struct {
	search        *search.Service
	books         deps.BookRepository
	searchTimeout time.Duration
	now           func() time.Time
}

// New creates a Handler. A non-positive timeout selects DefaultSearchTimeout.
func New(searchService *search.Service, books deps.BookRepository, searchTimeout time.Duration) *Handler {
	if searchTimeout <= 0 {
		searchTimeout = DefaultSearchTimeout
	}
	return &Handler{
		search:        searchService,
		books:         books,
		searchTimeout: searchTimeout,
		now:           time.Now,
	}
}
