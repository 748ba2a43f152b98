package search

import (
	"context"
	"fmt"
	"log"
	"time"

	"ai-book/backend/internal/agent/deps"
	"ai-book/backend/internal/metrics"
	"ai-book/backend/internal/model"
	"ai-book/backend/internal/query"
)

// DefaultInterpretTimeout bounds the LLM call inside one search
const DefaultInterpretTimeout = 15 * time.Second

// Interpreter extracts criteria from free text and never fails
type Interpreter interface {
	Interpret(ctx context.Context, text string) query.Criteria
	Configured() bool
}

// Result is the outcome of one natural-language search
type Result struct {
	Books    []model.Book           `json:"books"`
	Criteria query.Criteria         `json:"criteria"`
	Filter   query.FilterExpression `json:"filter"`
}

// Service runs the interpret, compile, query pipeline
type Service struct {
	interpreter      Interpreter
	repo             deps.BookRepository
	interpretTimeout time.Duration
}

// Option configures a Service
type Option func(*Service)

// WithInterpretTimeout overrides DefaultInterpretTimeout
func WithInterpretTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.interpretTimeout = d
		}
	}
}

// NewService creates a search service over an interpreter and a repository
func NewService(interpreter Interpreter, repo deps.BookRepository, opts ...Option) *Service {
	s := &Service{
		interpreter:      interpreter,
		repo:             repo,
		interpretTimeout: DefaultInterpretTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LLMConfigured reports whether natural-language interpretation is available
func (s *Service) LLMConfigured() bool {
	return s.interpreter.Configured()
}

// Search interprets text, compiles the criteria and queries storage for at
// most query.ResultLimit books. Only storage errors are returned; an empty
// result is not an error.
func (s *Service) Search(ctx context.Context, text string) (*Result, error) {
	start := time.Now()

	interpretCtx, cancel := context.WithTimeout(ctx, s.interpretTimeout)
	criteria := s.interpreter.Interpret(interpretCtx, text)
	cancel()

	expr := query.Compile(criteria, text)
	log.Printf("[SEARCH] text=%q filter=%s", text, expr)

	books, err := s.repo.Search(ctx, expr, query.ResultLimit)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("search books: %w", err)
	}
	if books == nil {
		books = []model.Book{}
	}

	outcome := "hits"
	if len(books) == 0 {
		outcome = "empty"
	}
	metrics.SearchesTotal.WithLabelValues(outcome).Inc()
	log.Printf("[PERF] Search completed in %v with %d results", time.Since(start), len(books))

	return &Result{Books: books, Criteria: criteria, Filter: expr}, nil
}
