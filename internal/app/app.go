// Package app constructs the long-lived dependencies (LLM client, book
// repository, search service) once at process start.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"ai-book/backend/internal/agent"
	"ai-book/backend/internal/agent/deps"
	"ai-book/backend/internal/config"
	"ai-book/backend/internal/search"
	"ai-book/backend/internal/seed"
	"ai-book/backend/internal/storage/memory"
	"ai-book/backend/internal/storage/postgres"
	"ai-book/backend/internal/storage/sqlite"
)

type App struct {
	Config      *config.Config
	Books       deps.BookRepository
	Interpreter *agent.Interpreter
	Search      *search.Service
}

// New builds the application. A missing LLM credential is not an error:
// the interpreter then always yields empty criteria.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	llm, err := NewLLMClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	interpreter := agent.NewInterpreter(llm)
	if interpreter.Configured() {
		log.Printf("[INFO] LLM interpreter ready provider=%s", cfg.LLMProvider)
	} else {
		log.Printf("[WARN] %s is not set, natural-language search is unavailable", cfg.LLMAPIKeyName())
	}

	books, err := OpenBooks(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:      cfg,
		Books:       books,
		Interpreter: interpreter,
		Search:      search.NewService(interpreter, books, search.WithInterpretTimeout(cfg.InterpretTimeout)),
	}, nil
}

// Close releases the repository
func (a *App) Close() error {
	return a.Books.Close()
}

// NewLLMClient returns nil (and no error) when the selected provider has no credential
func NewLLMClient(ctx context.Context, cfg *config.Config) (deps.LLMClient, error) {
	apiKey := cfg.LLMAPIKey()
	if apiKey == "" {
		return nil, nil
	}
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		client, err := agent.NewGeminiLLMClient(ctx, apiKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create genai client: %w", err)
		}
		return client, nil
	default:
		client, err := agent.NewGroqLLMClient(apiKey, cfg.GroqBaseURL, cfg.GroqModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create groq client: %w", err)
		}
		return client, nil
	}
}

// OpenBooks opens the configured repository. The in-memory store is seeded
// from SeedFile; SQL stores are seeded only while empty.
func OpenBooks(ctx context.Context, cfg *config.Config) (deps.BookRepository, error) {
	var (
		repo deps.BookRepository
		err  error
	)
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		repo, err = postgres.NewBookRepository(postgres.Config{URL: cfg.DatabaseURL, RunMigrations: true})
	case config.StorageSQLite:
		repo, err = sqlite.NewBookRepository(cfg.SQLitePath)
	default:
		repo = memory.NewBookRepository(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.StorageDriver, err)
	}
	log.Printf("[STORAGE] Using %s storage", cfg.StorageDriver)

	if err := seedIfEmpty(ctx, repo, cfg.SeedFile); err != nil {
		log.Printf("[WARN] Seeding skipped: %v", err)
	}
	return repo, nil
}

func seedIfEmpty(ctx context.Context, repo deps.BookRepository, path string) error {
	if path == "" {
		return nil
	}
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	books, err := seed.LoadBooks(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	_, err = seed.Import(ctx, repo, books, seed.DefaultWorkers)
	return err
}
