package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"ai-book/backend/internal/agent/deps"
	"ai-book/backend/internal/model"

	"github.com/panjf2000/ants/v2"
)

// DefaultWorkers is the import pool size when none is given
const DefaultWorkers = 4

func LoadBooks(path string) ([]model.Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var books []model.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("failed to parse seed JSON: %w", err)
	}
	return books, nil
}

// Import stores books through repo using a bounded worker pool. It returns
// how many were stored and the first error encountered.
func Import(ctx context.Context, repo deps.BookRepository, books []model.Book, workers int) (int, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return 0, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		stored   int
		firstErr error
	)
	for i := range books {
		if ctx.Err() != nil {
			break
		}
		book := books[i]
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			err := repo.Create(ctx, &book)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("import %q: %w", book.Name, err)
				}
				return
			}
			stored++
		})
		if submitErr != nil {
			wg.Done()
			wg.Wait()
			return stored, fmt.Errorf("failed to submit import task: %w", submitErr)
		}
	}
	wg.Wait()

	if firstErr == nil {
		firstErr = ctx.Err()
	}
	log.Printf("[SEED] Imported %d/%d books", stored, len(books))
	return stored, firstErr
}
