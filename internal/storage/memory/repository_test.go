package memory

import (
	"context"
	"testing"
	"time"

	"ai-book/backend/internal/model"
	"ai-book/backend/internal/query"
	"ai-book/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRepo() *BookRepository {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return NewBookRepository([]model.Book{
		{ID: "b1", Name: "Murder on the Orient Express", Author: "Agatha Christie", Genre: "Mystery", Rating: 4.5, Reviews: 3000, Price: 12, CreatedAt: base},
		{ID: "b2", Name: "The Big Sleep", Author: "Raymond Chandler", Genre: "Mystery", Rating: 4.5, Reviews: 4000, Price: 18, CreatedAt: base.Add(time.Hour)},
		{ID: "b3", Name: "Leonard Bernstein: A Life", Author: "Humphrey Burton", Genre: "Biography", Rating: 3.9, Reviews: 200, Price: 11, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "b4", Name: "The Joy of Music", Author: "Leonard Bernstein", Genre: "Music", Rating: 4.2, Reviews: 700, Price: 14.5, CreatedAt: base.Add(3 * time.Hour)},
	})
}

func TestSearch_RankedAndFiltered(t *testing.T) {
	repo := seedRepo()
	quality := query.QualityHigh
	genre := "mystery"

	books, err := repo.Search(context.Background(), query.Compile(query.Criteria{Quality: &quality, Genre: &genre}, ""), query.ResultLimit)
	require.NoError(t, err)

	require.Len(t, books, 2)
	assert.Equal(t, "b2", books[0].ID, "equal rating breaks ties on review count")
	assert.Equal(t, "b1", books[1].ID)
}

func TestSearch_CheapBooksByBernstein(t *testing.T) {
	repo := seedRepo()
	budget := query.PriceBudget
	author := "Bernstein"

	books, err := repo.Search(context.Background(), query.Compile(query.Criteria{PriceRange: &budget, Author: &author}, "cheap books by Bernstein"), query.ResultLimit)
	require.NoError(t, err)

	require.Len(t, books, 1)
	assert.Equal(t, "b4", books[0].ID)
}

func TestSearch_Limit(t *testing.T) {
	books, err := seedRepo().Search(context.Background(), query.Compile(query.Criteria{}, ""), 2)
	require.NoError(t, err)
	assert.Len(t, books, 2)
}

func TestSearch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := seedRepo().Search(ctx, query.Compile(query.Criteria{}, ""), 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCreateAndGet(t *testing.T) {
	repo := seedRepo()
	book := &model.Book{Name: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", Rating: 4.6}

	require.NoError(t, repo.Create(context.Background(), book))
	assert.NotEmpty(t, book.ID)
	assert.False(t, book.CreatedAt.IsZero())

	got, err := repo.GetByID(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Name)

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestList_NewestFirst(t *testing.T) {
	books, err := seedRepo().List(context.Background())
	require.NoError(t, err)

	require.Len(t, books, 4)
	assert.Equal(t, []string{"b4", "b3", "b2", "b1"}, []string{books[0].ID, books[1].ID, books[2].ID, books[3].ID})
}
