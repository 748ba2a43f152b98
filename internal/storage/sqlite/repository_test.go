package sqlite

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

func newTestRepo(t *testing.T) *BookRepository {
	t.Helper()
	repo, err := NewBookRepository(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	books := []model.Book{
		{ID: "m1", Name: "The Maltese Falcon", Author: "Dashiell Hammett", Genre: "Mystery", Rating: 4.2, Reviews: 2500, Price: 16, Year: 1930, CreatedAt: base},
		{ID: "m2", Name: "In the Woods", Author: "Tana French", Genre: "Mystery", Rating: 3.9, Reviews: 5000, Price: 13, Year: 2007, CreatedAt: base.Add(time.Minute)},
		{ID: "m3", Name: "100% Real", Author: "Sam Writer", Genre: "Humor", Rating: 4.8, Reviews: 1200, Price: 31, Year: 2020, CreatedAt: base.Add(2 * time.Minute)},
		{ID: "m4", Name: "Rebecca", Author: "Daphne du Maurier", Genre: "Gothic mystery", Rating: 4.2, Reviews: 9000, Price: 25, Year: 1938, CreatedAt: base.Add(3 * time.Minute)},
	}
	for i := range books {
		require.NoError(t, repo.Create(context.Background(), &books[i]))
	}
	return repo
}

func TestSearch_QualityHighMystery(t *testing.T) {
	repo := newTestRepo(t)
	quality := query.QualityHigh
	genre := "MYSTERY"

	books, err := repo.Search(context.Background(), query.Compile(query.Criteria{Quality: &quality, Genre: &genre}, ""), query.ResultLimit)
	require.NoError(t, err)

	require.Len(t, books, 2)
	assert.Equal(t, "m4", books[0].ID)
	assert.Equal(t, "m1", books[1].ID)
}

func TestSearch_PremiumAndEscapedPercent(t *testing.T) {
	repo := newTestRepo(t)
	premium := query.PricePremium
	term := "100%"

	books, err := repo.Search(context.Background(), query.Compile(query.Criteria{PriceRange: &premium, SearchTerm: &term}, ""), query.ResultLimit)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "m3", books[0].ID)

	term = "0% r"
	books, err = repo.Search(context.Background(), query.Compile(query.Criteria{SearchTerm: &term}, ""), query.ResultLimit)
	require.NoError(t, err)
	assert.Len(t, books, 1)

	term = "1_0"
	books, err = repo.Search(context.Background(), query.Compile(query.Criteria{SearchTerm: &term}, ""), query.ResultLimit)
	require.NoError(t, err)
	assert.Empty(t, books, "underscore must not act as a wildcard")
}

func TestSearch_FallbackAndLimit(t *testing.T) {
	repo := newTestRepo(t)

	books, err := repo.Search(context.Background(), query.Compile(query.Criteria{}, "mystery"), 2)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "m4", books[0].ID)
	assert.Equal(t, "m1", books[1].ID)
}

func TestGetByIDAndList(t *testing.T) {
	repo := newTestRepo(t)

	b, err := repo.GetByID(context.Background(), "m2")
	require.NoError(t, err)
	assert.Equal(t, "Tana French", b.Author)
	assert.Equal(t, 5000, b.Reviews)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 1, 0, 0, time.UTC), b.CreatedAt)

	_, err = repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	books, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 4)
	assert.Equal(t, "m4", books[0].ID)
	assert.NoError(t, repo.Ping(context.Background()))
}
