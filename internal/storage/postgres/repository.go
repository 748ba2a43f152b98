package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"ai-book/backend/internal/model"
	"ai-book/backend/internal/query"
	"ai-book/backend/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const selectColumns = `SELECT id, name, author, rating, reviews, price, year, genre, created_at, updated_at FROM books`

// BookRepository stores books in Postgres
type BookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository connects to Postgres and, if configured, migrates the schema
func NewBookRepository(cfg Config) (*BookRepository, error) {
	pool, err := newPool(cfg)
	if err != nil {
		return nil, err
	}
	return &BookRepository{pool: pool}, nil
}

func (r *BookRepository) Close() error {
	r.pool.Close()
	return nil
}

func (r *BookRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *BookRepository) Create(ctx context.Context, b *model.Book) error {
	storage.Prepare(b, time.Now())
	_, err := r.pool.Exec(ctx, `
		INSERT INTO books (id, name, author, rating, reviews, price, year, genre, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		b.ID, b.Name, b.Author, b.Rating, b.Reviews, b.Price, b.Year, b.Genre, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert book: %w", err)
	}
	return nil
}

func (r *BookRepository) GetByID(ctx context.Context, id string) (*model.Book, error) {
	rows, err := r.pool.Query(ctx, selectColumns+` WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	b, err := pgx.CollectOneRow(rows, scanBook)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return &b, nil
}

func (r *BookRepository) List(ctx context.Context) ([]model.Book, error) {
	rows, err := r.pool.Query(ctx, selectColumns+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return pgx.CollectRows(rows, scanBook)
}

// Search renders the filter with ILIKE predicates and lets Postgres rank and limit
func (r *BookRepository) Search(ctx context.Context, expr query.FilterExpression, limit int) ([]model.Book, error) {
	where, args := expr.SQL(query.Postgres, 1)
	args = append(args, limit)
	sql := selectColumns + ` WHERE ` + where +
		` ORDER BY rating DESC, reviews DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	books, err := pgx.CollectRows(rows, scanBook)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	return books, nil
}

func scanBook(row pgx.CollectableRow) (model.Book, error) {
	var b model.Book
	err := row.Scan(&b.ID, &b.Name, &b.Author, &b.Rating, &b.Reviews, &b.Price, &b.Year, &b.Genre, &b.CreatedAt, &b.UpdatedAt)
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
	return b, err
}
