package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ai-book/backend/internal/model"
	"ai-book/backend/internal/query"
	"ai-book/backend/internal/storage"

	_ "modernc.org/sqlite" // cgo-free driver
)

const schema = `
CREATE TABLE IF NOT EXISTS books (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	author     TEXT NOT NULL,
	rating     REAL NOT NULL DEFAULT 0,
	reviews    INTEGER NOT NULL DEFAULT 0,
	price      REAL NOT NULL DEFAULT 0,
	year       INTEGER NOT NULL,
	genre      TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS books_rating_reviews_idx ON books (rating DESC, reviews DESC);
CREATE INDEX IF NOT EXISTS books_created_at_idx ON books (created_at DESC);
`

const selectColumns = `SELECT id, name, author, rating, reviews, price, year, genre, created_at, updated_at FROM books`

// BookRepository stores books in a SQLite database
type BookRepository struct {
	db *sql.DB
}

// NewBookRepository opens (or creates) the database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func NewBookRepository(path string) (*BookRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if path == ":memory:" {
		// every connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma failed: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("schema failed: %w", err)
	}

	return &BookRepository{db: db}, nil
}

func (r *BookRepository) Close() error { return r.db.Close() }

func (r *BookRepository) Ping(ctx context.Context) error { return r.db.PingContext(ctx) }

func (r *BookRepository) Create(ctx context.Context, b *model.Book) error {
	storage.Prepare(b, time.Now())
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO books (id, name, author, rating, reviews, price, year, genre, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Name, b.Author, b.Rating, b.Reviews, b.Price, b.Year, b.Genre,
		b.CreatedAt.UnixNano(), b.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert book: %w", err)
	}
	return nil
}

func (r *BookRepository) GetByID(ctx context.Context, id string) (*model.Book, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return b, nil
}

func (r *BookRepository) List(ctx context.Context) ([]model.Book, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return collect(rows)
}

// Search renders the filter as a WHERE clause and lets SQLite rank and limit
func (r *BookRepository) Search(ctx context.Context, expr query.FilterExpression, limit int) ([]model.Book, error) {
	where, args := expr.SQL(query.SQLite, 1)
	args = append(args, limit)
	rows, err := r.db.QueryContext(ctx,
		selectColumns+` WHERE `+where+` ORDER BY rating DESC, reviews DESC LIMIT ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	return collect(rows)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(s scanner) (*model.Book, error) {
	var (
		b                    model.Book
		createdAt, updatedAt int64
	)
	if err := s.Scan(&b.ID, &b.Name, &b.Author, &b.Rating, &b.Reviews, &b.Price, &b.Year, &b.Genre, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	b.CreatedAt = time.Unix(0, createdAt).UTC()
	b.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return &b, nil
}

func collect(rows *sql.Rows) ([]model.Book, error) {
	defer rows.Close()
	books := []model.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}
