package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bookfans/internal/models"
)

type BookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{db: db}
}

var _ BookRepo = (*BookRepository)(nil)

const (
	bookColumns = `id, title, author, publisher, publish_date, isbn, cover_image, description, category_id, created_at, updated_at`

	insertBookSQL = `INSERT INTO books (title, author, publisher, publish_date, isbn, cover_image, description, category_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	selectBookByIDSQL   = `SELECT ` + bookColumns + ` FROM books WHERE id = ?`
	selectBookByISBNSQL = `SELECT ` + bookColumns + ` FROM books WHERE isbn = ?`
	listBooksSQL        = `SELECT ` + bookColumns + ` FROM books ORDER BY id ASC LIMIT ? OFFSET ?`
	countBooksSQL       = `SELECT COUNT(*) FROM books`
)

func scanBook(s rowScanner) (models.Book, error) {
	var (
		b           models.Book
		publishDate sql.NullTime
		categoryID  sql.NullInt64
	)
	err := s.Scan(&b.ID, &b.Title, &b.Author, &b.Publisher, &publishDate, &b.ISBN,
		&b.CoverImage, &b.Description, &categoryID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return models.Book{}, err
	}
	if publishDate.Valid {
		t := publishDate.Time.UTC()
		b.PublishDate = &t
	}
	if categoryID.Valid {
		id := int(categoryID.Int64)
		b.CategoryID = &id
	}
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
	return b, nil
}

// Create inserts a book; a duplicate isbn yields a *ConflictError and leaves the existing row untouched.
func (r *BookRepository) Create(ctx context.Context, b models.Book) (models.Book, error) {
	now := nowUTC()
	b.CreatedAt, b.UpdatedAt = now, now

	var publishDate any
	if b.PublishDate != nil {
		publishDate = b.PublishDate.UTC()
	}

	res, err := r.db.ExecContext(ctx, insertBookSQL,
		b.Title, b.Author, b.Publisher, publishDate, b.ISBN,
		b.CoverImage, b.Description, b.CategoryID, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return models.Book{}, classifyWriteError(fmt.Sprintf("insert book %q", b.Title), err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return models.Book{}, fmt.Errorf("get last insert id for book %q: %w", b.Title, err)
	}
	b.ID = int(lastID)
	return b, nil
}

func (r *BookRepository) getOne(ctx context.Context, query, what string, arg any) (models.Book, error) {
	b, err := scanBook(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Book{}, ErrNotFound
		}
		return models.Book{}, fmt.Errorf("select book by %s: %w", what, err)
	}
	return b, nil
}

func (r *BookRepository) GetByID(ctx context.Context, id int) (models.Book, error) {
	return r.getOne(ctx, selectBookByIDSQL, "id", id)
}

func (r *BookRepository) GetByISBN(ctx context.Context, isbn string) (models.Book, error) {
	return r.getOne(ctx, selectBookByISBNSQL, "isbn", isbn)
}

func (r *BookRepository) List(ctx context.Context, offset, limit int) ([]models.Book, error) {
	rows, err := r.db.QueryContext(ctx, listBooksSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	out := make([]models.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return out, nil
}

func (r *BookRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, countBooksSQL, "books")
}
