package repository

import (
	"context"
	"database/sql"
	"fmt"

	"bookfans/internal/models"
)

type ReviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

var _ ReviewRepo = (*ReviewRepository)(nil)

const (
	insertReviewSQL = `INSERT INTO reviews (content, rating, book_id, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	listReviewsByBookSQL = `SELECT id, content, rating, book_id, user_id, created_at, updated_at
		FROM reviews WHERE book_id = ? ORDER BY id ASC LIMIT ? OFFSET ?`
	countReviewsSQL = `SELECT COUNT(*) FROM reviews`
)

// Create inserts a review. A missing book or user surfaces as ErrInvalidReference.
func (r *ReviewRepository) Create(ctx context.Context, rv models.Review) (models.Review, error) {
	now := nowUTC()
	rv.CreatedAt, rv.UpdatedAt = now, now

	res, err := r.db.ExecContext(ctx, insertReviewSQL,
		rv.Content, rv.Rating, rv.BookID, rv.UserID, rv.CreatedAt, rv.UpdatedAt)
	if err != nil {
		return models.Review{}, classifyWriteError(fmt.Sprintf("insert review for book %d", rv.BookID), err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return models.Review{}, fmt.Errorf("get last insert id for review: %w", err)
	}
	rv.ID = int(lastID)
	return rv, nil
}

func (r *ReviewRepository) ListByBook(ctx context.Context, bookID, offset, limit int) ([]models.Review, error) {
	rows, err := r.db.QueryContext(ctx, listReviewsByBookSQL, bookID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reviews for book %d: %w", bookID, err)
	}
	defer rows.Close()

	out := make([]models.Review, 0)
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(&rv.ID, &rv.Content, &rv.Rating, &rv.BookID, &rv.UserID, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		rv.CreatedAt = rv.CreatedAt.UTC()
		rv.UpdatedAt = rv.UpdatedAt.UTC()
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return out, nil
}

func (r *ReviewRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, countReviewsSQL, "reviews")
}
