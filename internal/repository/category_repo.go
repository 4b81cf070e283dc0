package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bookfans/internal/models"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

var _ CategoryRepo = (*CategoryRepository)(nil)

const (
	insertCategorySQL       = `INSERT INTO categories (name, description) VALUES (?, ?)`
	selectCategoryByIDSQL   = `SELECT id, name, description FROM categories WHERE id = ?`
	selectCategoryByNameSQL = `SELECT id, name, description FROM categories WHERE name = ?`
	listCategoriesSQL       = `SELECT id, name, description FROM categories ORDER BY id ASC LIMIT ? OFFSET ?`
	countCategoriesSQL      = `SELECT COUNT(*) FROM categories`
)

func (r *CategoryRepository) Create(ctx context.Context, c models.Category) (models.Category, error) {
	res, err := r.db.ExecContext(ctx, insertCategorySQL, c.Name, c.Description)
	if err != nil {
		return models.Category{}, classifyWriteError(fmt.Sprintf("insert category %q", c.Name), err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return models.Category{}, fmt.Errorf("get last insert id for category %q: %w", c.Name, err)
	}
	c.ID = int(lastID)
	return c, nil
}

func (r *CategoryRepository) getOne(ctx context.Context, query, what string, arg any) (models.Category, error) {
	var c models.Category
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Category{}, ErrNotFound
		}
		return models.Category{}, fmt.Errorf("select category by %s: %w", what, err)
	}
	return c, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int) (models.Category, error) {
	return r.getOne(ctx, selectCategoryByIDSQL, "id", id)
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (models.Category, error) {
	return r.getOne(ctx, selectCategoryByNameSQL, "name", name)
}

func (r *CategoryRepository) List(ctx context.Context, offset, limit int) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx, listCategoriesSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	out := make([]models.Category, 0)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return out, nil
}

func (r *CategoryRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, countCategoriesSQL, "categories")
}
