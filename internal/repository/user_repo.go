package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bookfans/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of UserRepo interface at compile time.
var _ UserRepo = (*UserRepository)(nil)

const (
	userColumns = `id, username, email, nickname, avatar, password_hash, created_at, updated_at`

	insertUserSQL = `INSERT INTO users (username, email, nickname, avatar, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	selectUserByIDSQL       = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	selectUserByUsernameSQL = `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	selectUserByEmailSQL    = `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	listUsersSQL            = `SELECT ` + userColumns + ` FROM users ORDER BY id ASC LIMIT ? OFFSET ?`
	countUsersSQL           = `SELECT COUNT(*) FROM users`
)

func scanUser(s rowScanner) (models.User, error) {
	var u models.User
	err := s.Scan(&u.ID, &u.Username, &u.Email, &u.Nickname, &u.Avatar, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, err
}

// Create inserts a new user. A duplicate username or email yields a *ConflictError;
// the UNIQUE constraint is what guarantees uniqueness under concurrent writers.
func (r *UserRepository) Create(ctx context.Context, u models.User) (models.User, error) {
	now := nowUTC()
	u.CreatedAt, u.UpdatedAt = now, now

	res, err := r.db.ExecContext(ctx, insertUserSQL,
		u.Username, u.Email, u.Nickname, u.Avatar, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return models.User{}, classifyWriteError(fmt.Sprintf("insert user %q", u.Username), err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return models.User{}, fmt.Errorf("get last insert id for user %q: %w", u.Username, err)
	}
	u.ID = int(lastID)
	return u, nil
}

func (r *UserRepository) getOne(ctx context.Context, query, what string, arg any) (models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("select user by %s: %w", what, err)
	}
	return u, nil
}

// GetByID returns ErrNotFound when no user has the id.
func (r *UserRepository) GetByID(ctx context.Context, id int) (models.User, error) {
	return r.getOne(ctx, selectUserByIDSQL, "id", id)
}

// GetByUsername returns ErrNotFound when no user has the username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return r.getOne(ctx, selectUserByUsernameSQL, "username", username)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return r.getOne(ctx, selectUserByEmailSQL, "email", email)
}

// List returns users in insertion order.
func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, listUsersSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, countUsersSQL, "users")
}

func countRows(ctx context.Context, db *sql.DB, query, table string) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
