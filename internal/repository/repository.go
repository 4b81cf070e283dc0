package repository

import (
	"context"
	"database/sql"
	"time"

	"bookfans/internal/models"
)

type UserRepo interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id int) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context, offset, limit int) ([]models.User, error)
	Count(ctx context.Context) (int, error)
}

type BookRepo interface {
	Create(ctx context.Context, b models.Book) (models.Book, error)
	GetByID(ctx context.Context, id int) (models.Book, error)
	GetByISBN(ctx context.Context, isbn string) (models.Book, error)
	List(ctx context.Context, offset, limit int) ([]models.Book, error)
	Count(ctx context.Context) (int, error)
}

type CategoryRepo interface {
	Create(ctx context.Context, c models.Category) (models.Category, error)
	GetByID(ctx context.Context, id int) (models.Category, error)
	GetByName(ctx context.Context, name string) (models.Category, error)
	List(ctx context.Context, offset, limit int) ([]models.Category, error)
	Count(ctx context.Context) (int, error)
}

type ReviewRepo interface {
	Create(ctx context.Context, r models.Review) (models.Review, error)
	ListByBook(ctx context.Context, bookID, offset, limit int) ([]models.Review, error)
	Count(ctx context.Context) (int, error)
}

type ActivityRepo interface {
	Append(ctx context.Context, e models.ActivityEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.ActivityEvent, error)
}

type Repository struct {
	Users      UserRepo
	Books      BookRepo
	Categories CategoryRepo
	Reviews    ReviewRepo
	Activity   ActivityRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:      NewUserRepository(db),
		Books:      NewBookRepository(db),
		Categories: NewCategoryRepository(db),
		Reviews:    NewReviewRepository(db),
		Activity:   NewActivitySQLite(db),
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func nowUTC() time.Time { return time.Now().UTC() }
