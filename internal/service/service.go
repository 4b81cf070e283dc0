package service

import (
	"context"

	"bookfans/internal/logger"
	"bookfans/internal/models"
	"bookfans/internal/repository"
)

type Authorization interface {
	Authenticate(ctx context.Context, username, password string) (models.User, error)
	Login(ctx context.Context, username, password string) (AccessToken, error)
	ResolveCurrentUser(ctx context.Context, token string) (models.User, error)
}

type Users interface {
	Register(ctx context.Context, in models.UserCreate) (models.User, error)
	Get(ctx context.Context, id int) (models.User, error)
	List(ctx context.Context, p Page) ([]models.User, error)
}

type Books interface {
	Create(ctx context.Context, in models.BookCreate) (models.Book, error)
	Get(ctx context.Context, id int) (models.Book, error)
	List(ctx context.Context, p Page) ([]models.Book, error)
}

type Categories interface {
	Create(ctx context.Context, in models.CategoryCreate) (models.Category, error)
	Get(ctx context.Context, id int) (models.Category, error)
	List(ctx context.Context, p Page) ([]models.Category, error)
}

type Reviews interface {
	Create(ctx context.Context, bookID, userID int, in models.ReviewCreate) (models.Review, error)
	ListByBook(ctx context.Context, bookID int, p Page) ([]models.Review, error)
}

// Activity exposes the append-only activity log with filtering access.
type Activity interface {
	List(ctx context.Context, f ActivityFilter) ([]models.ActivityEvent, error)
}

// Stats exposes read-only catalog counters.
type Stats interface {
	Snapshot(ctx context.Context) (models.CatalogStats, error)
}

// Service aggregates all sub-services. Fields are accessed by name
// (s.Users.List, s.Books.List) since several share method names.
type Service struct {
	Authorization
	Users
	Books
	Categories
	Reviews
	Activity
	Stats
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, hasher Hasher, tokens *TokenService, log *logger.Logger) *Service {
	activity := NewActivityService(repos.Activity, log)
	return &Service{
		Authorization: NewAuthService(repos.Users, hasher, tokens, activity),
		Users:         NewUserService(repos.Users, hasher, activity),
		Books:         NewBookService(repos.Books, repos.Categories, activity),
		Categories:    NewCategoryService(repos.Categories, activity),
		Reviews:       NewReviewService(repos.Reviews, repos.Books, activity),
		Activity:      activity,
		Stats:         NewStatsService(repos.Users, repos.Books, repos.Categories, repos.Reviews),
	}
}
