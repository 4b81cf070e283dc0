package service

import (
	"context"
	"errors"
	"fmt"

	"bookfans/internal/models"
	"bookfans/internal/repository"
	"bookfans/internal/validation"
)

var bookConflictMessages = map[string]string{
	"isbn": "isbn already exists",
}

type BookService struct {
	books      repository.BookRepo
	categories repository.CategoryRepo
	activity   activityRecorder
}

func NewBookService(books repository.BookRepo, categories repository.CategoryRepo, activity activityRecorder) *BookService {
	return &BookService{books: books, categories: categories, activity: activity}
}

func (s *BookService) Create(ctx context.Context, in models.BookCreate) (models.Book, error) {
	in, err := validation.BookCreate(in)
	if err != nil {
		return models.Book{}, err
	}

	if in.ISBN != nil {
		_, err := s.books.GetByISBN(ctx, *in.ISBN)
		switch {
		case err == nil:
			return models.Book{}, &ConflictError{Field: "isbn", Message: bookConflictMessages["isbn"]}
		case !errors.Is(err, repository.ErrNotFound):
			return models.Book{}, fmt.Errorf("check isbn: %w", err)
		}
	}
	if in.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *in.CategoryID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return models.Book{}, ErrCategoryNotFound
			}
			return models.Book{}, fmt.Errorf("check category: %w", err)
		}
	}

	b, err := s.books.Create(ctx, models.Book{
		Title:       in.Title,
		Author:      in.Author,
		Publisher:   in.Publisher,
		PublishDate: in.PublishDate,
		ISBN:        in.ISBN,
		CoverImage:  in.CoverImage,
		Description: in.Description,
		CategoryID:  in.CategoryID,
	})
	if err != nil {
		// category deleted between the check and the insert
		if errors.Is(err, repository.ErrInvalidReference) {
			return models.Book{}, ErrCategoryNotFound
		}
		return models.Book{}, conflictFromStore(err, bookConflictMessages)
	}

	s.activity.Record(ctx, models.ActivityBookCreated, "book created", map[string]any{
		"book_id": b.ID,
		"title":   b.Title,
	})
	return b, nil
}

func (s *BookService) Get(ctx context.Context, id int) (models.Book, error) {
	b, err := s.books.GetByID(ctx, id)
	if err != nil {
		return models.Book{}, notFound(err, "book", id)
	}
	return b, nil
}

func (s *BookService) List(ctx context.Context, p Page) ([]models.Book, error) {
	return s.books.List(ctx, p.Skip, p.Limit)
}
