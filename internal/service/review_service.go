package service

import (
	"context"
	"errors"

	"bookfans/internal/models"
	"bookfans/internal/repository"
	"bookfans/internal/validation"
)

type ReviewService struct {
	reviews  repository.ReviewRepo
	books    repository.BookRepo
	activity activityRecorder
}

func NewReviewService(reviews repository.ReviewRepo, books repository.BookRepo, activity activityRecorder) *ReviewService {
	return &ReviewService{reviews: reviews, books: books, activity: activity}
}

// Create stores a review written by userID about bookID.
func (s *ReviewService) Create(ctx context.Context, bookID, userID int, in models.ReviewCreate) (models.Review, error) {
	in, err := validation.ReviewCreate(in)
	if err != nil {
		return models.Review{}, err
	}
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		return models.Review{}, notFound(err, "book", bookID)
	}

	r, err := s.reviews.Create(ctx, models.Review{
		Content: in.Content,
		Rating:  in.Rating,
		BookID:  bookID,
		UserID:  userID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			return models.Review{}, &NotFoundError{Resource: "book", ID: bookID}
		}
		return models.Review{}, err
	}

	s.activity.Record(ctx, models.ActivityReviewCreated, "review created", map[string]any{
		"review_id": r.ID,
		"book_id":   bookID,
		"user_id":   userID,
	})
	return r, nil
}

func (s *ReviewService) ListByBook(ctx context.Context, bookID int, p Page) ([]models.Review, error) {
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		return nil, notFound(err, "book", bookID)
	}
	return s.reviews.ListByBook(ctx, bookID, p.Skip, p.Limit)
}
