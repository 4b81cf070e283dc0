package service

import (
	"context"
	"errors"
	"fmt"

	"bookfans/internal/models"
	"bookfans/internal/repository"
	"bookfans/internal/validation"
)

var categoryConflictMessages = map[string]string{
	"name": "category name already exists",
}

type CategoryService struct {
	categories repository.CategoryRepo
	activity   activityRecorder
}

func NewCategoryService(categories repository.CategoryRepo, activity activityRecorder) *CategoryService {
	return &CategoryService{categories: categories, activity: activity}
}

func (s *CategoryService) Create(ctx context.Context, in models.CategoryCreate) (models.Category, error) {
	in, err := validation.CategoryCreate(in)
	if err != nil {
		return models.Category{}, err
	}

	_, err = s.categories.GetByName(ctx, in.Name)
	switch {
	case err == nil:
		return models.Category{}, &ConflictError{Field: "name", Message: categoryConflictMessages["name"]}
	case !errors.Is(err, repository.ErrNotFound):
		return models.Category{}, fmt.Errorf("check category name: %w", err)
	}

	c, err := s.categories.Create(ctx, models.Category{Name: in.Name, Description: in.Description})
	if err != nil {
		return models.Category{}, conflictFromStore(err, categoryConflictMessages)
	}

	s.activity.Record(ctx, models.ActivityCategoryCreated, "category created", map[string]any{
		"category_id": c.ID,
		"name":        c.Name,
	})
	return c, nil
}

func (s *CategoryService) Get(ctx context.Context, id int) (models.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return models.Category{}, notFound(err, "category", id)
	}
	return c, nil
}

func (s *CategoryService) List(ctx context.Context, p Page) ([]models.Category, error) {
	return s.categories.List(ctx, p.Skip, p.Limit)
}
