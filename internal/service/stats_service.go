package service

import (
	"context"
	"fmt"
	"time"

	"bookfans/internal/models"
)

// counter is satisfied by every entity repository.
type counter interface {
	Count(ctx context.Context) (int, error)
}

type StatsService struct {
	users      counter
	books      counter
	categories counter
	reviews    counter
	now        func() time.Time
}

func NewStatsService(users, books, categories, reviews counter) *StatsService {
	return &StatsService{
		users:      users,
		books:      books,
		categories: categories,
		reviews:    reviews,
		now:        time.Now,
	}
}

// Snapshot returns the current record counts. Counts are read one table at a
// time, so a snapshot taken during writes is not a consistent cut.
func (s *StatsService) Snapshot(ctx context.Context) (models.CatalogStats, error) {
	var st models.CatalogStats
	for _, c := range []struct {
		name string
		src  counter
		dst  *int
	}{
		{"users", s.users, &st.Users},
		{"books", s.books, &st.Books},
		{"categories", s.categories, &st.Categories},
		{"reviews", s.reviews, &st.Reviews},
	} {
		n, err := c.src.Count(ctx)
		if err != nil {
			return models.CatalogStats{}, fmt.Errorf("count %s: %w", c.name, err)
		}
		*c.dst = n
	}
	st.UpdatedAt = toUTC(s.now())
	return st, nil
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
