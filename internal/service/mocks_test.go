package service

import (
	"context"
	"sync"
	"time"

	"bookfans/internal/models"
	"bookfans/internal/repository"
)

// memUserRepo is an in-memory repository.UserRepo that enforces the same
// uniqueness rules as the SQLite schema.
type memUserRepo struct {
	mu    sync.Mutex
	users []models.User

	createErr error // returned by Create when set
	getErr    error // returned by all lookups when set

	createCalls int
}

var _ repository.UserRepo = (*memUserRepo)(nil)

func (m *memUserRepo) Create(_ context.Context, u models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if m.createErr != nil {
		return models.User{}, m.createErr
	}
	for _, x := range m.users {
		if x.Username == u.Username {
			return models.User{}, &repository.ConflictError{Table: "users", Field: "username"}
		}
		if u.Email != nil && x.Email != nil && *x.Email == *u.Email {
			return models.User{}, &repository.ConflictError{Table: "users", Field: "email"}
		}
	}
	u.ID = len(m.users) + 1
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	m.users = append(m.users, u)
	return u, nil
}

func (m *memUserRepo) find(match func(models.User) bool) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return models.User{}, m.getErr
	}
	for _, u := range m.users {
		if match(u) {
			return u, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (m *memUserRepo) GetByID(_ context.Context, id int) (models.User, error) {
	return m.find(func(u models.User) bool { return u.ID == id })
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (models.User, error) {
	return m.find(func(u models.User) bool { return u.Username == username })
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (models.User, error) {
	return m.find(func(u models.User) bool { return u.Email != nil && *u.Email == email })
}

func (m *memUserRepo) List(_ context.Context, offset, limit int) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return window(m.users, offset, limit), nil
}

func (m *memUserRepo) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

func (m *memUserRepo) remove(username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, u := range m.users {
		if u.Username == username {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return
		}
	}
}

type memBookRepo struct {
	books     []models.Book
	createErr error
}

var _ repository.BookRepo = (*memBookRepo)(nil)

func (m *memBookRepo) Create(_ context.Context, b models.Book) (models.Book, error) {
	if m.createErr != nil {
		return models.Book{}, m.createErr
	}
	b.ID = len(m.books) + 1
	m.books = append(m.books, b)
	return b, nil
}

func (m *memBookRepo) GetByID(_ context.Context, id int) (models.Book, error) {
	for _, b := range m.books {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Book{}, repository.ErrNotFound
}

func (m *memBookRepo) GetByISBN(_ context.Context, isbn string) (models.Book, error) {
	for _, b := range m.books {
		if b.ISBN != nil && *b.ISBN == isbn {
			return b, nil
		}
	}
	return models.Book{}, repository.ErrNotFound
}

func (m *memBookRepo) List(_ context.Context, offset, limit int) ([]models.Book, error) {
	return window(m.books, offset, limit), nil
}

func (m *memBookRepo) Count(context.Context) (int, error) { return len(m.books), nil }

type memCategoryRepo struct {
	categories []models.Category
	createErr  error
}

var _ repository.CategoryRepo = (*memCategoryRepo)(nil)

func (m *memCategoryRepo) Create(_ context.Context, c models.Category) (models.Category, error) {
	if m.createErr != nil {
		return models.Category{}, m.createErr
	}
	c.ID = len(m.categories) + 1
	m.categories = append(m.categories, c)
	return c, nil
}

func (m *memCategoryRepo) GetByID(_ context.Context, id int) (models.Category, error) {
	for _, c := range m.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Category{}, repository.ErrNotFound
}

func (m *memCategoryRepo) GetByName(_ context.Context, name string) (models.Category, error) {
	for _, c := range m.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return models.Category{}, repository.ErrNotFound
}

func (m *memCategoryRepo) List(_ context.Context, offset, limit int) ([]models.Category, error) {
	return window(m.categories, offset, limit), nil
}

func (m *memCategoryRepo) Count(context.Context) (int, error) { return len(m.categories), nil }

type memReviewRepo struct {
	reviews   []models.Review
	createErr error
}

var _ repository.ReviewRepo = (*memReviewRepo)(nil)

func (m *memReviewRepo) Create(_ context.Context, r models.Review) (models.Review, error) {
	if m.createErr != nil {
		return models.Review{}, m.createErr
	}
	r.ID = len(m.reviews) + 1
	m.reviews = append(m.reviews, r)
	return r, nil
}

func (m *memReviewRepo) ListByBook(_ context.Context, bookID, offset, limit int) ([]models.Review, error) {
	var out []models.Review
	for _, r := range m.reviews {
		if r.BookID == bookID {
			out = append(out, r)
		}
	}
	return window(out, offset, limit), nil
}

func (m *memReviewRepo) Count(context.Context) (int, error) { return len(m.reviews), nil }

func window[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return append([]T(nil), all[offset:end]...)
}

// recordedActivity captures Record calls.
type recordedActivity struct {
	mu     sync.Mutex
	events []models.ActivityEvent
}

func (r *recordedActivity) Record(_ context.Context, typ, description string, meta map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, models.ActivityEvent{Type: typ, Description: description, Metadata: meta})
}

func (r *recordedActivity) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

// countingHasher wraps a real hasher and counts Verify calls.
type countingHasher struct {
	Hasher
	mu       sync.Mutex
	verifies int
}

func (h *countingHasher) Verify(plain, digest string) bool {
	h.mu.Lock()
	h.verifies++
	h.mu.Unlock()
	return h.Hasher.Verify(plain, digest)
}

func ptr[T any](v T) *T { return &v }
