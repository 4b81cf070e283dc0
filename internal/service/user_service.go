package service

import (
	"context"
	"errors"
	"fmt"

	"bookfans/internal/models"
	"bookfans/internal/repository"
	"bookfans/internal/validation"
)

var userConflictMessages = map[string]string{
	"username": "username already registered",
	"email":    "email already registered",
}

type UserService struct {
	users    repository.UserRepo
	hasher   Hasher
	activity activityRecorder
}

func NewUserService(users repository.UserRepo, hasher Hasher, activity activityRecorder) *UserService {
	return &UserService{users: users, hasher: hasher, activity: activity}
}

// Register validates in, hashes the password and stores the user.
// The existence checks only give a friendlier message; the UNIQUE constraint
// decides concurrent duplicates.
func (s *UserService) Register(ctx context.Context, in models.UserCreate) (models.User, error) {
	in, err := validation.UserCreate(in)
	if err != nil {
		return models.User{}, err
	}

	if err := s.ensureFree(ctx, "username", in.Username, s.users.GetByUsername); err != nil {
		return models.User{}, err
	}
	if in.Email != nil {
		if err := s.ensureFree(ctx, "email", *in.Email, s.users.GetByEmail); err != nil {
			return models.User{}, err
		}
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return models.User{}, err
	}

	u, err := s.users.Create(ctx, models.User{
		Username:     in.Username,
		Email:        in.Email,
		Nickname:     in.Nickname,
		PasswordHash: digest,
	})
	if err != nil {
		return models.User{}, conflictFromStore(err, userConflictMessages)
	}

	s.activity.Record(ctx, models.ActivityUserRegistered, "user registered", map[string]any{
		"user_id":  u.ID,
		"username": u.Username,
	})
	return u, nil
}

func (s *UserService) ensureFree(ctx context.Context, field, value string,
	lookup func(context.Context, string) (models.User, error)) error {
	_, err := lookup(ctx, value)
	switch {
	case err == nil:
		return &ConflictError{Field: field, Message: userConflictMessages[field]}
	case errors.Is(err, repository.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("check %s: %w", field, err)
	}
}

func (s *UserService) Get(ctx context.Context, id int) (models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, notFound(err, "user", id)
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context, p Page) ([]models.User, error) {
	return s.users.List(ctx, p.Skip, p.Limit)
}
