package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"bookfans/internal/models"
	"bookfans/internal/repository"
)

const tokenTypeBearer = "bearer"

// dummyPassword is hashed once per service and compared against when the
// username is unknown, so both failure paths cost one bcrypt comparison.
const dummyPassword = "bookfans-dummy-password"

// AuthService handles user auth logic
type AuthService struct {
	users    repository.UserRepo
	hasher   Hasher
	tokens   *TokenService
	activity activityRecorder

	dummyOnce   sync.Once
	dummyDigest string
}

func NewAuthService(users repository.UserRepo, hasher Hasher, tokens *TokenService, activity activityRecorder) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, activity: activity}
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		// On failure the digest stays empty and Verify reports a mismatch.
		s.dummyDigest, _ = s.hasher.Hash(dummyPassword)
	})
	return s.dummyDigest
}

// Authenticate checks credentials. Unknown user and wrong password both return
// ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.hasher.Verify(password, s.dummy())
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("authenticate: %w", err)
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		return models.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Login validates credentials and returns a bearer token whose subject is the username.
func (s *AuthService) Login(ctx context.Context, username, password string) (AccessToken, error) {
	u, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return AccessToken{}, err
	}
	token, err := s.tokens.Issue(u.Username, s.tokens.TTL())
	if err != nil {
		return AccessToken{}, err
	}
	s.activity.Record(ctx, models.ActivityUserLogin, "user logged in", map[string]any{
		"user_id":  u.ID,
		"username": u.Username,
	})
	return AccessToken{Token: token, TokenType: tokenTypeBearer}, nil
}

// ResolveCurrentUser verifies token and re-reads its subject from the store.
func (s *AuthService) ResolveCurrentUser(ctx context.Context, token string) (models.User, error) {
	username, err := s.tokens.Verify(token)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.User{}, fmt.Errorf("%w: user %q no longer exists", ErrUnauthenticated, username)
		}
		return models.User{}, fmt.Errorf("resolve current user: %w", err)
	}
	return u, nil
}
