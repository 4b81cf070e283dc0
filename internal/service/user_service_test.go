package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"bookfans/internal/models"
	"bookfans/internal/repository"
	"bookfans/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

func newUserService() (*UserService, *memUserRepo, *recordedActivity, Hasher) {
	repo := &memUserRepo{}
	act := &recordedActivity{}
	h := NewBcryptHasher(bcrypt.MinCost)
	return NewUserService(repo, h, act), repo, act, h
}

func TestUserService_Register_HashesPasswordAndRecords(t *testing.T) {
	svc, repo, act, h := newUserService()

	u, err := svc.Register(context.Background(), models.UserCreate{
		Username: "rei",
		Email:    ptr("rei@example.com"),
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if u.ID != 1 || u.Username != "rei" {
		t.Fatalf("unexpected user: %+v", u)
	}

	stored, _ := repo.GetByUsername(context.Background(), "rei")
	if stored.PasswordHash == "secret1" {
		t.Fatalf("plaintext password stored")
	}
	if !h.Verify("secret1", stored.PasswordHash) {
		t.Fatalf("stored digest does not verify with original password")
	}
	if got := act.types(); len(got) != 1 || got[0] != models.ActivityUserRegistered {
		t.Fatalf("activity = %v", got)
	}
}

func TestUserService_Register_ValidationBeforeStore(t *testing.T) {
	svc, repo, act, _ := newUserService()

	_, err := svc.Register(context.Background(), models.UserCreate{Username: "ab", Password: "1"})
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation.Errors; got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatalf("Create must not be called on invalid input")
	}
	if len(act.types()) != 0 {
		t.Fatalf("no activity expected")
	}
}

func TestUserService_Register_Duplicates(t *testing.T) {
	svc, repo, _, _ := newUserService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, models.UserCreate{Username: "bob", Email: ptr("bob@example.com"), Password: "secret1"}); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name    string
		in      models.UserCreate
		field   string
		message string
	}{
		{"same username", models.UserCreate{Username: "bob", Password: "secret2"}, "username", "username already registered"},
		{"same email", models.UserCreate{Username: "bobby", Email: ptr("bob@example.com"), Password: "secret2"}, "email", "email already registered"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.in)
			var ce *ConflictError
			if !errors.As(err, &ce) {
				t.Fatalf("expected ConflictError; got %v", err)
			}
			if ce.Field != tc.field || ce.Message != tc.message {
				t.Fatalf("got %+v; want field %q message %q", ce, tc.field, tc.message)
			}
			if !errors.Is(err, ErrConflict) {
				t.Fatalf("ConflictError must match ErrConflict")
			}
		})
	}

	if n, _ := repo.Count(ctx); n != 1 {
		t.Fatalf("store must contain exactly one bob, got %d users", n)
	}
}

func TestUserService_Register_StoreConflictMapped(t *testing.T) {
	svc, repo, _, _ := newUserService()
	// the pre-check passes but the insert loses a race
	repo.createErr = &repository.ConflictError{Table: "users", Field: "email"}

	_, err := svc.Register(context.Background(), models.UserCreate{Username: "carol", Email: ptr("c@example.com"), Password: "secret1"})
	var ce *ConflictError
	if !errors.As(err, &ce) || ce.Message != "email already registered" {
		t.Fatalf("expected email ConflictError; got %v", err)
	}
}

func TestUserService_Register_ConcurrentDuplicates(t *testing.T) {
	svc, repo, _, _ := newUserService()
	ctx := context.Background()

	const n = 6
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(ctx, models.UserCreate{Username: "bob", Password: "secret1"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 1 || conflicts != n-1 {
		t.Fatalf("ok=%d conflicts=%d; want 1 and %d", ok, conflicts, n-1)
	}
	if c, _ := repo.Count(ctx); c != 1 {
		t.Fatalf("store must contain one bob, got %d", c)
	}
}

func TestUserService_GetAndList(t *testing.T) {
	svc, _, _, _ := newUserService()
	ctx := context.Background()

	for _, name := range []string{"rei", "asuka", "shinji"} {
		if _, err := svc.Register(ctx, models.UserCreate{Username: name, Password: "secret1"}); err != nil {
			t.Fatal(err)
		}
	}

	u, err := svc.Get(ctx, 2)
	if err != nil || u.Username != "asuka" {
		t.Fatalf("Get(2) = %+v, %v", u, err)
	}

	_, err = svc.Get(ctx, 99)
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Resource != "user" || !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected user NotFoundError; got %v", err)
	}

	page, err := svc.List(ctx, Page{Skip: 1, Limit: 5})
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 2 || page[0].Username != "asuka" || page[1].Username != "shinji" {
		t.Fatalf("unexpected page: %+v", page)
	}
}
