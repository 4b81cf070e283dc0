// Package validation checks request payloads before they reach services or the store.
// Each function returns the normalized record or an Errors value listing every
// rejected field.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"bookfans/internal/models"

	"github.com/go-playground/validator/v10"
)

const (
	usernameMinLen   = 3
	usernameMaxLen   = 50
	nicknameMaxLen   = 50
	passwordMinLen   = 6
	passwordMaxLen   = 100
	passwordMaxBytes = 72 // bcrypt input limit
	emailMaxLen      = 100
	titleMaxLen      = 100
	authorMaxLen     = 50
	publisherMaxLen  = 100
	isbnMaxLen       = 20
	coverMaxLen      = 255
	categoryMaxLen   = 50
	reviewMaxLen     = 5000
	ratingMin        = 1
	ratingMax        = 5
)

var validate = validator.New()

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the list of field errors produced by a validation function.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *Errors) add(field, format string, args ...any) {
	*e = append(*e, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (e Errors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func length(s string) int { return utf8.RuneCountInString(s) }

func (e *Errors) lengthBetween(field, value string, lo, hi int) {
	if n := length(value); n < lo || n > hi {
		e.add(field, "must be between %d and %d characters", lo, hi)
	}
}

func (e *Errors) required(field, value string, max int) {
	switch {
	case strings.TrimSpace(value) == "":
		e.add(field, "is required")
	case length(value) > max:
		e.add(field, "must be at most %d characters", max)
	}
}

func (e *Errors) optionalMax(field string, value *string, max int) {
	if value != nil && length(*value) > max {
		e.add(field, "must be at most %d characters", max)
	}
}

// blankToNil maps empty or whitespace-only optional strings to absent.
func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// UserCreate validates a registration payload.
func UserCreate(in models.UserCreate) (models.UserCreate, error) {
	var errs Errors

	errs.lengthBetween("username", in.Username, usernameMinLen, usernameMaxLen)
	if strings.TrimSpace(in.Username) != in.Username {
		errs.add("username", "must not start or end with whitespace")
	}

	in.Email = blankToNil(in.Email)
	if in.Email != nil {
		if length(*in.Email) > emailMaxLen {
			errs.add("email", "must be at most %d characters", emailMaxLen)
		} else if err := validate.Var(*in.Email, "email"); err != nil {
			errs.add("email", "must be a valid email address")
		}
	}

	in.Nickname = blankToNil(in.Nickname)
	errs.optionalMax("nickname", in.Nickname, nicknameMaxLen)

	errs.lengthBetween("password", in.Password, passwordMinLen, passwordMaxLen)
	if len(in.Password) > passwordMaxBytes {
		errs.add("password", "must be at most %d bytes", passwordMaxBytes)
	}

	return in, errs.orNil()
}

// BookCreate validates a book payload.
func BookCreate(in models.BookCreate) (models.BookCreate, error) {
	var errs Errors

	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	errs.required("title", in.Title, titleMaxLen)
	errs.required("author", in.Author, authorMaxLen)

	in.Publisher = blankToNil(in.Publisher)
	errs.optionalMax("publisher", in.Publisher, publisherMaxLen)

	in.ISBN = blankToNil(in.ISBN)
	errs.optionalMax("isbn", in.ISBN, isbnMaxLen)

	in.CoverImage = blankToNil(in.CoverImage)
	errs.optionalMax("cover_image", in.CoverImage, coverMaxLen)

	in.Description = blankToNil(in.Description)

	if in.CategoryID != nil && *in.CategoryID <= 0 {
		errs.add("category_id", "must be a positive integer")
	}

	return in, errs.orNil()
}

// CategoryCreate validates a category payload.
func CategoryCreate(in models.CategoryCreate) (models.CategoryCreate, error) {
	var errs Errors
	in.Name = strings.TrimSpace(in.Name)
	errs.required("name", in.Name, categoryMaxLen)
	in.Description = blankToNil(in.Description)
	return in, errs.orNil()
}

// ReviewCreate validates a review payload.
func ReviewCreate(in models.ReviewCreate) (models.ReviewCreate, error) {
	var errs Errors
	errs.required("content", in.Content, reviewMaxLen)
	if in.Rating != nil && (*in.Rating < ratingMin || *in.Rating > ratingMax) {
		errs.add("rating", "must be between %d and %d", ratingMin, ratingMax)
	}
	return in, errs.orNil()
}

// Credentials checks that a login form carries both fields.
func Credentials(username, password string) error {
	var errs Errors
	if username == "" {
		errs.add("username", "is required")
	}
	if password == "" {
		errs.add("password", "is required")
	}
	return errs.orNil()
}

// Page validates skip/limit against the configured ceiling.
func Page(skip, limit, maxLimit int) error {
	var errs Errors
	if skip < 0 {
		errs.add("skip", "must be greater than or equal to 0")
	}
	if limit < 1 || limit > maxLimit {
		errs.add("limit", "must be between 1 and %d", maxLimit)
	}
	return errs.orNil()
}
