package service

import "time"

// Page selects a window of a listing in insertion order.
type Page struct {
	Skip  int
	Limit int
}

// ActivityFilter supports history filtering by time range and type.
type ActivityFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "USER_REGISTERED", "USER_LOGIN", "BOOK_CREATED", ...
}

// AccessToken is the result of a successful login.
type AccessToken struct {
	Token     string
	TokenType string
}
