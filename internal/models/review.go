package models

import "time"

type Review struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	Rating    *int      `json:"rating"` // 1..5 when present
	BookID    int       `json:"book_id"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReviewCreate carries the client-supplied part of a review; book and author come from the route and token.
type ReviewCreate struct {
	Content string `json:"content" binding:"required"`
	Rating  *int   `json:"rating,omitempty"`
}
