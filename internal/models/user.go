package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        *string   `json:"email"`
	Nickname     *string   `json:"nickname"`
	Avatar       *string   `json:"avatar"`
	PasswordHash string    `json:"-"` // don’t expose hash
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserCreate is the registration payload. Password is plaintext and is never persisted.
type UserCreate struct {
	Username string  `json:"username" binding:"required"`
	Email    *string `json:"email,omitempty"`
	Nickname *string `json:"nickname,omitempty"`
	Password string  `json:"password" binding:"required"`
}
