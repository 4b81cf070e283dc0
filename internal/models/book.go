package models

import "time"

type Book struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	Publisher   *string    `json:"publisher"`
	PublishDate *time.Time `json:"publish_date"`
	ISBN        *string    `json:"isbn"`
	CoverImage  *string    `json:"cover_image"`
	Description *string    `json:"description"`
	CategoryID  *int       `json:"category_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type BookCreate struct {
	Title       string     `json:"title" binding:"required"`
	Author      string     `json:"author" binding:"required"`
	Publisher   *string    `json:"publisher,omitempty"`
	PublishDate *time.Time `json:"publish_date,omitempty"`
	ISBN        *string    `json:"isbn,omitempty"`
	CoverImage  *string    `json:"cover_image,omitempty"`
	Description *string    `json:"description,omitempty"`
	CategoryID  *int       `json:"category_id,omitempty"`
}

type Category struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type CategoryCreate struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description,omitempty"`
}
