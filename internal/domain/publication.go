package domain

import "time"

type Publication struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     *string    `json:"excerpt,omitempty"`
	Content     string     `json:"content"`
	ImageURL    *string    `json:"image_url,omitempty"`
	Status      string     `json:"status"`
	CategoryID  *int64     `json:"category_id,omitempty"`
	AuthorID    *int64     `json:"author_id,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
