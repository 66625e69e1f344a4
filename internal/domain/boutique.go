package domain

import "time"

type BoutiqueItem struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	Content     *string   `json:"content,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Price       float64   `json:"price"`
	InStock     bool      `json:"in_stock"`
	Featured    bool      `json:"featured"`
	Status      string    `json:"status"`
	CategoryID  *int64    `json:"category_id,omitempty"`
	AuthorID    *int64    `json:"author_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
