package domain

// Content types a category can belong to.
const (
	ContentTypeArticle     = "article"
	ContentTypePublication = "publication"
	ContentTypeBoutique    = "boutique"
)

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	ContentType string `json:"content_type"`
}
