package repository

import (
	"context"

	"github.com/maisonbleue/backend/internal/domain"
)

// ListFilter carries the common pagination and filtering knobs. Page is
// 1-based; zero-value fields are ignored.
type ListFilter struct {
	Status       string
	CategorySlug string
	Search       string
	Page         int
	PerPage      int
}

func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.PerPage
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, cat *domain.Category) error
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
	List(ctx context.Context, contentType string) ([]domain.Category, error)
	Update(ctx context.Context, cat *domain.Category) error
	Delete(ctx context.Context, id int64) error
}

type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) error
	GetByID(ctx context.Context, id int64) (*domain.Article, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Article, error)
	// List serves the backoffice: any status, title search, newest first.
	List(ctx context.Context, f ListFilter) ([]domain.Article, int64, error)
	// ListPublished serves the public site: published only, title or body
	// search, category filter by slug, ordered by publication date.
	ListPublished(ctx context.Context, f ListFilter) ([]domain.Article, int64, error)
	Update(ctx context.Context, article *domain.Article) error
	Delete(ctx context.Context, id int64) error
}

type PublicationRepository interface {
	Create(ctx context.Context, pub *domain.Publication) error
	GetByID(ctx context.Context, id int64) (*domain.Publication, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Publication, error)
	List(ctx context.Context, f ListFilter) ([]domain.Publication, int64, error)
	ListPublished(ctx context.Context, f ListFilter) ([]domain.Publication, int64, error)
	Update(ctx context.Context, pub *domain.Publication) error
	Delete(ctx context.Context, id int64) error
}

type BoutiqueRepository interface {
	Create(ctx context.Context, item *domain.BoutiqueItem) error
	GetByID(ctx context.Context, id int64) (*domain.BoutiqueItem, error)
	GetBySlug(ctx context.Context, slug string) (*domain.BoutiqueItem, error)
	List(ctx context.Context, f ListFilter) ([]domain.BoutiqueItem, int64, error)
	ListPublished(ctx context.Context, f ListFilter) ([]domain.BoutiqueItem, int64, error)
	Update(ctx context.Context, item *domain.BoutiqueItem) error
	Delete(ctx context.Context, id int64) error
}
