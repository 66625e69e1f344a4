package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/maisonbleue/backend/internal/domain"
	"github.com/maisonbleue/backend/internal/repository"
	"github.com/maisonbleue/backend/internal/slug"
)

var ErrArticleNotFound = errors.New("article not found")

type ArticleService struct {
	articleRepo repository.ArticleRepository
}

func NewArticleService(articleRepo repository.ArticleRepository) *ArticleService {
	return &ArticleService{articleRepo: articleRepo}
}

type CreateArticleInput struct {
	Title      string  `json:"title"`
	Slug       string  `json:"slug"`
	Excerpt    *string `json:"excerpt"`
	Content    string  `json:"content"`
	ImageURL   *string `json:"image_url"`
	Status     string  `json:"status"`
	CategoryID *int64  `json:"category_id"`
}

type UpdateArticleInput struct {
	Title      *string `json:"title"`
	Slug       *string `json:"slug"`
	Excerpt    *string `json:"excerpt"`
	Content    *string `json:"content"`
	ImageURL   *string `json:"image_url"`
	Status     *string `json:"status"`
	CategoryID *int64  `json:"category_id"`
}

type ArticleList struct {
	Items      []domain.Article `json:"items"`
	Total      int64            `json:"total"`
	TotalPages int              `json:"total_pages"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
}

func (s *ArticleService) Create(ctx context.Context, authorID int64, input CreateArticleInput) (*domain.Article, error) {
	status := input.Status
	if status == "" {
		status = domain.StatusDraft
	}

	now := time.Now().UTC()
	article := &domain.Article{
		Title:      input.Title,
		Excerpt:    input.Excerpt,
		Content:    input.Content,
		ImageURL:   input.ImageURL,
		Status:     status,
		CategoryID: input.CategoryID,
		AuthorID:   &authorID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if status == domain.StatusPublished {
		article.PublishedAt = &now
	}

	desired := input.Slug
	if desired == "" {
		desired = input.Title
	}

	allocated, err := slug.AllocateInsert(ctx, desired,
		func(ctx context.Context, candidate string) (bool, error) {
			existing, err := s.articleRepo.GetBySlug(ctx, candidate)
			return existing != nil, err
		},
		func(ctx context.Context, sl string) error {
			article.Slug = sl
			return s.articleRepo.Create(ctx, article)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("creating article: %w", err)
	}
	article.Slug = allocated

	return article, nil
}

func (s *ArticleService) Update(ctx context.Context, id int64, input UpdateArticleInput) (*domain.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}

	if input.Status != nil {
		now := time.Now().UTC()
		if *input.Status == domain.StatusPublished && article.Status != domain.StatusPublished {
			article.PublishedAt = &now
		}
		if *input.Status == domain.StatusDraft && article.Status == domain.StatusPublished {
			article.PublishedAt = nil
		}
		article.Status = *input.Status
	}
	if input.Title != nil {
		article.Title = *input.Title
	}
	if input.Slug != nil {
		newSlug := slug.Make(*input.Slug)
		existing, err := s.articleRepo.GetBySlug(ctx, newSlug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != article.ID {
			return nil, ErrSlugTaken
		}
		article.Slug = newSlug
	}
	if input.Excerpt != nil {
		article.Excerpt = input.Excerpt
	}
	if input.Content != nil {
		article.Content = *input.Content
	}
	if input.ImageURL != nil {
		article.ImageURL = input.ImageURL
	}
	if input.CategoryID != nil {
		article.CategoryID = input.CategoryID
	}
	article.UpdatedAt = time.Now().UTC()

	if err := s.articleRepo.Update(ctx, article); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("updating article: %w", err)
	}

	return article, nil
}

func (s *ArticleService) Delete(ctx context.Context, id int64) error {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if article == nil {
		return ErrArticleNotFound
	}

	return s.articleRepo.Delete(ctx, id)
}

func (s *ArticleService) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

// GetPublished returns a published article by slug; drafts are
// invisible on the public site.
func (s *ArticleService) GetPublished(ctx context.Context, sl string) (*domain.Article, error) {
	article, err := s.articleRepo.GetBySlug(ctx, sl)
	if err != nil {
		return nil, err
	}
	if article == nil || article.Status != domain.StatusPublished {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

func (s *ArticleService) ListPublished(ctx context.Context, f repository.ListFilter) (*ArticleList, error) {
	items, total, err := s.articleRepo.ListPublished(ctx, f)
	if err != nil {
		return nil, err
	}
	return newArticleList(items, total, f), nil
}

func (s *ArticleService) ListAdmin(ctx context.Context, f repository.ListFilter) (*ArticleList, error) {
	items, total, err := s.articleRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return newArticleList(items, total, f), nil
}

func newArticleList(items []domain.Article, total int64, f repository.ListFilter) *ArticleList {
	if items == nil {
		items = []domain.Article{}
	}
	return &ArticleList{
		Items:      items,
		Total:      total,
		TotalPages: totalPages(total, f.PerPage),
		Page:       f.Page,
		PerPage:    f.PerPage,
	}
}
