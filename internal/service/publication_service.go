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

var ErrPublicationNotFound = errors.New("publication not found")

type PublicationService struct {
	publicationRepo repository.PublicationRepository
}

func NewPublicationService(publicationRepo repository.PublicationRepository) *PublicationService {
	return &PublicationService{publicationRepo: publicationRepo}
}

type CreatePublicationInput struct {
	Title      string  `json:"title"`
	Slug       string  `json:"slug"`
	Excerpt    *string `json:"excerpt"`
	Content    string  `json:"content"`
	ImageURL   *string `json:"image_url"`
	Status     string  `json:"status"`
	CategoryID *int64  `json:"category_id"`
}

type UpdatePublicationInput struct {
	Title      *string `json:"title"`
	Slug       *string `json:"slug"`
	Excerpt    *string `json:"excerpt"`
	Content    *string `json:"content"`
	ImageURL   *string `json:"image_url"`
	Status     *string `json:"status"`
	CategoryID *int64  `json:"category_id"`
}

type PublicationList struct {
	Items      []domain.Publication `json:"items"`
	Total      int64                `json:"total"`
	TotalPages int                  `json:"total_pages"`
	Page       int                  `json:"page"`
	PerPage    int                  `json:"per_page"`
}

func (s *PublicationService) Create(ctx context.Context, authorID int64, input CreatePublicationInput) (*domain.Publication, error) {
	status := input.Status
	if status == "" {
		status = domain.StatusDraft
	}

	now := time.Now().UTC()
	pub := &domain.Publication{
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
		pub.PublishedAt = &now
	}

	desired := input.Slug
	if desired == "" {
		desired = input.Title
	}

	allocated, err := slug.AllocateInsert(ctx, desired,
		func(ctx context.Context, candidate string) (bool, error) {
			existing, err := s.publicationRepo.GetBySlug(ctx, candidate)
			return existing != nil, err
		},
		func(ctx context.Context, sl string) error {
			pub.Slug = sl
			return s.publicationRepo.Create(ctx, pub)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("creating publication: %w", err)
	}
	pub.Slug = allocated

	return pub, nil
}

func (s *PublicationService) Update(ctx context.Context, id int64, input UpdatePublicationInput) (*domain.Publication, error) {
	pub, err := s.publicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pub == nil {
		return nil, ErrPublicationNotFound
	}

	if input.Status != nil {
		now := time.Now().UTC()
		if *input.Status == domain.StatusPublished && pub.Status != domain.StatusPublished {
			pub.PublishedAt = &now
		}
		if *input.Status == domain.StatusDraft && pub.Status == domain.StatusPublished {
			pub.PublishedAt = nil
		}
		pub.Status = *input.Status
	}
	if input.Title != nil {
		pub.Title = *input.Title
	}
	if input.Slug != nil {
		newSlug := slug.Make(*input.Slug)
		existing, err := s.publicationRepo.GetBySlug(ctx, newSlug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != pub.ID {
			return nil, ErrSlugTaken
		}
		pub.Slug = newSlug
	}
	if input.Excerpt != nil {
		pub.Excerpt = input.Excerpt
	}
	if input.Content != nil {
		pub.Content = *input.Content
	}
	if input.ImageURL != nil {
		pub.ImageURL = input.ImageURL
	}
	if input.CategoryID != nil {
		pub.CategoryID = input.CategoryID
	}
	pub.UpdatedAt = time.Now().UTC()

	if err := s.publicationRepo.Update(ctx, pub); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("updating publication: %w", err)
	}

	return pub, nil
}

func (s *PublicationService) Delete(ctx context.Context, id int64) error {
	pub, err := s.publicationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if pub == nil {
		return ErrPublicationNotFound
	}

	return s.publicationRepo.Delete(ctx, id)
}

func (s *PublicationService) GetByID(ctx context.Context, id int64) (*domain.Publication, error) {
	pub, err := s.publicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pub == nil {
		return nil, ErrPublicationNotFound
	}
	return pub, nil
}

func (s *PublicationService) GetPublished(ctx context.Context, sl string) (*domain.Publication, error) {
	pub, err := s.publicationRepo.GetBySlug(ctx, sl)
	if err != nil {
		return nil, err
	}
	if pub == nil || pub.Status != domain.StatusPublished {
		return nil, ErrPublicationNotFound
	}
	return pub, nil
}

func (s *PublicationService) ListPublished(ctx context.Context, f repository.ListFilter) (*PublicationList, error) {
	items, total, err := s.publicationRepo.ListPublished(ctx, f)
	if err != nil {
		return nil, err
	}
	return newPublicationList(items, total, f), nil
}

func (s *PublicationService) ListAdmin(ctx context.Context, f repository.ListFilter) (*PublicationList, error) {
	items, total, err := s.publicationRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return newPublicationList(items, total, f), nil
}

func newPublicationList(items []domain.Publication, total int64, f repository.ListFilter) *PublicationList {
	if items == nil {
		items = []domain.Publication{}
	}
	return &PublicationList{
		Items:      items,
		Total:      total,
		TotalPages: totalPages(total, f.PerPage),
		Page:       f.Page,
		PerPage:    f.PerPage,
	}
}
