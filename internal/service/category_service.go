package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/maisonbleue/backend/internal/domain"
	"github.com/maisonbleue/backend/internal/repository"
	"github.com/maisonbleue/backend/internal/slug"
)

var (
	ErrCategoryNotFound = errors.New("category not found")

	// ErrSlugTaken is the explicit-slug conflict: unlike content
	// creation, which suffixes a counter, an explicitly requested slug
	// that is already in use is rejected outright.
	ErrSlugTaken = errors.New("slug already taken")
)

type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

type CreateCategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	ContentType string `json:"content_type"`
}

type UpdateCategoryInput struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

func (s *CategoryService) Create(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	sl := slug.Make(input.Slug)
	if input.Slug == "" {
		sl = slug.Make(input.Name)
	}

	existing, err := s.categoryRepo.GetBySlug(ctx, sl)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugTaken
	}

	cat := &domain.Category{
		Name:        input.Name,
		Slug:        sl,
		ContentType: input.ContentType,
	}

	if err := s.categoryRepo.Create(ctx, cat); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("creating category: %w", err)
	}

	return cat, nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, input UpdateCategoryInput) (*domain.Category, error) {
	cat, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrCategoryNotFound
	}

	if input.Name != nil {
		cat.Name = *input.Name
	}
	if input.Slug != nil {
		newSlug := slug.Make(*input.Slug)
		existing, err := s.categoryRepo.GetBySlug(ctx, newSlug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != cat.ID {
			return nil, ErrSlugTaken
		}
		cat.Slug = newSlug
	}

	if err := s.categoryRepo.Update(ctx, cat); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("updating category: %w", err)
	}

	return cat, nil
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	cat, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return ErrCategoryNotFound
	}

	return s.categoryRepo.Delete(ctx, id)
}

func (s *CategoryService) List(ctx context.Context, contentType string) ([]domain.Category, error) {
	cats, err := s.categoryRepo.List(ctx, contentType)
	if err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []domain.Category{}
	}
	return cats, nil
}
