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

var ErrItemNotFound = errors.New("boutique item not found")

type BoutiqueService struct {
	boutiqueRepo repository.BoutiqueRepository
}

func NewBoutiqueService(boutiqueRepo repository.BoutiqueRepository) *BoutiqueService {
	return &BoutiqueService{boutiqueRepo: boutiqueRepo}
}

type CreateItemInput struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	ImageURL    *string `json:"image_url"`
	Price       float64 `json:"price"`
	InStock     *bool   `json:"in_stock"`
	Featured    bool    `json:"featured"`
	Status      string  `json:"status"`
	CategoryID  *int64  `json:"category_id"`
}

type UpdateItemInput struct {
	Name        *string  `json:"name"`
	Slug        *string  `json:"slug"`
	Description *string  `json:"description"`
	Content     *string  `json:"content"`
	ImageURL    *string  `json:"image_url"`
	Price       *float64 `json:"price"`
	InStock     *bool    `json:"in_stock"`
	Featured    *bool    `json:"featured"`
	Status      *string  `json:"status"`
	CategoryID  *int64   `json:"category_id"`
}

type BoutiqueList struct {
	Items      []domain.BoutiqueItem `json:"items"`
	Total      int64                 `json:"total"`
	TotalPages int                   `json:"total_pages"`
	Page       int                   `json:"page"`
	PerPage    int                   `json:"per_page"`
}

func (s *BoutiqueService) Create(ctx context.Context, authorID int64, input CreateItemInput) (*domain.BoutiqueItem, error) {
	status := input.Status
	if status == "" {
		status = domain.StatusDraft
	}

	inStock := true
	if input.InStock != nil {
		inStock = *input.InStock
	}

	now := time.Now().UTC()
	item := &domain.BoutiqueItem{
		Name:        input.Name,
		Description: input.Description,
		Content:     input.Content,
		ImageURL:    input.ImageURL,
		Price:       input.Price,
		InStock:     inStock,
		Featured:    input.Featured,
		Status:      status,
		CategoryID:  input.CategoryID,
		AuthorID:    &authorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	desired := input.Slug
	if desired == "" {
		desired = input.Name
	}

	allocated, err := slug.AllocateInsert(ctx, desired,
		func(ctx context.Context, candidate string) (bool, error) {
			existing, err := s.boutiqueRepo.GetBySlug(ctx, candidate)
			return existing != nil, err
		},
		func(ctx context.Context, sl string) error {
			item.Slug = sl
			return s.boutiqueRepo.Create(ctx, item)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("creating boutique item: %w", err)
	}
	item.Slug = allocated

	return item, nil
}

func (s *BoutiqueService) Update(ctx context.Context, id int64, input UpdateItemInput) (*domain.BoutiqueItem, error) {
	item, err := s.boutiqueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Slug != nil {
		newSlug := slug.Make(*input.Slug)
		existing, err := s.boutiqueRepo.GetBySlug(ctx, newSlug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != item.ID {
			return nil, ErrSlugTaken
		}
		item.Slug = newSlug
	}
	if input.Description != nil {
		item.Description = input.Description
	}
	if input.Content != nil {
		item.Content = input.Content
	}
	if input.ImageURL != nil {
		item.ImageURL = input.ImageURL
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.InStock != nil {
		item.InStock = *input.InStock
	}
	if input.Featured != nil {
		item.Featured = *input.Featured
	}
	if input.Status != nil {
		item.Status = *input.Status
	}
	if input.CategoryID != nil {
		item.CategoryID = input.CategoryID
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.boutiqueRepo.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("updating boutique item: %w", err)
	}

	return item, nil
}

func (s *BoutiqueService) Delete(ctx context.Context, id int64) error {
	item, err := s.boutiqueRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrItemNotFound
	}

	return s.boutiqueRepo.Delete(ctx, id)
}

func (s *BoutiqueService) GetByID(ctx context.Context, id int64) (*domain.BoutiqueItem, error) {
	item, err := s.boutiqueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

func (s *BoutiqueService) GetPublished(ctx context.Context, sl string) (*domain.BoutiqueItem, error) {
	item, err := s.boutiqueRepo.GetBySlug(ctx, sl)
	if err != nil {
		return nil, err
	}
	if item == nil || item.Status != domain.StatusPublished {
		return nil, ErrItemNotFound
	}
	return item, nil
}

func (s *BoutiqueService) ListPublished(ctx context.Context, f repository.ListFilter) (*BoutiqueList, error) {
	items, total, err := s.boutiqueRepo.ListPublished(ctx, f)
	if err != nil {
		return nil, err
	}
	return newBoutiqueList(items, total, f), nil
}

func (s *BoutiqueService) ListAdmin(ctx context.Context, f repository.ListFilter) (*BoutiqueList, error) {
	items, total, err := s.boutiqueRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return newBoutiqueList(items, total, f), nil
}

func newBoutiqueList(items []domain.BoutiqueItem, total int64, f repository.ListFilter) *BoutiqueList {
	if items == nil {
		items = []domain.BoutiqueItem{}
	}
	return &BoutiqueList{
		Items:      items,
		Total:      total,
		TotalPages: totalPages(total, f.PerPage),
		Page:       f.Page,
		PerPage:    f.PerPage,
	}
}
