package service

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maisonbleue/backend/internal/domain"
)

type fakeCategoryRepo struct {
	cats   map[int64]*domain.Category
	nextID int64
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{cats: map[int64]*domain.Category{}, nextID: 1}
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *domain.Category) error {
	copied := *c
	copied.ID = f.nextID
	f.nextID++
	f.cats[copied.ID] = &copied
	c.ID = copied.ID
	return nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	return f.cats[id], nil
}

func (f *fakeCategoryRepo) GetBySlug(_ context.Context, slug string) (*domain.Category, error) {
	for _, c := range f.cats {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) List(_ context.Context, contentType string) ([]domain.Category, error) {
	var out []domain.Category
	for _, c := range f.cats {
		if contentType == "" || c.ContentType == contentType {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, c *domain.Category) error {
	copied := *c
	f.cats[c.ID] = &copied
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id int64) error {
	delete(f.cats, id)
	return nil
}

func TestCategoryCreate(t *testing.T) {
	t.Parallel()

	svc := NewCategoryService(newFakeCategoryRepo())

	cat, err := svc.Create(context.Background(), CreateCategoryInput{Name: "Événements", ContentType: domain.ContentTypeArticle})
	require.NoError(t, err)
	assert.Equal(t, "evenements", cat.Slug)
}

// Categories reject an explicit duplicate instead of suffixing.
func TestCategoryCreateSlugTaken(t *testing.T) {
	t.Parallel()

	svc := NewCategoryService(newFakeCategoryRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateCategoryInput{Name: "Ateliers", ContentType: domain.ContentTypeArticle})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateCategoryInput{Name: "Ateliers", ContentType: domain.ContentTypeBoutique})
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestCategoryUpdate(t *testing.T) {
	t.Parallel()

	svc := NewCategoryService(newFakeCategoryRepo())
	ctx := context.Background()

	cat, err := svc.Create(ctx, CreateCategoryInput{Name: "Vieux nom", ContentType: domain.ContentTypeArticle})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, cat.ID, UpdateCategoryInput{Name: strPtr("Nouveau nom"), Slug: strPtr("nouveau-nom")})
	require.NoError(t, err)
	assert.Equal(t, "Nouveau nom", updated.Name)
	assert.Equal(t, "nouveau-nom", updated.Slug)

	_, err = svc.Update(ctx, 404, UpdateCategoryInput{Name: strPtr("x")})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryListFilter(t *testing.T) {
	t.Parallel()

	svc := NewCategoryService(newFakeCategoryRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateCategoryInput{Name: "Articles cat", ContentType: domain.ContentTypeArticle})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateCategoryInput{Name: "Boutique cat", ContentType: domain.ContentTypeBoutique})
	require.NoError(t, err)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	boutiqueOnly, err := svc.List(ctx, domain.ContentTypeBoutique)
	require.NoError(t, err)
	require.Len(t, boutiqueOnly, 1)
	assert.Equal(t, "Boutique cat", boutiqueOnly[0].Name)
}
