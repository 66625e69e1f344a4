package service

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maisonbleue/backend/internal/domain"
	"github.com/maisonbleue/backend/internal/repository"
)

type fakeArticleRepo struct {
	articles map[int64]*domain.Article
	nextID   int64
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{articles: map[int64]*domain.Article{}, nextID: 1}
}

func (f *fakeArticleRepo) Create(_ context.Context, a *domain.Article) error {
	for _, existing := range f.articles {
		if existing.Slug == a.Slug {
			return repository.ErrUniqueViolation
		}
	}
	copied := *a
	copied.ID = f.nextID
	f.nextID++
	f.articles[copied.ID] = &copied
	a.ID = copied.ID
	return nil
}

func (f *fakeArticleRepo) GetByID(_ context.Context, id int64) (*domain.Article, error) {
	return f.articles[id], nil
}

func (f *fakeArticleRepo) GetBySlug(_ context.Context, slug string) (*domain.Article, error) {
	for _, a := range f.articles {
		if a.Slug == slug {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeArticleRepo) List(_ context.Context, filter repository.ListFilter) ([]domain.Article, int64, error) {
	return f.filtered(func(a *domain.Article) bool {
		return filter.Status == "" || a.Status == filter.Status
	}, filter)
}

func (f *fakeArticleRepo) ListPublished(_ context.Context, filter repository.ListFilter) ([]domain.Article, int64, error) {
	return f.filtered(func(a *domain.Article) bool {
		return a.Status == domain.StatusPublished
	}, filter)
}

func (f *fakeArticleRepo) filtered(keep func(*domain.Article) bool, filter repository.ListFilter) ([]domain.Article, int64, error) {
	var all []domain.Article
	for _, a := range f.articles {
		if keep(a) {
			all = append(all, *a)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	start := filter.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + filter.PerPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (f *fakeArticleRepo) Update(_ context.Context, a *domain.Article) error {
	for _, existing := range f.articles {
		if existing.ID != a.ID && existing.Slug == a.Slug {
			return repository.ErrUniqueViolation
		}
	}
	copied := *a
	f.articles[a.ID] = &copied
	return nil
}

func (f *fakeArticleRepo) Delete(_ context.Context, id int64) error {
	delete(f.articles, id)
	return nil
}

func strPtr(s string) *string { return &s }

func TestArticleCreateDerivesSlug(t *testing.T) {
	t.Parallel()

	svc := NewArticleService(newFakeArticleRepo())

	a, err := svc.Create(context.Background(), 1, CreateArticleInput{Title: "Une Journée à la Maison"})
	require.NoError(t, err)
	assert.Equal(t, "une-journee-a-la-maison", a.Slug)
	assert.Equal(t, domain.StatusDraft, a.Status)
	assert.Nil(t, a.PublishedAt)
	require.NotNil(t, a.AuthorID)
	assert.Equal(t, int64(1), *a.AuthorID)
}

func TestArticleCreateSuffixesOnCollision(t *testing.T) {
	t.Parallel()

	svc := NewArticleService(newFakeArticleRepo())
	ctx := context.Background()

	first, err := svc.Create(ctx, 1, CreateArticleInput{Title: "Atelier peinture"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, 1, CreateArticleInput{Title: "Atelier peinture"})
	require.NoError(t, err)

	assert.Equal(t, "atelier-peinture", first.Slug)
	assert.Equal(t, "atelier-peinture-1", second.Slug)
}

func TestArticleCreatePublishedSetsTimestamp(t *testing.T) {
	t.Parallel()

	svc := NewArticleService(newFakeArticleRepo())

	a, err := svc.Create(context.Background(), 1, CreateArticleInput{Title: "News", Status: domain.StatusPublished})
	require.NoError(t, err)
	assert.NotNil(t, a.PublishedAt)
}

func TestArticleUpdateStatusTransitions(t *testing.T) {
	t.Parallel()

	svc := NewArticleService(newFakeArticleRepo())
	ctx := context.Background()

	a, err := svc.Create(ctx, 1, CreateArticleInput{Title: "Draft first"})
	require.NoError(t, err)

	published, err := svc.Update(ctx, a.ID, UpdateArticleInput{Status: strPtr(domain.StatusPublished)})
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)

	// Back to draft clears the publication date.
	redrafted, err := svc.Update(ctx, a.ID, UpdateArticleInput{Status: strPtr(domain.StatusDraft)})
	require.NoError(t, err)
	assert.Nil(t, redrafted.PublishedAt)
}

func TestArticleUpdateSlugConflict(t *testing.T) {
	t.Parallel()

	svc := NewArticleService(newFakeArticleRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, CreateArticleInput{Title: "First"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, 1, CreateArticleInput{Title: "Second"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, second.ID, UpdateArticleInput{Slug: strPtr("first")})
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestArticleUpdateNotFound(t *testing.T) {
	t.Parallel()

	svc := NewArticleService(newFakeArticleRepo())

	_, err := svc.Update(context.Background(), 404, UpdateArticleInput{Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrArticleNotFound)
}

func TestArticleGetPublishedHidesDrafts(t *testing.T) {
	t.Parallel()

	svc := NewArticleService(newFakeArticleRepo())
	ctx := context.Background()

	draft, err := svc.Create(ctx, 1, CreateArticleInput{Title: "Hidden"})
	require.NoError(t, err)

	_, err = svc.GetPublished(ctx, draft.Slug)
	assert.ErrorIs(t, err, ErrArticleNotFound)

	_, err = svc.Update(ctx, draft.ID, UpdateArticleInput{Status: strPtr(domain.StatusPublished)})
	require.NoError(t, err)

	got, err := svc.GetPublished(ctx, draft.Slug)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)
}

func TestArticleDelete(t *testing.T) {
	t.Parallel()

	svc := NewArticleService(newFakeArticleRepo())
	ctx := context.Background()

	a, err := svc.Create(ctx, 1, CreateArticleInput{Title: "Short lived"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, a.ID))
	assert.ErrorIs(t, svc.Delete(ctx, a.ID), ErrArticleNotFound)
}

func TestArticleListPagination(t *testing.T) {
	t.Parallel()

	svc := NewArticleService(newFakeArticleRepo())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, 1, CreateArticleInput{Title: "Post", Status: domain.StatusPublished})
		require.NoError(t, err)
	}

	list, err := svc.ListPublished(ctx, repository.ListFilter{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), list.Total)
	assert.Equal(t, 3, list.TotalPages)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 2, list.Page)
}
