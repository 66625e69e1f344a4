package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maisonbleue/backend/internal/domain"
	"github.com/maisonbleue/backend/internal/repository"
)

const articleCols = "a.id, a.title, a.slug, a.excerpt, a.content, a.image_url, a.status, a.category_id, a.author_id, a.published_at, a.created_at, a.updated_at"

type ArticleRepo struct {
	pool *pgxpool.Pool
}

func NewArticleRepo(pool *pgxpool.Pool) *ArticleRepo {
	return &ArticleRepo{pool: pool}
}

func (r *ArticleRepo) Create(ctx context.Context, article *domain.Article) error {
	query := `
		INSERT INTO articles (title, slug, excerpt, content, image_url, status, category_id, author_id, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		article.Title, article.Slug, article.Excerpt, article.Content,
		article.ImageURL, article.Status, article.CategoryID, article.AuthorID,
		article.PublishedAt, article.CreatedAt, article.UpdatedAt,
	).Scan(&article.ID)
	return mapErr(err)
}

func (r *ArticleRepo) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	return r.scanArticle(ctx, "SELECT "+articleCols+" FROM articles a WHERE a.id = $1", id)
}

func (r *ArticleRepo) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	return r.scanArticle(ctx, "SELECT "+articleCols+" FROM articles a WHERE a.slug = $1", slug)
}

func (r *ArticleRepo) List(ctx context.Context, f repository.ListFilter) ([]domain.Article, int64, error) {
	where := []string{}
	args := []any{}

	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("a.status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("a.title ILIKE $%d", len(args)))
	}

	return r.list(ctx, "articles a", where, args, "a.created_at DESC", f)
}

func (r *ArticleRepo) ListPublished(ctx context.Context, f repository.ListFilter) ([]domain.Article, int64, error) {
	where := []string{"a.status = 'published'"}
	args := []any{}
	from := "articles a"

	if f.CategorySlug != "" {
		from += " JOIN categories c ON a.category_id = c.id"
		args = append(args, f.CategorySlug)
		where = append(where, fmt.Sprintf("c.slug = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(a.title ILIKE $%d OR a.content ILIKE $%d)", len(args), len(args)))
	}

	return r.list(ctx, from, where, args, "a.published_at DESC", f)
}

func (r *ArticleRepo) list(ctx context.Context, from string, where []string, args []any, order string, f repository.ListFilter) ([]domain.Article, int64, error) {
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM "+from+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s OFFSET $%d LIMIT $%d",
		articleCols, from, clause, order, len(args)+1, len(args)+2)
	args = append(args, f.Offset(), f.PerPage)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.Article
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(
			&a.ID, &a.Title, &a.Slug, &a.Excerpt, &a.Content, &a.ImageURL,
			&a.Status, &a.CategoryID, &a.AuthorID, &a.PublishedAt,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *ArticleRepo) Update(ctx context.Context, article *domain.Article) error {
	query := `
		UPDATE articles
		SET title = $1, slug = $2, excerpt = $3, content = $4, image_url = $5,
		    status = $6, category_id = $7, published_at = $8, updated_at = $9
		WHERE id = $10`

	_, err := r.pool.Exec(ctx, query,
		article.Title, article.Slug, article.Excerpt, article.Content,
		article.ImageURL, article.Status, article.CategoryID,
		article.PublishedAt, article.UpdatedAt, article.ID,
	)
	return mapErr(err)
}

func (r *ArticleRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM articles WHERE id = $1", id)
	return err
}

func (r *ArticleRepo) scanArticle(ctx context.Context, query string, arg any) (*domain.Article, error) {
	var a domain.Article
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&a.ID, &a.Title, &a.Slug, &a.Excerpt, &a.Content, &a.ImageURL,
		&a.Status, &a.CategoryID, &a.AuthorID, &a.PublishedAt,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
