package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maisonbleue/backend/internal/domain"
)

type CategoryRepo struct {
	pool *pgxpool.Pool
}

func NewCategoryRepo(pool *pgxpool.Pool) *CategoryRepo {
	return &CategoryRepo{pool: pool}
}

func (r *CategoryRepo) Create(ctx context.Context, cat *domain.Category) error {
	query := `
		INSERT INTO categories (name, slug, content_type)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query, cat.Name, cat.Slug, cat.ContentType).Scan(&cat.ID)
	return mapErr(err)
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	return r.scanCategory(ctx, "SELECT id, name, slug, content_type FROM categories WHERE id = $1", id)
}

func (r *CategoryRepo) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return r.scanCategory(ctx, "SELECT id, name, slug, content_type FROM categories WHERE slug = $1", slug)
}

func (r *CategoryRepo) List(ctx context.Context, contentType string) ([]domain.Category, error) {
	query := "SELECT id, name, slug, content_type FROM categories"
	args := []any{}
	if contentType != "" {
		query += " WHERE content_type = $1"
		args = append(args, contentType)
	}
	query += " ORDER BY name"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.ContentType); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *CategoryRepo) Update(ctx context.Context, cat *domain.Category) error {
	query := `UPDATE categories SET name = $1, slug = $2 WHERE id = $3`
	_, err := r.pool.Exec(ctx, query, cat.Name, cat.Slug, cat.ID)
	return mapErr(err)
}

func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM categories WHERE id = $1", id)
	return err
}

func (r *CategoryRepo) scanCategory(ctx context.Context, query string, arg any) (*domain.Category, error) {
	var c domain.Category
	err := r.pool.QueryRow(ctx, query, arg).Scan(&c.ID, &c.Name, &c.Slug, &c.ContentType)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
