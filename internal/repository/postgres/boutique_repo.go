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

const boutiqueCols = "b.id, b.name, b.slug, b.description, b.content, b.image_url, b.price, b.in_stock, b.featured, b.status, b.category_id, b.author_id, b.created_at, b.updated_at"

type BoutiqueRepo struct {
	pool *pgxpool.Pool
}

func NewBoutiqueRepo(pool *pgxpool.Pool) *BoutiqueRepo {
	return &BoutiqueRepo{pool: pool}
}

func (r *BoutiqueRepo) Create(ctx context.Context, item *domain.BoutiqueItem) error {
	query := `
		INSERT INTO boutique_items (name, slug, description, content, image_url, price, in_stock, featured, status, category_id, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		item.Name, item.Slug, item.Description, item.Content, item.ImageURL,
		item.Price, item.InStock, item.Featured, item.Status,
		item.CategoryID, item.AuthorID, item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	return mapErr(err)
}

func (r *BoutiqueRepo) GetByID(ctx context.Context, id int64) (*domain.BoutiqueItem, error) {
	return r.scanItem(ctx, "SELECT "+boutiqueCols+" FROM boutique_items b WHERE b.id = $1", id)
}

func (r *BoutiqueRepo) GetBySlug(ctx context.Context, slug string) (*domain.BoutiqueItem, error) {
	return r.scanItem(ctx, "SELECT "+boutiqueCols+" FROM boutique_items b WHERE b.slug = $1", slug)
}

func (r *BoutiqueRepo) List(ctx context.Context, f repository.ListFilter) ([]domain.BoutiqueItem, int64, error) {
	where := []string{}
	args := []any{}

	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("b.status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("b.name ILIKE $%d", len(args)))
	}

	return r.list(ctx, "boutique_items b", where, args, f)
}

func (r *BoutiqueRepo) ListPublished(ctx context.Context, f repository.ListFilter) ([]domain.BoutiqueItem, int64, error) {
	where := []string{"b.status = 'published'"}
	args := []any{}
	from := "boutique_items b"

	if f.CategorySlug != "" {
		from += " JOIN categories c ON b.category_id = c.id"
		args = append(args, f.CategorySlug)
		where = append(where, fmt.Sprintf("c.slug = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(b.name ILIKE $%d OR b.description ILIKE $%d)", len(args), len(args)))
	}

	return r.list(ctx, from, where, args, f)
}

func (r *BoutiqueRepo) list(ctx context.Context, from string, where []string, args []any, f repository.ListFilter) ([]domain.BoutiqueItem, int64, error) {
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM "+from+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY b.created_at DESC OFFSET $%d LIMIT $%d",
		boutiqueCols, from, clause, len(args)+1, len(args)+2)
	args = append(args, f.Offset(), f.PerPage)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.BoutiqueItem
	for rows.Next() {
		var b domain.BoutiqueItem
		if err := rows.Scan(
			&b.ID, &b.Name, &b.Slug, &b.Description, &b.Content, &b.ImageURL,
			&b.Price, &b.InStock, &b.Featured, &b.Status,
			&b.CategoryID, &b.AuthorID, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		items = append(items, b)
	}
	return items, total, rows.Err()
}

func (r *BoutiqueRepo) Update(ctx context.Context, item *domain.BoutiqueItem) error {
	query := `
		UPDATE boutique_items
		SET name = $1, slug = $2, description = $3, content = $4, image_url = $5,
		    price = $6, in_stock = $7, featured = $8, status = $9, category_id = $10,
		    updated_at = $11
		WHERE id = $12`

	_, err := r.pool.Exec(ctx, query,
		item.Name, item.Slug, item.Description, item.Content, item.ImageURL,
		item.Price, item.InStock, item.Featured, item.Status, item.CategoryID,
		item.UpdatedAt, item.ID,
	)
	return mapErr(err)
}

func (r *BoutiqueRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM boutique_items WHERE id = $1", id)
	return err
}

func (r *BoutiqueRepo) scanItem(ctx context.Context, query string, arg any) (*domain.BoutiqueItem, error) {
	var b domain.BoutiqueItem
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&b.ID, &b.Name, &b.Slug, &b.Description, &b.Content, &b.ImageURL,
		&b.Price, &b.InStock, &b.Featured, &b.Status,
		&b.CategoryID, &b.AuthorID, &b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
