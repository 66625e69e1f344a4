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

const publicationCols = "p.id, p.title, p.slug, p.excerpt, p.content, p.image_url, p.status, p.category_id, p.author_id, p.published_at, p.created_at, p.updated_at"

type PublicationRepo struct {
	pool *pgxpool.Pool
}

func NewPublicationRepo(pool *pgxpool.Pool) *PublicationRepo {
	return &PublicationRepo{pool: pool}
}

func (r *PublicationRepo) Create(ctx context.Context, pub *domain.Publication) error {
	query := `
		INSERT INTO publications (title, slug, excerpt, content, image_url, status, category_id, author_id, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		pub.Title, pub.Slug, pub.Excerpt, pub.Content,
		pub.ImageURL, pub.Status, pub.CategoryID, pub.AuthorID,
		pub.PublishedAt, pub.CreatedAt, pub.UpdatedAt,
	).Scan(&pub.ID)
	return mapErr(err)
}

func (r *PublicationRepo) GetByID(ctx context.Context, id int64) (*domain.Publication, error) {
	return r.scanPublication(ctx, "SELECT "+publicationCols+" FROM publications p WHERE p.id = $1", id)
}

func (r *PublicationRepo) GetBySlug(ctx context.Context, slug string) (*domain.Publication, error) {
	return r.scanPublication(ctx, "SELECT "+publicationCols+" FROM publications p WHERE p.slug = $1", slug)
}

func (r *PublicationRepo) List(ctx context.Context, f repository.ListFilter) ([]domain.Publication, int64, error) {
	where := []string{}
	args := []any{}

	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("p.status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("p.title ILIKE $%d", len(args)))
	}

	return r.list(ctx, "publications p", where, args, "p.created_at DESC", f)
}

func (r *PublicationRepo) ListPublished(ctx context.Context, f repository.ListFilter) ([]domain.Publication, int64, error) {
	where := []string{"p.status = 'published'"}
	args := []any{}
	from := "publications p"

	if f.CategorySlug != "" {
		from += " JOIN categories c ON p.category_id = c.id"
		args = append(args, f.CategorySlug)
		where = append(where, fmt.Sprintf("c.slug = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(p.title ILIKE $%d OR p.content ILIKE $%d)", len(args), len(args)))
	}

	return r.list(ctx, from, where, args, "p.published_at DESC", f)
}

func (r *PublicationRepo) list(ctx context.Context, from string, where []string, args []any, order string, f repository.ListFilter) ([]domain.Publication, int64, error) {
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM "+from+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s OFFSET $%d LIMIT $%d",
		publicationCols, from, clause, order, len(args)+1, len(args)+2)
	args = append(args, f.Offset(), f.PerPage)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.Publication
	for rows.Next() {
		var p domain.Publication
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.ImageURL,
			&p.Status, &p.CategoryID, &p.AuthorID, &p.PublishedAt,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *PublicationRepo) Update(ctx context.Context, pub *domain.Publication) error {
	query := `
		UPDATE publications
		SET title = $1, slug = $2, excerpt = $3, content = $4, image_url = $5,
		    status = $6, category_id = $7, published_at = $8, updated_at = $9
		WHERE id = $10`

	_, err := r.pool.Exec(ctx, query,
		pub.Title, pub.Slug, pub.Excerpt, pub.Content,
		pub.ImageURL, pub.Status, pub.CategoryID,
		pub.PublishedAt, pub.UpdatedAt, pub.ID,
	)
	return mapErr(err)
}

func (r *PublicationRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM publications WHERE id = $1", id)
	return err
}

func (r *PublicationRepo) scanPublication(ctx context.Context, query string, arg any) (*domain.Publication, error) {
	var p domain.Publication
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.ImageURL,
		&p.Status, &p.CategoryID, &p.AuthorID, &p.PublishedAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
