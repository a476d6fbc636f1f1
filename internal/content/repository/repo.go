package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atoolsera/agency-backend/internal/content/domain"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const summaryColumns = `
id, title, slug, excerpt, cover_image, category, author_name, author_image,
coalesce(read_time, 5), coalesce(featured, false), created_at`

func scanSummary(row pgx.Row, p *domain.PostSummary) error {
	return row.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.CoverImage, &p.Category,
		&p.AuthorName, &p.AuthorImage, &p.ReadTime, &p.Featured, &p.CreatedAt)
}

// ListPosts returns published posts, newest first. Empty filter fields match
// everything.
func (r *Repo) ListPosts(ctx context.Context, f domain.PostFilter) ([]domain.PostSummary, error) {
	q := `
select ` + summaryColumns + `
from blog_posts
where coalesce(published, false)
  and ($1 = '' or category = $1)
  and ($2 = '' or position($2 in lower(title)) > 0 or position($2 in lower(excerpt)) > 0)
order by created_at desc;
`
	return r.listSummaries(ctx, q, f.Category, strings.ToLower(strings.TrimSpace(f.Query)))
}

func (r *Repo) GetPostBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	q := `
select ` + summaryColumns + `, content, coalesce(updated_at, created_at)
from blog_posts
where slug = $1 and coalesce(published, false);
`
	var p domain.Post
	err := r.db.QueryRow(ctx, q, slug).Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.CoverImage, &p.Category,
		&p.AuthorName, &p.AuthorImage, &p.ReadTime, &p.Featured, &p.CreatedAt, &p.Content, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListRelated returns other published posts in the same category.
func (r *Repo) ListRelated(ctx context.Context, category, excludeID string, limit int) ([]domain.PostSummary, error) {
	q := `
select ` + summaryColumns + `
from blog_posts
where coalesce(published, false) and category = $1 and id <> $2::uuid
order by created_at desc
limit $3;
`
	return r.listSummaries(ctx, q, category, excludeID, limit)
}

func (r *Repo) listSummaries(ctx context.Context, q string, args ...any) ([]domain.PostSummary, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.PostSummary, 0, 16)
	for rows.Next() {
		var p domain.PostSummary
		if err := scanSummary(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListPortfolio returns projects with featured ones first.
func (r *Repo) ListPortfolio(ctx context.Context, category string) ([]domain.PortfolioProject, error) {
	const q = `
select id, title, description, category, client_name, image_url, project_url,
       coalesce(technologies, '{}'), coalesce(featured, false), created_at
from portfolio_projects
where ($1 = '' or category = $1)
order by coalesce(featured, false) desc, created_at desc;
`
	rows, err := r.db.Query(ctx, q, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.PortfolioProject, 0, 16)
	for rows.Next() {
		var p domain.PortfolioProject
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.ClientName, &p.ImageURL,
			&p.ProjectURL, &p.Technologies, &p.Featured, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
