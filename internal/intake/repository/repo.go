package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atoolsera/agency-backend/internal/intake/domain"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) CreateProjectSubmission(ctx context.Context, s *domain.ProjectSubmission) error {
	const q = `
insert into project_submissions
  (project_type, features, custom_requirements, budget_min, budget_max, timeline, name, email, phone, company)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
returning id, created_at;
`
	return r.db.QueryRow(ctx, q,
		s.ProjectType, s.Features, s.CustomRequirements, s.BudgetMin, s.BudgetMax,
		s.Timeline, s.Name, s.Email, s.Phone, s.Company,
	).Scan(&s.ID, &s.CreatedAt)
}

func (r *Repo) ListProjectSubmissions(ctx context.Context) ([]domain.ProjectSubmission, error) {
	const q = `
select id, project_type, features, custom_requirements, budget_min, budget_max,
       timeline, name, email, phone, company, created_at
from project_submissions
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ProjectSubmission, 0, 32)
	for rows.Next() {
		var s domain.ProjectSubmission
		if err := rows.Scan(&s.ID, &s.ProjectType, &s.Features, &s.CustomRequirements, &s.BudgetMin, &s.BudgetMax,
			&s.Timeline, &s.Name, &s.Email, &s.Phone, &s.Company, &s.CreatedAt); err != nil {
			return nil, err
		}
		if s.Features == nil {
			s.Features = []string{}
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) CountProjectSubmissions(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `select count(*) from project_submissions;`).Scan(&n)
	return n, err
}

func (r *Repo) CreateJobApplication(ctx context.Context, a *domain.JobApplication) error {
	const q = `
insert into job_applications
  (job_title, job_type, name, email, phone, portfolio_url, cover_letter, resume_url)
values ($1, $2, $3, $4, $5, $6, $7, $8)
returning id, created_at;
`
	return r.db.QueryRow(ctx, q,
		a.JobTitle, a.JobType, a.Name, a.Email, a.Phone, a.PortfolioURL, a.CoverLetter, a.ResumeURL,
	).Scan(&a.ID, &a.CreatedAt)
}

func (r *Repo) ListJobApplications(ctx context.Context) ([]domain.JobApplication, error) {
	const q = `
select id, job_title, job_type, name, email, phone, portfolio_url, cover_letter, resume_url, created_at
from job_applications
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.JobApplication, 0, 32)
	for rows.Next() {
		var a domain.JobApplication
		if err := rows.Scan(&a.ID, &a.JobTitle, &a.JobType, &a.Name, &a.Email, &a.Phone,
			&a.PortfolioURL, &a.CoverLetter, &a.ResumeURL, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repo) CreateChatInquiry(ctx context.Context, i *domain.ChatInquiry) error {
	const q = `
insert into chat_inquiries (name, email, message)
values ($1, $2, $3)
returning id, is_read, created_at;
`
	return r.db.QueryRow(ctx, q, i.Name, i.Email, i.Message).Scan(&i.ID, &i.IsRead, &i.CreatedAt)
}

func (r *Repo) ListChatInquiries(ctx context.Context, unreadOnly bool) ([]domain.ChatInquiry, error) {
	const q = `
select id, name, email, message, is_read, created_at
from chat_inquiries
where ($1::boolean = false or is_read = false)
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q, unreadOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ChatInquiry, 0, 32)
	for rows.Next() {
		var i domain.ChatInquiry
		if err := rows.Scan(&i.ID, &i.Name, &i.Email, &i.Message, &i.IsRead, &i.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

// SetInquiryRead updates the read flag, the only mutable inquiry column.
func (r *Repo) SetInquiryRead(ctx context.Context, id string, read bool) (*domain.ChatInquiry, error) {
	const q = `
update chat_inquiries
set is_read = $2
where id = $1::uuid
returning id, name, email, message, is_read, created_at;
`
	var i domain.ChatInquiry
	err := r.db.QueryRow(ctx, q, id, read).Scan(&i.ID, &i.Name, &i.Email, &i.Message, &i.IsRead, &i.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrInquiryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *Repo) CountUnreadInquiries(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `select count(*) from chat_inquiries where is_read = false;`).Scan(&n)
	return n, err
}
