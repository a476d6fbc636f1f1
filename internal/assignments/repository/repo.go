package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atoolsera/agency-backend/internal/assignments/domain"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Create inserts a new assignment in the assigned state.
func (r *Repo) Create(ctx context.Context, developerID, projectID string, notes *string) (*domain.Assignment, error) {
	const q = `
insert into project_assignments (developer_id, project_submission_id, status, notes)
values ($1::uuid, $2::uuid, 'assigned', $3)
returning id, developer_id, project_submission_id, status, notes, assigned_at, updated_at;
`
	var a domain.Assignment
	err := r.db.QueryRow(ctx, q, developerID, projectID, notes).Scan(
		&a.ID, &a.DeveloperID, &a.ProjectSubmissionID, &a.Status, &a.Notes, &a.AssignedAt, &a.UpdatedAt)
	if err == nil {
		return &a, nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return nil, domain.ErrDuplicateAssignment
		case foreignKeyViolation:
			return nil, domain.ErrProjectNotFound
		}
	}
	return nil, err
}

func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Assignment, error) {
	const q = `
select id, developer_id, project_submission_id, status, notes, assigned_at, updated_at
from project_assignments
where id = $1::uuid;
`
	var a domain.Assignment
	err := r.db.QueryRow(ctx, q, id).Scan(
		&a.ID, &a.DeveloperID, &a.ProjectSubmissionID, &a.Status, &a.Notes, &a.AssignedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAssignmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

const joinedSelect = `
select a.id, a.developer_id, a.project_submission_id, a.status, a.notes, a.assigned_at, a.updated_at,
       d.name, d.email, d.role,
       p.project_type, p.name, p.email, p.company, p.timeline, p.budget_min, p.budget_max, p.created_at
from project_assignments a
join developers d on d.id = a.developer_id
join project_submissions p on p.id = a.project_submission_id
`

// ListForDeveloper returns a developer's assignments, newest first.
func (r *Repo) ListForDeveloper(ctx context.Context, developerID string) ([]domain.Assignment, error) {
	return r.list(ctx, joinedSelect+`where a.developer_id = $1::uuid
order by a.assigned_at desc;`, developerID)
}

// ListAll returns every assignment with developer and project summaries.
func (r *Repo) ListAll(ctx context.Context) ([]domain.Assignment, error) {
	return r.list(ctx, joinedSelect+`order by a.assigned_at desc;`)
}

func (r *Repo) list(ctx context.Context, q string, args ...any) ([]domain.Assignment, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Assignment, 0, 16)
	for rows.Next() {
		var (
			a   domain.Assignment
			dev domain.DeveloperSummary
			prj domain.ProjectSummary
		)
		if err := rows.Scan(
			&a.ID, &a.DeveloperID, &a.ProjectSubmissionID, &a.Status, &a.Notes, &a.AssignedAt, &a.UpdatedAt,
			&dev.Name, &dev.Email, &dev.Role,
			&prj.ProjectType, &prj.Name, &prj.Email, &prj.Company, &prj.Timeline, &prj.BudgetMin, &prj.BudgetMax, &prj.CreatedAt,
		); err != nil {
			return nil, err
		}
		dev.ID = a.DeveloperID
		prj.ID = a.ProjectSubmissionID
		a.Developer = &dev
		a.Project = &prj
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateStatus moves an assignment from one status to another. The update
// only applies while the row is still in from; a concurrent change yields
// ErrInvalidTransition.
func (r *Repo) UpdateStatus(ctx context.Context, id string, from, to domain.Status) (*domain.Assignment, error) {
	const q = `
update project_assignments
set status = $3, updated_at = now()
where id = $1::uuid and status = $2
returning id, developer_id, project_submission_id, status, notes, assigned_at, updated_at;
`
	var a domain.Assignment
	err := r.db.QueryRow(ctx, q, id, from, to).Scan(
		&a.ID, &a.DeveloperID, &a.ProjectSubmissionID, &a.Status, &a.Notes, &a.AssignedAt, &a.UpdatedAt)
	if err == nil {
		return &a, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: no longer %s", domain.ErrInvalidTransition, from)
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `select count(*) from project_assignments;`).Scan(&n)
	return n, err
}
