package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atoolsera/agency-backend/internal/developers/domain"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const profileColumns = `
id, user_id, name, email, role, experience_years, location, github_url, portfolio_url,
weekly_hours, preferred_project_types, status, coalesce(is_available, false), created_at, updated_at`

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	var weekly *int
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Email, &p.Role, &p.ExperienceYears,
		&p.Location, &p.GithubURL, &p.PortfolioURL, &weekly, &p.PreferredProjectTypes,
		&p.Status, &p.IsAvailable, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if weekly != nil {
		p.WeeklyHours = *weekly
	}
	if p.PreferredProjectTypes == nil {
		p.PreferredProjectTypes = []string{}
	}
	return &p, nil
}

// Onboard writes the profile, the developer role grant, skills and
// screenshots in one transaction. Every insert is idempotent, so repeating a
// submission only fills in what is missing; an existing profile row is never
// overwritten.
func (r *Repo) Onboard(ctx context.Context, p *domain.Profile, skills []domain.Skill, shots []domain.Screenshot) (*domain.OnboardingResult, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res := &domain.OnboardingResult{}

	const insertProfile = `
insert into developers
  (user_id, name, email, role, experience_years, location, github_url, portfolio_url,
   weekly_hours, preferred_project_types, status, is_available)
values ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'pending', false)
on conflict (user_id) do nothing
returning id;
`
	err = tx.QueryRow(ctx, insertProfile,
		p.UserID, p.Name, p.Email, p.Role, p.ExperienceYears, p.Location, p.GithubURL,
		p.PortfolioURL, p.WeeklyHours, p.PreferredProjectTypes,
	).Scan(&res.ProfileID)
	switch {
	case err == nil:
		res.Created = true
	case errors.Is(err, pgx.ErrNoRows):
		if err := tx.QueryRow(ctx, `select id from developers where user_id = $1::uuid;`, p.UserID).Scan(&res.ProfileID); err != nil {
			return nil, fmt.Errorf("load existing profile: %w", err)
		}
	default:
		return nil, fmt.Errorf("insert profile: %w", err)
	}

	ct, err := tx.Exec(ctx, `
insert into user_roles (user_id, role)
values ($1::uuid, 'developer')
on conflict (user_id, role) do nothing;
`, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("grant developer role: %w", err)
	}
	res.RoleGranted = ct.RowsAffected() > 0

	for _, s := range skills {
		ct, err := tx.Exec(ctx, `
insert into developer_skills (developer_id, skill_name, years_experience)
values ($1, $2, $3)
on conflict (developer_id, skill_name) do nothing;
`, res.ProfileID, s.Name, s.YearsExperience)
		if err != nil {
			return nil, fmt.Errorf("insert skill %q: %w", s.Name, err)
		}
		res.SkillsAdded += int(ct.RowsAffected())
	}

	for _, s := range shots {
		ct, err := tx.Exec(ctx, `
insert into developer_screenshots (developer_id, file_url, file_name)
values ($1, $2, $3)
on conflict (developer_id, file_url) do nothing;
`, res.ProfileID, s.FileURL, s.FileName)
		if err != nil {
			return nil, fmt.Errorf("insert screenshot: %w", err)
		}
		res.ScreenshotsAdded += int(ct.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *Repo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx, `select `+profileColumns+` from developers where user_id = $1::uuid;`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, r.attachSkills(ctx, []*domain.Profile{p})
}

func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx, `select `+profileColumns+` from developers where id = $1::uuid;`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrDeveloperNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List returns developers newest first, with their skills.
func (r *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.Profile, error) {
	q := `select ` + profileColumns + `
from developers
where ($1 = '' or status::text = $1)
  and ($2::boolean = false or coalesce(is_available, false) = true)
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q, string(f.Status), f.AvailableOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ptrs := make([]*domain.Profile, 0, 16)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		ptrs = append(ptrs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachSkills(ctx, ptrs); err != nil {
		return nil, err
	}

	out := make([]domain.Profile, len(ptrs))
	for i, p := range ptrs {
		out[i] = *p
	}
	return out, nil
}

func (r *Repo) attachSkills(ctx context.Context, profiles []*domain.Profile) error {
	if len(profiles) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Profile, len(profiles))
	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		p.Skills = []domain.Skill{}
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	rows, err := r.db.Query(ctx, `
select developer_id, skill_name, years_experience
from developer_skills
where developer_id = any($1::uuid[])
order by skill_name;
`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var devID string
		var s domain.Skill
		if err := rows.Scan(&devID, &s.Name, &s.YearsExperience); err != nil {
			return err
		}
		if p, ok := byID[devID]; ok {
			p.Skills = append(p.Skills, s)
		}
	}
	return rows.Err()
}

func (r *Repo) ListScreenshots(ctx context.Context, developerID string) ([]domain.Screenshot, error) {
	rows, err := r.db.Query(ctx, `
select id, file_url, file_name, created_at
from developer_screenshots
where developer_id = $1::uuid
order by created_at;
`, developerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Screenshot, 0, 8)
	for rows.Next() {
		var s domain.Screenshot
		if err := rows.Scan(&s.ID, &s.FileURL, &s.FileName, &s.Created); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// UpdateStatus records a review decision. Only pending developers can be
// reviewed; repeating the current decision is a no-op.
func (r *Repo) UpdateStatus(ctx context.Context, id string, to domain.Status) error {
	ct, err := r.db.Exec(ctx, `
update developers
set status = $2, updated_at = now()
where id = $1::uuid and status = 'pending';
`, id, to)
	if err != nil {
		return err
	}
	if ct.RowsAffected() > 0 {
		return nil
	}

	var current domain.Status
	err = r.db.QueryRow(ctx, `select status from developers where id = $1::uuid;`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrDeveloperNotFound
	}
	if err != nil {
		return err
	}
	if current == to {
		return nil
	}
	return domain.ErrInvalidTransition
}

func (r *Repo) SetAvailability(ctx context.Context, id string, available bool) error {
	ct, err := r.db.Exec(ctx, `
update developers
set is_available = $2, updated_at = now()
where id = $1::uuid;
`, id, available)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrDeveloperNotFound
	}
	return nil
}

// ReconcileRoleGrants grants the developer role to every profile owner that
// lacks it and returns how many grants were written.
func (r *Repo) ReconcileRoleGrants(ctx context.Context) (int, error) {
	ct, err := r.db.Exec(ctx, `
insert into user_roles (user_id, role)
select d.user_id, 'developer'
from developers d
where not exists (
  select 1 from user_roles ur where ur.user_id = d.user_id and ur.role = 'developer'
)
on conflict (user_id, role) do nothing;
`)
	if err != nil {
		return 0, err
	}
	return int(ct.RowsAffected()), nil
}

func (r *Repo) CountByStatus(ctx context.Context) (domain.StatusCounts, error) {
	var c domain.StatusCounts
	err := r.db.QueryRow(ctx, `
select
  count(*) filter (where status = 'pending'),
  count(*) filter (where status = 'approved'),
  count(*) filter (where status = 'rejected'),
  count(*) filter (where status = 'approved' and coalesce(is_available, false))
from developers;
`).Scan(&c.Pending, &c.Approved, &c.Rejected, &c.Available)
	return c, err
}
