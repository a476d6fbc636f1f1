package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atoolsera/agency-backend/internal/developers/domain"
	"github.com/atoolsera/agency-backend/internal/storage/postgres/pgtest"
)

func roleCount(t *testing.T, pool *pgxpool.Pool, userID string) int {
	t.Helper()
	var n int
	err := pool.QueryRow(context.Background(),
		`select count(*) from user_roles where user_id = $1::uuid and role = 'developer';`, userID).Scan(&n)
	require.NoError(t, err)
	return n
}

func newProfile(userID string) *domain.Profile {
	return &domain.Profile{
		UserID:          userID,
		Name:            "Jane Doe",
		Email:           "jane@x.com",
		Role:            "Backend Developer",
		ExperienceYears: 5,
		WeeklyHours:     40,
		// the insert must ignore both of these
		Status:      domain.StatusApproved,
		IsAvailable: true,
	}
}

func TestRepo_Onboard_StartsPendingAndUnavailable(t *testing.T) {
	pool := pgtest.Open(t)
	repo := NewRepo(pool)
	ctx := context.Background()
	user := pgtest.InsertUser(t, pool, "jane@x.com")

	res, err := repo.Onboard(ctx, newProfile(user),
		[]domain.Skill{{Name: "Go", YearsExperience: 4}, {Name: "SQL", YearsExperience: 1}},
		[]domain.Screenshot{{FileURL: "https://cdn.test/" + user + "/1.png", FileName: "1.png"}})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.True(t, res.RoleGranted)
	assert.Equal(t, 2, res.SkillsAdded)
	assert.Equal(t, 1, res.ScreenshotsAdded)

	p, err := repo.GetByUserID(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, res.ProfileID, p.ID)
	assert.Equal(t, domain.StatusPending, p.Status)
	assert.False(t, p.IsAvailable)
	assert.Equal(t, []domain.Skill{{Name: "Go", YearsExperience: 4}, {Name: "SQL", YearsExperience: 1}}, p.Skills)
	assert.Equal(t, 1, roleCount(t, pool, user))

	shots, err := repo.ListScreenshots(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, shots, 1)
}

func TestRepo_Onboard_ResumesPartialProfile(t *testing.T) {
	pool := pgtest.Open(t)
	repo := NewRepo(pool)
	ctx := context.Background()
	user := pgtest.InsertUser(t, pool, "jane@x.com")

	// an earlier client wrote only the profile row
	first, err := repo.Onboard(ctx, newProfile(user), nil, nil)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `delete from user_roles where user_id = $1::uuid;`, user)
	require.NoError(t, err)

	retry := newProfile(user)
	retry.Name = "Someone Else"
	res, err := repo.Onboard(ctx, retry,
		[]domain.Skill{{Name: "Go", YearsExperience: 2}},
		[]domain.Screenshot{{FileURL: "https://cdn.test/" + user + "/1.png", FileName: "1.png"}})
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, first.ProfileID, res.ProfileID)
	assert.True(t, res.RoleGranted)
	assert.Equal(t, 1, res.SkillsAdded)
	assert.Equal(t, 1, res.ScreenshotsAdded)

	p, err := repo.GetByUserID(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", p.Name, "existing profile is never overwritten")

	again, err := repo.Onboard(ctx, retry,
		[]domain.Skill{{Name: "Go", YearsExperience: 2}},
		[]domain.Screenshot{{FileURL: "https://cdn.test/" + user + "/1.png", FileName: "1.png"}})
	require.NoError(t, err)
	assert.False(t, again.Completed())
	assert.Equal(t, 1, roleCount(t, pool, user))
}

func TestRepo_UpdateStatus(t *testing.T) {
	pool := pgtest.Open(t)
	repo := NewRepo(pool)
	ctx := context.Background()

	approved := pgtest.InsertDeveloper(t, pool, pgtest.InsertUser(t, pool, "a@x.com"), "pending", false)
	rejected := pgtest.InsertDeveloper(t, pool, pgtest.InsertUser(t, pool, "r@x.com"), "pending", false)

	require.NoError(t, repo.UpdateStatus(ctx, approved, domain.StatusApproved))
	require.NoError(t, repo.UpdateStatus(ctx, rejected, domain.StatusRejected))

	t.Run("repeating the decision is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.UpdateStatus(ctx, approved, domain.StatusApproved))
	})

	t.Run("reviewed profiles are terminal", func(t *testing.T) {
		assert.ErrorIs(t, repo.UpdateStatus(ctx, approved, domain.StatusRejected), domain.ErrInvalidTransition)
		assert.ErrorIs(t, repo.UpdateStatus(ctx, rejected, domain.StatusApproved), domain.ErrInvalidTransition)
	})

	t.Run("unknown developer", func(t *testing.T) {
		assert.ErrorIs(t, repo.UpdateStatus(ctx, uuid.NewString(), domain.StatusApproved), domain.ErrDeveloperNotFound)
	})

	p, err := repo.GetByID(ctx, approved)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, p.Status)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCounts{Approved: 1, Rejected: 1}, counts)
}

func TestRepo_AvailabilityAndList(t *testing.T) {
	pool := pgtest.Open(t)
	repo := NewRepo(pool)
	ctx := context.Background()

	ready := pgtest.InsertDeveloper(t, pool, pgtest.InsertUser(t, pool, "a@x.com"), "approved", false)
	pgtest.InsertDeveloper(t, pool, pgtest.InsertUser(t, pool, "p@x.com"), "pending", true)

	require.NoError(t, repo.SetAvailability(ctx, ready, true))
	assert.ErrorIs(t, repo.SetAvailability(ctx, uuid.NewString(), true), domain.ErrDeveloperNotFound)

	assignable, err := repo.List(ctx, domain.ListFilter{Status: domain.StatusApproved, AvailableOnly: true})
	require.NoError(t, err)
	require.Len(t, assignable, 1)
	assert.Equal(t, ready, assignable[0].ID)
	assert.True(t, assignable[0].Assignable())

	all, err := repo.List(ctx, domain.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRepo_ReconcileRoleGrants(t *testing.T) {
	pool := pgtest.Open(t)
	repo := NewRepo(pool)
	ctx := context.Background()

	user := pgtest.InsertUser(t, pool, "jane@x.com")
	pgtest.InsertDeveloper(t, pool, user, "pending", false)

	n, err := repo.ReconcileRoleGrants(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, roleCount(t, pool, user))

	n, err = repo.ReconcileRoleGrants(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
