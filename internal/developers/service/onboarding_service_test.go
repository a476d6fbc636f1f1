package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdomain "github.com/atoolsera/agency-backend/internal/auth/domain"
	"github.com/atoolsera/agency-backend/internal/developers/domain"
)

// memStore mimics the idempotent inserts of the Postgres repository. Profiles
// are kept exactly as the service hands them over.
type memStore struct {
	mu          sync.Mutex
	profiles    map[string]*domain.Profile // by user id
	roles       map[string]bool
	skills      map[string]map[string]int
	screenshots map[string]map[string]string
	failOnce    error
}

func newMemStore() *memStore {
	return &memStore{
		profiles:    map[string]*domain.Profile{},
		roles:       map[string]bool{},
		skills:      map[string]map[string]int{},
		screenshots: map[string]map[string]string{},
	}
}

func (m *memStore) Onboard(_ context.Context, p *domain.Profile, skills []domain.Skill, shots []domain.Screenshot) (*domain.OnboardingResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOnce != nil {
		err := m.failOnce
		m.failOnce = nil
		return nil, err
	}

	res := &domain.OnboardingResult{}
	existing, ok := m.profiles[p.UserID]
	if !ok {
		cp := *p
		cp.ID = uuid.New().String()
		cp.CreatedAt = time.Now()
		m.profiles[p.UserID] = &cp
		existing = &cp
		res.Created = true
	}
	res.ProfileID = existing.ID

	if !m.roles[p.UserID] {
		m.roles[p.UserID] = true
		res.RoleGranted = true
	}

	if m.skills[existing.ID] == nil {
		m.skills[existing.ID] = map[string]int{}
	}
	for _, s := range skills {
		if _, ok := m.skills[existing.ID][s.Name]; !ok {
			m.skills[existing.ID][s.Name] = s.YearsExperience
			res.SkillsAdded++
		}
	}

	if m.screenshots[existing.ID] == nil {
		m.screenshots[existing.ID] = map[string]string{}
	}
	for _, s := range shots {
		if _, ok := m.screenshots[existing.ID][s.FileURL]; !ok {
			m.screenshots[existing.ID][s.FileURL] = s.FileName
			res.ScreenshotsAdded++
		}
	}
	return res, nil
}

func (m *memStore) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	cp := *p
	for name, years := range m.skills[p.ID] {
		cp.Skills = append(cp.Skills, domain.Skill{Name: name, YearsExperience: years})
	}
	return &cp, nil
}

func (m *memStore) ListScreenshots(_ context.Context, developerID string) ([]domain.Screenshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Screenshot{}
	for url, name := range m.screenshots[developerID] {
		out = append(out, domain.Screenshot{FileURL: url, FileName: name})
	}
	return out, nil
}

type memBlobs struct {
	keys   []string
	failOn string
}

func (b *memBlobs) Bucket() string { return "developer-portfolio" }

func (b *memBlobs) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	data, _ := io.ReadAll(body)
	if b.failOn != "" && string(data) == b.failOn {
		return errors.New("storage unavailable")
	}
	b.keys = append(b.keys, key)
	return nil
}

func (b *memBlobs) PublicURL(key string) string {
	return "https://storage.test/developer-portfolio/" + key
}

var jane = authdomain.Actor{IdentityID: "5b0c3c8e-8a43-4c55-9d55-1c7f1f0e7a11", Email: "jane@x.com"}

func validForm() domain.OnboardingForm {
	f := domain.NewOnboardingForm()
	f.Name = " Jane Doe "
	f.Role = "Backend Developer"
	f.ExperienceYears = 5
	f.Skills = []domain.Skill{{Name: "Go", YearsExperience: 4}, {Name: "PostgreSQL"}}
	f.Screenshots = []domain.Screenshot{{FileURL: "https://storage.test/developer-portfolio/" + jane.IdentityID + "/1.png", FileName: "1.png"}}
	return f
}

func TestSubmitDeveloperOnboarding_ForcesReviewState(t *testing.T) {
	store := newMemStore()
	svc := NewOnboardingService(store, &memBlobs{})

	form := validForm()
	yes := true
	form.Status = domain.StatusApproved
	form.IsAvailable = &yes

	res, err := svc.SubmitDeveloperOnboarding(context.Background(), jane, form)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.True(t, res.RoleGranted)
	assert.Equal(t, 2, res.SkillsAdded)
	assert.Equal(t, 1, res.ScreenshotsAdded)

	p := store.profiles[jane.IdentityID]
	assert.Equal(t, domain.StatusPending, p.Status)
	assert.False(t, p.IsAvailable)
	assert.Equal(t, "Jane Doe", p.Name)
	assert.Equal(t, "jane@x.com", p.Email)
	assert.Equal(t, 40, p.WeeklyHours)
	assert.Equal(t, 1, store.skills[p.ID]["PostgreSQL"])
}

func TestSubmitDeveloperOnboarding_KeepsOnlyOwnScreenshots(t *testing.T) {
	store := newMemStore()
	svc := NewOnboardingService(store, &memBlobs{})

	own := "https://storage.test/developer-portfolio/" + jane.IdentityID + "/1700000000000-ab12.png"
	form := validForm()
	form.Screenshots = []domain.Screenshot{
		{FileURL: own, FileName: "mine.png"},
		{FileURL: "https://storage.test/developer-portfolio/0f5e0c77-0000-4000-8000-000000000000/1.png", FileName: "theirs.png"},
		{FileURL: "https://evil.example.com/tracker.gif", FileName: "tracker.gif"},
		{FileURL: "https://storage.test/developer-portfolio/" + jane.IdentityID + "/../other/1.png", FileName: "escape.png"},
	}

	res, err := svc.SubmitDeveloperOnboarding(context.Background(), jane, form)
	require.NoError(t, err)
	assert.Equal(t, 1, res.ScreenshotsAdded)

	p := store.profiles[jane.IdentityID]
	assert.Equal(t, map[string]string{own: "mine.png"}, store.screenshots[p.ID])
}

func TestSubmitDeveloperOnboarding_Resumable(t *testing.T) {
	store := newMemStore()
	svc := NewOnboardingService(store, &memBlobs{})
	ctx := context.Background()

	// first attempt only got the profile in
	partial := validForm()
	partial.Skills = nil
	partial.Screenshots = nil
	_, err := store.Onboard(ctx, partial.ToProfile(jane.IdentityID, jane.Email), nil, nil)
	require.NoError(t, err)
	delete(store.roles, jane.IdentityID)

	res, err := svc.SubmitDeveloperOnboarding(ctx, jane, validForm())
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.True(t, res.RoleGranted)
	assert.Equal(t, 2, res.SkillsAdded)
	assert.Equal(t, 1, res.ScreenshotsAdded)

	_, err = svc.SubmitDeveloperOnboarding(ctx, jane, validForm())
	assert.ErrorIs(t, err, domain.ErrProfileAlreadyExists)
}

func TestSubmitDeveloperOnboarding_Errors(t *testing.T) {
	store := newMemStore()
	svc := NewOnboardingService(store, &memBlobs{})
	ctx := context.Background()

	_, err := svc.SubmitDeveloperOnboarding(ctx, authdomain.Anonymous(), validForm())
	assert.ErrorIs(t, err, authdomain.ErrUnauthenticated)

	noSkills := validForm()
	noSkills.Skills = []domain.Skill{{Name: "  "}}
	_, err = svc.SubmitDeveloperOnboarding(ctx, jane, noSkills)
	assert.ErrorIs(t, err, domain.ErrValidation)

	store.failOnce = errors.New("tx aborted")
	_, err = svc.SubmitDeveloperOnboarding(ctx, jane, validForm())
	assert.ErrorIs(t, err, domain.ErrSubmitFailed)
	assert.Empty(t, store.profiles)

	// retry after the failure succeeds with the same form state
	res, err := svc.SubmitDeveloperOnboarding(ctx, jane, validForm())
	require.NoError(t, err)
	assert.True(t, res.Created)
}

func TestUploadScreenshots_PerFileFailures(t *testing.T) {
	blobs := &memBlobs{failOn: "bad"}
	svc := NewOnboardingService(newMemStore(), blobs)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }

	results, err := svc.UploadScreenshots(context.Background(), jane, []FileUpload{
		{Name: "a.png", Body: strings.NewReader("ok-1")},
		{Name: "b.png", Body: strings.NewReader("bad")},
		{Name: "c.jpg", Body: strings.NewReader("ok-2")},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Empty(t, results[0].Error)
	assert.Equal(t, "Failed to upload b.png", results[1].Error)
	assert.Empty(t, results[1].URL)
	assert.Empty(t, results[2].Error)

	require.Len(t, blobs.keys, 2)
	for _, k := range blobs.keys {
		assert.True(t, strings.HasPrefix(k, jane.IdentityID+"/1700000000000-"), k)
	}
	assert.Equal(t, "https://storage.test/developer-portfolio/"+blobs.keys[0], results[0].URL)

	_, err = svc.UploadScreenshots(context.Background(), authdomain.Anonymous(), nil)
	assert.ErrorIs(t, err, authdomain.ErrUnauthenticated)
}

func TestMyProfile(t *testing.T) {
	store := newMemStore()
	svc := NewOnboardingService(store, &memBlobs{})
	ctx := context.Background()

	_, err := svc.MyProfile(ctx, jane)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	_, err = svc.SubmitDeveloperOnboarding(ctx, jane, validForm())
	require.NoError(t, err)

	detail, err := svc.MyProfile(ctx, jane)
	require.NoError(t, err)
	assert.Len(t, detail.Skills, 2)
	assert.Len(t, detail.Screenshots, 1)
}
