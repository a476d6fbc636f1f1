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
	"github.com/atoolsera/agency-backend/internal/careers"
	"github.com/atoolsera/agency-backend/internal/intake/domain"
	"github.com/atoolsera/agency-backend/internal/stepper"
)

type memStore struct {
	mu           sync.Mutex
	calls        int
	failWith     error
	submissions  []domain.ProjectSubmission
	applications []domain.JobApplication
	inquiries    []domain.ChatInquiry
}

func (m *memStore) record() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.failWith
}

func (m *memStore) CreateProjectSubmission(_ context.Context, s *domain.ProjectSubmission) error {
	if err := m.record(); err != nil {
		return err
	}
	s.ID = uuid.New().String()
	s.CreatedAt = time.Now()
	m.submissions = append(m.submissions, *s)
	return nil
}

func (m *memStore) CreateJobApplication(_ context.Context, a *domain.JobApplication) error {
	if err := m.record(); err != nil {
		return err
	}
	a.ID = uuid.New().String()
	m.applications = append(m.applications, *a)
	return nil
}

func (m *memStore) CreateChatInquiry(_ context.Context, i *domain.ChatInquiry) error {
	if err := m.record(); err != nil {
		return err
	}
	i.ID = uuid.New().String()
	m.inquiries = append(m.inquiries, *i)
	return nil
}

func (m *memStore) ListChatInquiries(_ context.Context, unreadOnly bool) ([]domain.ChatInquiry, error) {
	if err := m.record(); err != nil {
		return nil, err
	}
	out := []domain.ChatInquiry{}
	for _, i := range m.inquiries {
		if !unreadOnly || !i.IsRead {
			out = append(out, i)
		}
	}
	return out, nil
}

func (m *memStore) SetInquiryRead(_ context.Context, id string, read bool) (*domain.ChatInquiry, error) {
	if err := m.record(); err != nil {
		return nil, err
	}
	for idx := range m.inquiries {
		if m.inquiries[idx].ID == id {
			m.inquiries[idx].IsRead = read
			cp := m.inquiries[idx]
			return &cp, nil
		}
	}
	return nil, domain.ErrInquiryNotFound
}

type memBlobs struct {
	keys []string
	err  error
}

func (b *memBlobs) Bucket() string { return "job-resumes" }

func (b *memBlobs) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	if b.err != nil {
		return b.err
	}
	_, _ = io.ReadAll(body)
	b.keys = append(b.keys, key)
	return nil
}

func (b *memBlobs) PublicURL(key string) string { return "https://blobs.test/" + key }

var (
	admin     = authdomain.Actor{IdentityID: "u-admin", Role: authdomain.RoleAdmin}
	developer = authdomain.Actor{IdentityID: "u-dev", Role: authdomain.RoleDeveloper}
)

func newService(t *testing.T) (*IntakeService, *memStore, *memBlobs) {
	catalog, err := careers.Default()
	require.NoError(t, err)
	store := &memStore{}
	blobs := &memBlobs{}
	return NewIntakeService(store, catalog, blobs), store, blobs
}

func TestSubmitProjectIntake_ShopifyScenario(t *testing.T) {
	svc, store, _ := newService(t)

	sub, err := svc.SubmitProjectIntake(context.Background(), domain.ProjectIntakeForm{
		ProjectType: domain.ProjectTypeShopifyStore,
		Features:    []string{"Payment Integration"},
		Budget:      "5000-10000",
		Timeline:    "1-2months",
		Name:        "Jane Doe",
		Email:       "jane@x.com",
	})
	require.NoError(t, err)
	require.Len(t, store.submissions, 1)

	row := store.submissions[0]
	assert.Equal(t, sub.ID, row.ID)
	assert.Equal(t, domain.ProjectTypeShopifyStore, row.ProjectType)
	assert.Equal(t, []string{"Payment Integration"}, row.Features)
	require.NotNil(t, row.BudgetMin)
	require.NotNil(t, row.BudgetMax)
	assert.Equal(t, 5000, *row.BudgetMin)
	assert.Equal(t, 10000, *row.BudgetMax)
	assert.Nil(t, row.Phone)
	assert.Nil(t, row.Company)
	assert.Nil(t, row.CustomRequirements)
}

func TestSubmitProjectIntake_Errors(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()

	_, err := svc.SubmitProjectIntake(ctx, domain.ProjectIntakeForm{ProjectType: domain.ProjectTypeMaintenance})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, err, stepper.ErrStepIncomplete)
	assert.Equal(t, 0, store.calls)

	store.failWith = errors.New("connection reset")
	_, err = svc.SubmitProjectIntake(ctx, domain.ProjectIntakeForm{
		ProjectType: domain.ProjectTypeNewWebsite,
		Features:    []string{"Blog/CMS"},
		Budget:      "25000+",
		Timeline:    "flexible",
		Name:        "Jo",
		Email:       "jo@x.com",
	})
	assert.ErrorIs(t, err, domain.ErrSubmitFailed)
}

func TestSubmitJobApplication(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()

	app, err := svc.SubmitJobApplication(ctx, "2", domain.JobApplicationForm{Name: " Sam ", Email: "sam@x.com", Phone: " "})
	require.NoError(t, err)
	assert.Equal(t, "Backend Developer", app.JobTitle)
	assert.Equal(t, domain.JobTypeBackend, app.JobType)
	assert.Equal(t, "Sam", app.Name)
	assert.Nil(t, app.Phone)
	assert.Len(t, store.applications, 1)

	_, err = svc.SubmitJobApplication(ctx, "42", domain.JobApplicationForm{Name: "Sam", Email: "sam@x.com"})
	assert.ErrorIs(t, err, domain.ErrJobNotFound)

	_, err = svc.SubmitJobApplication(ctx, "1", domain.JobApplicationForm{Name: "Sam"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Len(t, store.applications, 1)
}

func TestSubmitChatInquiry_BlankNeverReachesStore(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()

	blanks := []domain.ChatInquiryForm{
		{Name: "", Email: "a@x.com", Message: "hi"},
		{Name: "A", Email: "   ", Message: "hi"},
		{Name: "A", Email: "a@x.com", Message: "\n"},
		{},
	}
	for _, f := range blanks {
		_, err := svc.SubmitChatInquiry(ctx, f)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
	assert.Equal(t, 0, store.calls)

	inq, err := svc.SubmitChatInquiry(ctx, domain.ChatInquiryForm{Name: " A ", Email: "a@x.com", Message: " hello "})
	require.NoError(t, err)
	assert.Equal(t, "hello", inq.Message)
	assert.False(t, inq.IsRead)
}

func TestChatInquiries_AdminOnly(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	inq, err := svc.SubmitChatInquiry(ctx, domain.ChatInquiryForm{Name: "A", Email: "a@x.com", Message: "hello"})
	require.NoError(t, err)

	_, err = svc.ListChatInquiries(ctx, authdomain.Anonymous(), false)
	assert.ErrorIs(t, err, authdomain.ErrUnauthenticated)
	_, err = svc.ListChatInquiries(ctx, developer, false)
	assert.ErrorIs(t, err, authdomain.ErrForbidden)
	_, err = svc.SetInquiryRead(ctx, developer, inq.ID, true)
	assert.ErrorIs(t, err, authdomain.ErrForbidden)

	updated, err := svc.SetInquiryRead(ctx, admin, inq.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsRead)

	unread, err := svc.ListChatInquiries(ctx, admin, true)
	require.NoError(t, err)
	assert.Empty(t, unread)

	_, err = svc.SetInquiryRead(ctx, admin, "not-a-uuid", true)
	assert.ErrorIs(t, err, domain.ErrInquiryNotFound)
	_, err = svc.SetInquiryRead(ctx, admin, uuid.New().String(), true)
	assert.ErrorIs(t, err, domain.ErrInquiryNotFound)
}

func TestUploadResume(t *testing.T) {
	svc, _, blobs := newService(t)
	ctx := context.Background()

	f, err := svc.UploadResume(ctx, "cv.pdf", "application/pdf", 3, strings.NewReader("pdf"))
	require.NoError(t, err)
	assert.Equal(t, "cv.pdf", f.Name)
	require.Len(t, blobs.keys, 1)
	assert.True(t, strings.HasSuffix(blobs.keys[0], ".pdf"))
	assert.Equal(t, "https://blobs.test/"+blobs.keys[0], f.URL)

	blobs.err = errors.New("bucket missing")
	_, err = svc.UploadResume(ctx, "cv.pdf", "application/pdf", 3, strings.NewReader("pdf"))
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
}
