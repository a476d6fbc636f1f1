package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	authdomain "github.com/atoolsera/agency-backend/internal/auth/domain"
	"github.com/atoolsera/agency-backend/internal/careers"
	"github.com/atoolsera/agency-backend/internal/intake/domain"
	"github.com/atoolsera/agency-backend/internal/logging"
	"github.com/atoolsera/agency-backend/internal/metrics"
	"github.com/atoolsera/agency-backend/internal/storage/blob"
)

type Store interface {
	CreateProjectSubmission(ctx context.Context, s *domain.ProjectSubmission) error
	CreateJobApplication(ctx context.Context, a *domain.JobApplication) error
	CreateChatInquiry(ctx context.Context, i *domain.ChatInquiry) error
	ListChatInquiries(ctx context.Context, unreadOnly bool) ([]domain.ChatInquiry, error)
	SetInquiryRead(ctx context.Context, id string, read bool) (*domain.ChatInquiry, error)
}

type JobCatalog interface {
	Find(id string) (careers.Job, bool)
}

type BlobStore interface {
	Bucket() string
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PublicURL(key string) string
}

// UploadedFile is a stored blob reference.
type UploadedFile struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

type IntakeService struct {
	store   Store
	jobs    JobCatalog
	resumes BlobStore
	now     func() time.Time
}

func NewIntakeService(store Store, jobs JobCatalog, resumes BlobStore) *IntakeService {
	return &IntakeService{store: store, jobs: jobs, resumes: resumes, now: time.Now}
}

// SubmitProjectIntake stores a completed project intake form.
func (s *IntakeService) SubmitProjectIntake(ctx context.Context, form domain.ProjectIntakeForm) (*domain.ProjectSubmission, error) {
	if err := domain.ProjectIntakeFlow.Validate(form); err != nil {
		metrics.RecordSubmission("project_intake", metrics.OutcomeInvalid)
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	sub := form.ToSubmission()
	if err := s.store.CreateProjectSubmission(ctx, sub); err != nil {
		logging.FromContext(ctx).LogError("intake.submit_project", err)
		metrics.RecordSubmission("project_intake", metrics.OutcomeError)
		return nil, fmt.Errorf("%w: %w", domain.ErrSubmitFailed, err)
	}

	logging.FromContext(ctx).LogInfof("intake.submit_project", "submission_id=%s project_type=%s", sub.ID, sub.ProjectType)
	metrics.RecordSubmission("project_intake", metrics.OutcomeOK)
	return sub, nil
}

// SubmitJobApplication stores an application tagged with the catalog job's
// title and type.
func (s *IntakeService) SubmitJobApplication(ctx context.Context, jobID string, form domain.JobApplicationForm) (*domain.JobApplication, error) {
	job, ok := s.jobs.Find(jobID)
	if !ok {
		return nil, domain.ErrJobNotFound
	}

	if err := domain.JobApplicationFlow.Validate(form); err != nil {
		metrics.RecordSubmission("job_application", metrics.OutcomeInvalid)
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	app := form.ToApplication(job.Title, job.Type)
	if err := s.store.CreateJobApplication(ctx, app); err != nil {
		logging.FromContext(ctx).LogError("intake.submit_application", err)
		metrics.RecordSubmission("job_application", metrics.OutcomeError)
		return nil, fmt.Errorf("%w: %w", domain.ErrSubmitFailed, err)
	}

	metrics.RecordSubmission("job_application", metrics.OutcomeOK)
	return app, nil
}

// SubmitChatInquiry rejects blank fields before touching the store.
func (s *IntakeService) SubmitChatInquiry(ctx context.Context, form domain.ChatInquiryForm) (*domain.ChatInquiry, error) {
	if err := form.Validate(); err != nil {
		metrics.RecordSubmission("chat_inquiry", metrics.OutcomeInvalid)
		return nil, err
	}

	inq := form.ToInquiry()
	if err := s.store.CreateChatInquiry(ctx, inq); err != nil {
		logging.FromContext(ctx).LogError("intake.submit_chat", err)
		metrics.RecordSubmission("chat_inquiry", metrics.OutcomeError)
		return nil, fmt.Errorf("%w: %w", domain.ErrSubmitFailed, err)
	}

	metrics.RecordSubmission("chat_inquiry", metrics.OutcomeOK)
	return inq, nil
}

// UploadResume stores an applicant's resume and returns its public URL.
func (s *IntakeService) UploadResume(ctx context.Context, filename, contentType string, size int64, body io.Reader) (*UploadedFile, error) {
	key := blob.ObjectKey("", filename, s.now())

	err := s.resumes.Put(ctx, key, body, size, contentType)
	metrics.RecordUpload(s.resumes.Bucket(), err)
	if err != nil {
		logging.FromContext(ctx).LogError("intake.upload_resume", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrUploadFailed, err)
	}

	return &UploadedFile{URL: s.resumes.PublicURL(key), Name: filename}, nil
}

func (s *IntakeService) ListChatInquiries(ctx context.Context, actor authdomain.Actor, unreadOnly bool) ([]domain.ChatInquiry, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.store.ListChatInquiries(ctx, unreadOnly)
}

func (s *IntakeService) SetInquiryRead(ctx context.Context, actor authdomain.Actor, id string, read bool) (*domain.ChatInquiry, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInquiryNotFound
	}

	inq, err := s.store.SetInquiryRead(ctx, id, read)
	if errors.Is(err, domain.ErrInquiryNotFound) {
		return nil, err
	}
	if err != nil {
		logging.FromContext(ctx).LogError("intake.set_inquiry_read", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrUpdateFailed, err)
	}
	return inq, nil
}

func requireAdmin(actor authdomain.Actor) error {
	if !actor.Authenticated() {
		return authdomain.ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return authdomain.ErrForbidden
	}
	return nil
}
