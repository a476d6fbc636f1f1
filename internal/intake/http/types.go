package http

import (
	"context"
	"io"

	authdomain "github.com/atoolsera/agency-backend/internal/auth/domain"
	"github.com/atoolsera/agency-backend/internal/careers"
	"github.com/atoolsera/agency-backend/internal/intake/domain"
	"github.com/atoolsera/agency-backend/internal/intake/service"
)

type Service interface {
	SubmitProjectIntake(ctx context.Context, form domain.ProjectIntakeForm) (*domain.ProjectSubmission, error)
	SubmitJobApplication(ctx context.Context, jobID string, form domain.JobApplicationForm) (*domain.JobApplication, error)
	SubmitChatInquiry(ctx context.Context, form domain.ChatInquiryForm) (*domain.ChatInquiry, error)
	UploadResume(ctx context.Context, filename, contentType string, size int64, body io.Reader) (*service.UploadedFile, error)
	ListChatInquiries(ctx context.Context, actor authdomain.Actor, unreadOnly bool) ([]domain.ChatInquiry, error)
	SetInquiryRead(ctx context.Context, actor authdomain.Actor, id string, read bool) (*domain.ChatInquiry, error)
}

type Catalog interface {
	List(jobType domain.JobType) []careers.Job
	Find(id string) (careers.Job, bool)
}

type Handler struct {
	svc            Service
	catalog        Catalog
	uploadMaxBytes int64
}

func New(svc Service, catalog Catalog, uploadMaxBytes int64) *Handler {
	return &Handler{svc: svc, catalog: catalog, uploadMaxBytes: uploadMaxBytes}
}

type setReadRequest struct {
	IsRead *bool `json:"is_read" binding:"required"`
}
