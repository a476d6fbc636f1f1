package http

import (
	"context"

	"github.com/atoolsera/agency-backend/internal/assignments/domain"
	authdomain "github.com/atoolsera/agency-backend/internal/auth/domain"
	devdomain "github.com/atoolsera/agency-backend/internal/developers/domain"
)

type Service interface {
	ListAssignableDevelopers(ctx context.Context, actor authdomain.Actor) ([]devdomain.Profile, error)
	Assign(ctx context.Context, actor authdomain.Actor, developerID, projectID string, notes *string) (*domain.Assignment, error)
	SetDeveloperStatus(ctx context.Context, actor authdomain.Actor, developerID string, status devdomain.Status) error
	SetDeveloperAvailability(ctx context.Context, actor authdomain.Actor, developerID string, available bool) error
	UpdateAssignmentStatus(ctx context.Context, actor authdomain.Actor, assignmentID string, to domain.Status) (*domain.Assignment, error)
}

type Handler struct {
	svc Service
}

func New(svc Service) *Handler {
	return &Handler{svc: svc}
}

type assignRequest struct {
	DeveloperID string  `json:"developer_id" binding:"required"`
	ProjectID   string  `json:"project_submission_id" binding:"required"`
	Notes       *string `json:"notes"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

type availabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}
