package http

import (
	"context"

	assigndomain "github.com/atoolsera/agency-backend/internal/assignments/domain"
	authdomain "github.com/atoolsera/agency-backend/internal/auth/domain"
	"github.com/atoolsera/agency-backend/internal/dashboard/domain"
	devdomain "github.com/atoolsera/agency-backend/internal/developers/domain"
	intakedomain "github.com/atoolsera/agency-backend/internal/intake/domain"
)

type Service interface {
	ListProjectSubmissions(ctx context.Context, actor authdomain.Actor) ([]intakedomain.ProjectSubmission, error)
	ListJobApplications(ctx context.Context, actor authdomain.Actor) ([]intakedomain.JobApplication, error)
	ListAssignmentsForDeveloper(ctx context.Context, actor authdomain.Actor, developerID string) ([]assigndomain.Assignment, error)
	ListAllAssignments(ctx context.Context, actor authdomain.Actor) ([]assigndomain.Assignment, error)
	ListDevelopers(ctx context.Context, actor authdomain.Actor, f devdomain.ListFilter) ([]devdomain.Profile, error)
	Overview(ctx context.Context, actor authdomain.Actor) (*domain.Overview, error)
	MyDashboard(ctx context.Context, actor authdomain.Actor) (*domain.DeveloperDashboard, error)
}

type Handler struct {
	svc Service
}

func New(svc Service) *Handler {
	return &Handler{svc: svc}
}
