package http

import (
	"context"

	authdomain "github.com/atoolsera/agency-backend/internal/auth/domain"
	"github.com/atoolsera/agency-backend/internal/developers/domain"
	"github.com/atoolsera/agency-backend/internal/developers/service"
)

type Service interface {
	Options() domain.Options
	SubmitDeveloperOnboarding(ctx context.Context, actor authdomain.Actor, form domain.OnboardingForm) (*domain.OnboardingResult, error)
	UploadScreenshots(ctx context.Context, actor authdomain.Actor, files []service.FileUpload) ([]service.UploadResult, error)
	MyProfile(ctx context.Context, actor authdomain.Actor) (*domain.ProfileDetail, error)
}

type Handler struct {
	svc            Service
	uploadMaxBytes int64
}

func New(svc Service, uploadMaxBytes int64) *Handler {
	return &Handler{svc: svc, uploadMaxBytes: uploadMaxBytes}
}

// OnboardingRedirect is where developers without a profile are sent.
const OnboardingRedirect = "/developer/onboarding"
