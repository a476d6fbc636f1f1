package http

import (
	"context"

	"github.com/atoolsera/agency-backend/internal/auth/domain"
)

// Service is the part of service.AuthService the handlers need.
type Service interface {
	SignUp(ctx context.Context, email, password string) (*domain.SignedSession, error)
	SignIn(ctx context.Context, email, password string) (*domain.SignedSession, error)
	SignOut(ctx context.Context, tokenStr string) error
	CurrentSession(ctx context.Context, tokenStr string) (*domain.Session, domain.Actor, error)
}

type Handler struct {
	authService Service
}

func New(authService Service) *Handler {
	return &Handler{authService: authService}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
