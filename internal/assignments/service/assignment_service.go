package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/atoolsera/agency-backend/internal/assignments/domain"
	authdomain "github.com/atoolsera/agency-backend/internal/auth/domain"
	devdomain "github.com/atoolsera/agency-backend/internal/developers/domain"
	"github.com/atoolsera/agency-backend/internal/logging"
	"github.com/atoolsera/agency-backend/internal/metrics"
)

type AssignmentStore interface {
	Create(ctx context.Context, developerID, projectID string, notes *string) (*domain.Assignment, error)
	GetByID(ctx context.Context, id string) (*domain.Assignment, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.Status) (*domain.Assignment, error)
}

type DeveloperStore interface {
	GetByID(ctx context.Context, id string) (*devdomain.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*devdomain.Profile, error)
	List(ctx context.Context, f devdomain.ListFilter) ([]devdomain.Profile, error)
	UpdateStatus(ctx context.Context, id string, to devdomain.Status) error
	SetAvailability(ctx context.Context, id string, available bool) error
}

type AssignmentService struct {
	assignments AssignmentStore
	developers  DeveloperStore
}

func NewAssignmentService(assignments AssignmentStore, developers DeveloperStore) *AssignmentService {
	return &AssignmentService{assignments: assignments, developers: developers}
}

// ListAssignableDevelopers returns approved developers who are available.
func (s *AssignmentService) ListAssignableDevelopers(ctx context.Context, actor authdomain.Actor) ([]devdomain.Profile, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	profiles, err := s.developers.List(ctx, devdomain.ListFilter{Status: devdomain.StatusApproved, AvailableOnly: true})
	if err != nil {
		return nil, err
	}

	out := profiles[:0]
	for _, p := range profiles {
		if p.Assignable() {
			out = append(out, p)
		}
	}
	return out, nil
}

// Assign links a developer to a project submission. The developer is read
// again at call time and must be approved and available.
func (s *AssignmentService) Assign(ctx context.Context, actor authdomain.Actor, developerID, projectID string, notes *string) (*domain.Assignment, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if !isUUID(developerID) {
		metrics.RecordAssignment(metrics.OutcomeInvalid)
		return nil, devdomain.ErrDeveloperNotFound
	}
	if !isUUID(projectID) {
		metrics.RecordAssignment(metrics.OutcomeInvalid)
		return nil, domain.ErrProjectNotFound
	}

	log := logging.FromContext(ctx)

	dev, err := s.developers.GetByID(ctx, developerID)
	if err != nil {
		if errors.Is(err, devdomain.ErrDeveloperNotFound) {
			metrics.RecordAssignment(metrics.OutcomeInvalid)
			return nil, err
		}
		log.LogError("assignments.load_developer", err)
		metrics.RecordAssignment(metrics.OutcomeError)
		return nil, fmt.Errorf("%w: %w", domain.ErrAssignFailed, err)
	}
	if !dev.Assignable() {
		metrics.RecordAssignment(metrics.OutcomeInvalid)
		return nil, domain.ErrDeveloperNotAssignable
	}

	a, err := s.assignments.Create(ctx, developerID, projectID, notes)
	switch {
	case err == nil:
		metrics.RecordAssignment(metrics.OutcomeOK)
		return a, nil
	case errors.Is(err, domain.ErrDuplicateAssignment):
		metrics.RecordAssignment(metrics.OutcomeConflict)
		return nil, err
	case errors.Is(err, domain.ErrProjectNotFound):
		metrics.RecordAssignment(metrics.OutcomeInvalid)
		return nil, err
	default:
		log.LogError("assignments.create", err)
		metrics.RecordAssignment(metrics.OutcomeError)
		return nil, fmt.Errorf("%w: %w", domain.ErrAssignFailed, err)
	}
}

// SetDeveloperStatus records an admin review decision.
func (s *AssignmentService) SetDeveloperStatus(ctx context.Context, actor authdomain.Actor, developerID string, status devdomain.Status) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if !status.Reviewable() {
		return devdomain.ErrInvalidStatus
	}
	if !isUUID(developerID) {
		return devdomain.ErrDeveloperNotFound
	}

	err := s.developers.UpdateStatus(ctx, developerID, status)
	switch {
	case err == nil:
		logging.FromContext(ctx).LogInfof("developers.review", "developer=%s status=%s by=%s", developerID, status, actor.IdentityID)
		return nil
	case errors.Is(err, devdomain.ErrDeveloperNotFound), errors.Is(err, devdomain.ErrInvalidTransition):
		return err
	default:
		logging.FromContext(ctx).LogError("developers.review", err)
		return fmt.Errorf("%w: %w", devdomain.ErrUpdateFailed, err)
	}
}

func (s *AssignmentService) SetDeveloperAvailability(ctx context.Context, actor authdomain.Actor, developerID string, available bool) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if !isUUID(developerID) {
		return devdomain.ErrDeveloperNotFound
	}

	err := s.developers.SetAvailability(ctx, developerID, available)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, devdomain.ErrDeveloperNotFound):
		return err
	default:
		logging.FromContext(ctx).LogError("developers.availability", err)
		return fmt.Errorf("%w: %w", devdomain.ErrUpdateFailed, err)
	}
}

// UpdateAssignmentStatus applies a status change. Admins may make any legal
// move; the assigned developer may only start and complete their own work.
func (s *AssignmentService) UpdateAssignmentStatus(ctx context.Context, actor authdomain.Actor, assignmentID string, to domain.Status) (*domain.Assignment, error) {
	if !actor.Authenticated() {
		return nil, authdomain.ErrUnauthenticated
	}
	if !to.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if !isUUID(assignmentID) {
		return nil, domain.ErrAssignmentNotFound
	}

	current, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	if actor.IsAdmin() {
		if !domain.CanTransition(current.Status, to) {
			return nil, domain.ErrInvalidTransition
		}
	} else {
		dev, err := s.developers.GetByUserID(ctx, actor.IdentityID)
		if errors.Is(err, devdomain.ErrProfileNotFound) {
			return nil, authdomain.ErrForbidden
		}
		if err != nil {
			return nil, err
		}
		if dev.ID != current.DeveloperID {
			return nil, authdomain.ErrForbidden
		}
		if !domain.OwnerMayTransition(current.Status, to) {
			return nil, domain.ErrInvalidTransition
		}
	}

	updated, err := s.assignments.UpdateStatus(ctx, assignmentID, current.Status, to)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) || errors.Is(err, domain.ErrAssignmentNotFound) {
			return nil, err
		}
		logging.FromContext(ctx).LogError("assignments.update_status", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrUpdateFailed, err)
	}
	return updated, nil
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

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
