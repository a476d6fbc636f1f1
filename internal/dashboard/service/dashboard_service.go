package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	assigndomain "github.com/atoolsera/agency-backend/internal/assignments/domain"
	authdomain "github.com/atoolsera/agency-backend/internal/auth/domain"
	"github.com/atoolsera/agency-backend/internal/dashboard/domain"
	devdomain "github.com/atoolsera/agency-backend/internal/developers/domain"
	intakedomain "github.com/atoolsera/agency-backend/internal/intake/domain"
)

type SubmissionStore interface {
	ListProjectSubmissions(ctx context.Context) ([]intakedomain.ProjectSubmission, error)
	CountProjectSubmissions(ctx context.Context) (int, error)
	ListJobApplications(ctx context.Context) ([]intakedomain.JobApplication, error)
	CountUnreadInquiries(ctx context.Context) (int, error)
}

type AssignmentStore interface {
	ListForDeveloper(ctx context.Context, developerID string) ([]assigndomain.Assignment, error)
	ListAll(ctx context.Context) ([]assigndomain.Assignment, error)
	Count(ctx context.Context) (int, error)
}

type DeveloperStore interface {
	GetByUserID(ctx context.Context, userID string) (*devdomain.Profile, error)
	List(ctx context.Context, f devdomain.ListFilter) ([]devdomain.Profile, error)
	ListScreenshots(ctx context.Context, developerID string) ([]devdomain.Screenshot, error)
	CountByStatus(ctx context.Context) (devdomain.StatusCounts, error)
}

// DashboardService serves the read side of the admin and developer areas.
type DashboardService struct {
	submissions SubmissionStore
	assignments AssignmentStore
	developers  DeveloperStore
}

func NewDashboardService(submissions SubmissionStore, assignments AssignmentStore, developers DeveloperStore) *DashboardService {
	return &DashboardService{submissions: submissions, assignments: assignments, developers: developers}
}

// ListProjectSubmissions returns every submission, newest first. Admins and
// developers see the whole lead pool whatever their review status; any other
// signed-in identity needs a developer profile.
func (s *DashboardService) ListProjectSubmissions(ctx context.Context, actor authdomain.Actor) ([]intakedomain.ProjectSubmission, error) {
	if !actor.Authenticated() {
		return nil, authdomain.ErrUnauthenticated
	}
	if !actor.IsAdmin() && !actor.IsDeveloper() {
		_, err := s.developers.GetByUserID(ctx, actor.IdentityID)
		if errors.Is(err, devdomain.ErrProfileNotFound) {
			return nil, authdomain.ErrForbidden
		}
		if err != nil {
			return nil, err
		}
	}
	return s.submissions.ListProjectSubmissions(ctx)
}

func (s *DashboardService) ListJobApplications(ctx context.Context, actor authdomain.Actor) ([]intakedomain.JobApplication, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.submissions.ListJobApplications(ctx)
}

// ListAssignmentsForDeveloper is open to admins and to the developer the
// assignments belong to.
func (s *DashboardService) ListAssignmentsForDeveloper(ctx context.Context, actor authdomain.Actor, developerID string) ([]assigndomain.Assignment, error) {
	if !actor.Authenticated() {
		return nil, authdomain.ErrUnauthenticated
	}
	if _, err := uuid.Parse(developerID); err != nil {
		return nil, devdomain.ErrDeveloperNotFound
	}
	if !actor.IsAdmin() {
		p, err := s.developers.GetByUserID(ctx, actor.IdentityID)
		if errors.Is(err, devdomain.ErrProfileNotFound) {
			return nil, authdomain.ErrForbidden
		}
		if err != nil {
			return nil, err
		}
		if p.ID != developerID {
			return nil, authdomain.ErrForbidden
		}
	}
	return s.assignments.ListForDeveloper(ctx, developerID)
}

func (s *DashboardService) ListAllAssignments(ctx context.Context, actor authdomain.Actor) ([]assigndomain.Assignment, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.assignments.ListAll(ctx)
}

func (s *DashboardService) ListDevelopers(ctx context.Context, actor authdomain.Actor, f devdomain.ListFilter) ([]devdomain.Profile, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, devdomain.ErrInvalidStatus
	}
	return s.developers.List(ctx, f)
}

func (s *DashboardService) Overview(ctx context.Context, actor authdomain.Actor) (*domain.Overview, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	counts, err := s.developers.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := s.submissions.CountProjectSubmissions(ctx)
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignments.Count(ctx)
	if err != nil {
		return nil, err
	}
	unread, err := s.submissions.CountUnreadInquiries(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.Overview{
		PendingDevelopers:   counts.Pending,
		ApprovedDevelopers:  counts.Approved,
		RejectedDevelopers:  counts.Rejected,
		AvailableDevelopers: counts.Available,
		ProjectSubmissions:  projects,
		Assignments:         assignments,
		UnreadInquiries:     unread,
	}, nil
}

// MyDashboard returns the caller's profile and assignments. Callers without
// a profile get devdomain.ErrProfileNotFound.
func (s *DashboardService) MyDashboard(ctx context.Context, actor authdomain.Actor) (*domain.DeveloperDashboard, error) {
	if !actor.Authenticated() {
		return nil, authdomain.ErrUnauthenticated
	}

	p, err := s.developers.GetByUserID(ctx, actor.IdentityID)
	if err != nil {
		return nil, err
	}
	shots, err := s.developers.ListScreenshots(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignments.ListForDeveloper(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	return &domain.DeveloperDashboard{
		Profile:      devdomain.ProfileDetail{Profile: *p, Screenshots: shots},
		Assignments:  assignments,
		CanViewLeads: true,
	}, nil
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
