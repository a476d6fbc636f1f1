package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	authdomain "github.com/atoolsera/agency-backend/internal/auth/domain"
	"github.com/atoolsera/agency-backend/internal/developers/domain"
	"github.com/atoolsera/agency-backend/internal/logging"
	"github.com/atoolsera/agency-backend/internal/metrics"
	"github.com/atoolsera/agency-backend/internal/storage/blob"
)

type Store interface {
	Onboard(ctx context.Context, p *domain.Profile, skills []domain.Skill, shots []domain.Screenshot) (*domain.OnboardingResult, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	ListScreenshots(ctx context.Context, developerID string) ([]domain.Screenshot, error)
}

type BlobStore interface {
	Bucket() string
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PublicURL(key string) string
}

// FileUpload is one file of a multi-file screenshot upload.
type FileUpload struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadResult reports the outcome of one file. Error is empty on success.
type UploadResult struct {
	Name  string `json:"name"`
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
}

type OnboardingService struct {
	store Store
	blobs BlobStore
	now   func() time.Time
}

func NewOnboardingService(store Store, blobs BlobStore) *OnboardingService {
	return &OnboardingService{store: store, blobs: blobs, now: time.Now}
}

func (s *OnboardingService) Options() domain.Options {
	return domain.OnboardingOptions()
}

// SubmitDeveloperOnboarding creates the caller's developer profile, grants
// the developer role and stores skills and screenshots. The profile always
// starts pending and unavailable. A repeated submission completes anything
// an earlier attempt left out.
func (s *OnboardingService) SubmitDeveloperOnboarding(ctx context.Context, actor authdomain.Actor, form domain.OnboardingForm) (*domain.OnboardingResult, error) {
	if !actor.Authenticated() {
		return nil, authdomain.ErrUnauthenticated
	}

	if err := domain.OnboardingFlow.Validate(form); err != nil {
		metrics.RecordSubmission("developer_onboarding", metrics.OutcomeInvalid)
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	log := logging.FromContext(ctx)
	profile := form.ToProfile(actor.IdentityID, actor.Email)

	valid := form.ValidScreenshots()
	shots := s.ownScreenshots(actor, valid)
	if dropped := len(valid) - len(shots); dropped > 0 {
		log.LogWarnf("developers.onboard", "dropped %d screenshot(s) outside %s", dropped, s.blobs.PublicURL(actor.IdentityID+"/"))
	}

	res, err := s.store.Onboard(ctx, profile, form.NormalizedSkills(), shots)
	if err != nil {
		log.LogError("developers.onboard", err)
		metrics.RecordSubmission("developer_onboarding", metrics.OutcomeError)
		return nil, fmt.Errorf("%w: %w", domain.ErrSubmitFailed, err)
	}

	if !res.Completed() {
		metrics.RecordSubmission("developer_onboarding", metrics.OutcomeConflict)
		return nil, domain.ErrProfileAlreadyExists
	}

	if !res.Created {
		log.LogWarnf("developers.onboard", "completed partial profile=%s role_granted=%t skills=%d screenshots=%d",
			res.ProfileID, res.RoleGranted, res.SkillsAdded, res.ScreenshotsAdded)
	}
	metrics.RecordSubmission("developer_onboarding", metrics.OutcomeOK)
	return res, nil
}

// ownScreenshots keeps the screenshots that were uploaded under the caller's
// namespace in the portfolio bucket.
func (s *OnboardingService) ownScreenshots(actor authdomain.Actor, shots []domain.Screenshot) []domain.Screenshot {
	prefix := s.blobs.PublicURL(actor.IdentityID + "/")
	out := shots[:0]
	for _, sh := range shots {
		if strings.HasPrefix(sh.FileURL, prefix) && len(sh.FileURL) > len(prefix) && !strings.Contains(sh.FileURL[len(prefix):], "..") {
			out = append(out, sh)
		}
	}
	return out
}

// UploadScreenshot stores one file under the caller's namespace in the
// portfolio bucket.
func (s *OnboardingService) UploadScreenshot(ctx context.Context, actor authdomain.Actor, f FileUpload) (*domain.Screenshot, error) {
	if !actor.Authenticated() {
		return nil, authdomain.ErrUnauthenticated
	}

	key := blob.ObjectKey(actor.IdentityID, f.Name, s.now())

	err := s.blobs.Put(ctx, key, f.Body, f.Size, f.ContentType)
	metrics.RecordUpload(s.blobs.Bucket(), err)
	if err != nil {
		logging.FromContext(ctx).LogErrorf("developers.upload_screenshot", "file=%q error=%v", f.Name, err)
		return nil, fmt.Errorf("%w: %s", domain.ErrUploadFailed, f.Name)
	}

	return &domain.Screenshot{FileURL: s.blobs.PublicURL(key), FileName: f.Name}, nil
}

// UploadScreenshots uploads every file independently; one failure does not
// stop the rest.
func (s *OnboardingService) UploadScreenshots(ctx context.Context, actor authdomain.Actor, files []FileUpload) ([]UploadResult, error) {
	if !actor.Authenticated() {
		return nil, authdomain.ErrUnauthenticated
	}

	results := make([]UploadResult, 0, len(files))
	for _, f := range files {
		shot, err := s.UploadScreenshot(ctx, actor, f)
		if err != nil {
			results = append(results, UploadResult{Name: f.Name, Error: fmt.Sprintf("Failed to upload %s", f.Name)})
			continue
		}
		results = append(results, UploadResult{Name: shot.FileName, URL: shot.FileURL})
	}
	return results, nil
}

// MyProfile returns the caller's profile with screenshots.
func (s *OnboardingService) MyProfile(ctx context.Context, actor authdomain.Actor) (*domain.ProfileDetail, error) {
	if !actor.Authenticated() {
		return nil, authdomain.ErrUnauthenticated
	}

	p, err := s.store.GetByUserID(ctx, actor.IdentityID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			logging.FromContext(ctx).LogError("developers.my_profile", err)
		}
		return nil, err
	}

	shots, err := s.store.ListScreenshots(ctx, p.ID)
	if err != nil {
		logging.FromContext(ctx).LogError("developers.list_screenshots", err)
		return nil, err
	}

	return &domain.ProfileDetail{Profile: *p, Screenshots: shots}, nil
}
