package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdomain "github.com/atoolsera/agency-backend/internal/auth/domain"
	"github.com/atoolsera/agency-backend/internal/auth/middleware"
	"github.com/atoolsera/agency-backend/internal/careers"
	"github.com/atoolsera/agency-backend/internal/intake/domain"
	"github.com/atoolsera/agency-backend/internal/intake/service"
)

type fakeService struct {
	lastProject domain.ProjectIntakeForm
	uploaded    []byte
	failWith    error
}

func (f *fakeService) SubmitProjectIntake(_ context.Context, form domain.ProjectIntakeForm) (*domain.ProjectSubmission, error) {
	f.lastProject = form
	if err := domain.ProjectIntakeFlow.Validate(form); err != nil {
		return nil, errors.Join(domain.ErrValidation, err)
	}
	if f.failWith != nil {
		return nil, f.failWith
	}
	return form.ToSubmission(), nil
}

func (f *fakeService) SubmitJobApplication(_ context.Context, jobID string, form domain.JobApplicationForm) (*domain.JobApplication, error) {
	if jobID != "1" {
		return nil, domain.ErrJobNotFound
	}
	return form.ToApplication("Frontend Developer", domain.JobTypeFrontend), nil
}

func (f *fakeService) SubmitChatInquiry(_ context.Context, form domain.ChatInquiryForm) (*domain.ChatInquiry, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	return form.ToInquiry(), nil
}

func (f *fakeService) UploadResume(_ context.Context, filename, _ string, _ int64, body io.Reader) (*service.UploadedFile, error) {
	f.uploaded, _ = io.ReadAll(body)
	return &service.UploadedFile{URL: "https://blobs.test/" + filename, Name: filename}, nil
}

func (f *fakeService) ListChatInquiries(_ context.Context, actor authdomain.Actor, _ bool) ([]domain.ChatInquiry, error) {
	if !actor.IsAdmin() {
		return nil, authdomain.ErrForbidden
	}
	return []domain.ChatInquiry{}, nil
}

func (f *fakeService) SetInquiryRead(_ context.Context, _ authdomain.Actor, id string, read bool) (*domain.ChatInquiry, error) {
	return &domain.ChatInquiry{ID: id, IsRead: read}, nil
}

type actorResolver map[string]authdomain.Actor

func (a actorResolver) Resolve(_ context.Context, tok string) (authdomain.Actor, error) {
	if actor, ok := a[tok]; ok {
		return actor, nil
	}
	return authdomain.Anonymous(), authdomain.ErrInvalidToken
}

func setup(t *testing.T) (*gin.Engine, *fakeService) {
	gin.SetMode(gin.TestMode)
	catalog, err := careers.Default()
	require.NoError(t, err)

	svc := &fakeService{}
	h := New(svc, catalog, 1<<20)

	r := gin.New()
	r.Use(middleware.Authenticate(actorResolver{
		"admin": {IdentityID: "u1", Role: authdomain.RoleAdmin},
		"dev":   {IdentityID: "u2", Role: authdomain.RoleDeveloper},
	}))
	h.RegisterPublic(r.Group("/api/v1"), nil)
	h.RegisterAdmin(r.Group("/api/v1/admin"))
	return r, svc
}

func send(r http.Handler, method, path, tok string, body interface{}) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestSubmitProject(t *testing.T) {
	r, svc := setup(t)

	rr := send(r, http.MethodPost, "/api/v1/intake/projects", "", map[string]interface{}{
		"projectType": "shopify_store",
		"features":    []string{"Payment Integration"},
		"budget":      "5000-10000",
		"timeline":    "1-2months",
		"name":        "Jane Doe",
		"email":       "jane@x.com",
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, domain.ProjectTypeShopifyStore, svc.lastProject.ProjectType)
	assert.Contains(t, rr.Body.String(), `"budget_max":10000`)

	rr = send(r, http.MethodPost, "/api/v1/intake/projects", "", map[string]interface{}{"projectType": "new_website"})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, float64(2), body["step"])
}

func TestJobs(t *testing.T) {
	r, _ := setup(t)

	rr := send(r, http.MethodGet, "/api/v1/careers/jobs?type=frontend", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Jobs []careers.Job `json:"jobs"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Len(t, body.Jobs, 2)

	rr = send(r, http.MethodGet, "/api/v1/careers/jobs?type=design", "", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = send(r, http.MethodGet, "/api/v1/careers/jobs/99", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = send(r, http.MethodPost, "/api/v1/careers/jobs/1/applications", "", map[string]string{"name": "Sam", "email": "sam@x.com"})
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), "Frontend Developer")
}

func TestUploadResume(t *testing.T) {
	r, svc := setup(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "cv.pdf")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("%PDF-1.4"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/careers/resumes", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "%PDF-1.4", string(svc.uploaded))
	assert.Contains(t, rr.Body.String(), "https://blobs.test/cv.pdf")
}

func TestChat(t *testing.T) {
	r, _ := setup(t)

	rr := send(r, http.MethodPost, "/api/v1/chat/inquiries", "", map[string]string{"name": "A", "email": "a@x.com", "message": " "})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = send(r, http.MethodPost, "/api/v1/chat/inquiries", "", map[string]string{"name": "A", "email": "a@x.com", "message": "hi"})
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr = send(r, http.MethodGet, "/api/v1/admin/chat-inquiries", "dev", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = send(r, http.MethodGet, "/api/v1/admin/chat-inquiries", "admin", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = send(r, http.MethodPatch, "/api/v1/admin/chat-inquiries/abc", "admin", map[string]bool{"is_read": true})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"is_read":true`)

	rr = send(r, http.MethodPatch, "/api/v1/admin/chat-inquiries/abc", "admin", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
