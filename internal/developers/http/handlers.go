package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	authdomain "github.com/atoolsera/agency-backend/internal/auth/domain"
	"github.com/atoolsera/agency-backend/internal/auth/middleware"
	"github.com/atoolsera/agency-backend/internal/developers/domain"
	"github.com/atoolsera/agency-backend/internal/developers/service"
	"github.com/atoolsera/agency-backend/internal/stepper"
)

const maxFilesPerUpload = 20

func (h *Handler) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "options": h.svc.Options(), "initial": domain.NewOnboardingForm()})
}

func (h *Handler) SubmitOnboarding(c *gin.Context) {
	form := domain.NewOnboardingForm()
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
		return
	}

	res, err := h.svc.SubmitDeveloperOnboarding(c.Request.Context(), middleware.ActorFrom(c), form)
	if err != nil {
		writeError(c, err)
		return
	}

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"ok": true, "result": res})
}

// UploadScreenshots accepts many "files" parts and reports a result per file.
func (h *Handler) UploadScreenshots(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.uploadMaxBytes)

	mf, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "multipart form required (max size exceeded?)"})
		return
	}
	headers := mf.File["files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "at least one file is required"})
		return
	}
	if len(headers) > maxFilesPerUpload {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "too many files"})
		return
	}

	uploads := make([]service.FileUpload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unreadable file " + fh.Filename})
			return
		}
		defer f.Close()

		uploads = append(uploads, service.FileUpload{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		})
	}

	results, err := h.svc.UploadScreenshots(c.Request.Context(), middleware.ActorFrom(c), uploads)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "files": results})
}

func (h *Handler) GetProfile(c *gin.Context) {
	detail, err := h.svc.MyProfile(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "profile": detail})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		body := gin.H{"ok": false, "error": "Please fill in all required fields"}
		var stepErr *stepper.StepError
		if errors.As(err, &stepErr) {
			body["step"] = stepErr.Step
			body["step_title"] = stepErr.Title
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, domain.ErrProfileAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "You already have a developer profile"})
	case errors.Is(err, domain.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error(), "redirect": OnboardingRedirect})
	case errors.Is(err, authdomain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": err.Error(), "redirect": middleware.SignInRedirect(authdomain.RoleDeveloper)})
	case errors.Is(err, authdomain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": domain.ErrSubmitFailed.Error()})
	}
}
