package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authdomain "github.com/atoolsera/agency-backend/internal/auth/domain"
	"github.com/atoolsera/agency-backend/internal/auth/middleware"
	"github.com/atoolsera/agency-backend/internal/intake/domain"
	"github.com/atoolsera/agency-backend/internal/stepper"
)

func (h *Handler) SubmitProject(c *gin.Context) {
	var form domain.ProjectIntakeForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
		return
	}

	sub, err := h.svc.SubmitProjectIntake(c.Request.Context(), form)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "submission": sub})
}

func (h *Handler) ListJobs(c *gin.Context) {
	jobType := domain.JobType(strings.ToLower(strings.TrimSpace(c.Query("type"))))
	if jobType != "" && !jobType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "type must be frontend, backend or fullstack"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "jobs": h.catalog.List(jobType)})
}

func (h *Handler) GetJob(c *gin.Context) {
	job, ok := h.catalog.Find(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": domain.ErrJobNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "job": job})
}

func (h *Handler) SubmitApplication(c *gin.Context) {
	var form domain.JobApplicationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
		return
	}

	app, err := h.svc.SubmitJobApplication(c.Request.Context(), c.Param("id"), form)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "application": app})
}

func (h *Handler) UploadResume(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.uploadMaxBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "file is required (max size exceeded?)"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unreadable file"})
		return
	}
	defer f.Close()

	uploaded, err := h.svc.UploadResume(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "file": uploaded})
}

func (h *Handler) SubmitChat(c *gin.Context) {
	var form domain.ChatInquiryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
		return
	}

	inq, err := h.svc.SubmitChatInquiry(c.Request.Context(), form)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "inquiry": inq})
}

func (h *Handler) ListChatInquiries(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"

	items, err := h.svc.ListChatInquiries(c.Request.Context(), middleware.ActorFrom(c), unreadOnly)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "inquiries": items})
}

func (h *Handler) SetInquiryRead(c *gin.Context) {
	var req setReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "is_read is required"})
		return
	}

	inq, err := h.svc.SetInquiryRead(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), *req.IsRead)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "inquiry": inq})
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
	case errors.Is(err, domain.ErrJobNotFound), errors.Is(err, domain.ErrInquiryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, authdomain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, authdomain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrUploadFailed):
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": domain.ErrUploadFailed.Error()})
	case errors.Is(err, domain.ErrUpdateFailed):
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": domain.ErrUpdateFailed.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": domain.ErrSubmitFailed.Error()})
	}
}
