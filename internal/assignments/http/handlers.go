package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/atoolsera/agency-backend/internal/assignments/domain"
	authdomain "github.com/atoolsera/agency-backend/internal/auth/domain"
	"github.com/atoolsera/agency-backend/internal/auth/middleware"
	devdomain "github.com/atoolsera/agency-backend/internal/developers/domain"
)

func (h *Handler) ListAssignable(c *gin.Context) {
	devs, err := h.svc.ListAssignableDevelopers(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "developers": devs})
}

func (h *Handler) Assign(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "developer_id and project_submission_id are required"})
		return
	}
	if req.Notes != nil && strings.TrimSpace(*req.Notes) == "" {
		req.Notes = nil
	}

	a, err := h.svc.Assign(c.Request.Context(), middleware.ActorFrom(c), req.DeveloperID, req.ProjectID, req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "assignment": a})
}

func (h *Handler) SetDeveloperStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "status is required"})
		return
	}

	id := c.Param("id")
	if err := h.svc.SetDeveloperStatus(c.Request.Context(), middleware.ActorFrom(c), id, devdomain.Status(req.Status)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id, "status": req.Status})
}

func (h *Handler) SetDeveloperAvailability(c *gin.Context) {
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "is_available is required"})
		return
	}

	id := c.Param("id")
	if err := h.svc.SetDeveloperAvailability(c.Request.Context(), middleware.ActorFrom(c), id, *req.IsAvailable); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id, "is_available": *req.IsAvailable})
}

func (h *Handler) UpdateAssignmentStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "status is required"})
		return
	}

	a, err := h.svc.UpdateAssignmentStatus(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), domain.Status(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "assignment": a})
}

const duplicateAssignmentMessage = "Developer is already assigned to this project"

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrDuplicateAssignment):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": duplicateAssignmentMessage})
	case errors.Is(err, domain.ErrDeveloperNotAssignable),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, devdomain.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, devdomain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrAssignmentNotFound),
		errors.Is(err, domain.ErrProjectNotFound),
		errors.Is(err, devdomain.ErrDeveloperNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, authdomain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": err.Error(), "redirect": middleware.SignInRedirect(authdomain.RoleAdmin)})
	case errors.Is(err, authdomain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrAssignFailed):
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": domain.ErrAssignFailed.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": domain.ErrUpdateFailed.Error()})
	}
}
