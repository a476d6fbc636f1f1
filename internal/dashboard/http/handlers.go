package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	authdomain "github.com/atoolsera/agency-backend/internal/auth/domain"
	"github.com/atoolsera/agency-backend/internal/auth/middleware"
	devdomain "github.com/atoolsera/agency-backend/internal/developers/domain"
	devhttp "github.com/atoolsera/agency-backend/internal/developers/http"
	"github.com/atoolsera/agency-backend/internal/logging"
)

func (h *Handler) Overview(c *gin.Context) {
	o, err := h.svc.Overview(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		writeError(c, "dashboard.overview", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "overview": o})
}

// ListDevelopers accepts ?status=pending|approved|rejected and ?available=true.
func (h *Handler) ListDevelopers(c *gin.Context) {
	f := devdomain.ListFilter{Status: devdomain.Status(c.Query("status"))}
	if v := c.Query("available"); v != "" {
		available, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "available must be true or false"})
			return
		}
		f.AvailableOnly = available
	}

	devs, err := h.svc.ListDevelopers(c.Request.Context(), middleware.ActorFrom(c), f)
	if err != nil {
		writeError(c, "dashboard.list_developers", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "developers": devs})
}

func (h *Handler) ListDeveloperAssignments(c *gin.Context) {
	items, err := h.svc.ListAssignmentsForDeveloper(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, "dashboard.list_developer_assignments", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "assignments": items})
}

func (h *Handler) ListProjects(c *gin.Context) {
	items, err := h.svc.ListProjectSubmissions(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		writeError(c, "dashboard.list_projects", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) ListJobApplications(c *gin.Context) {
	items, err := h.svc.ListJobApplications(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		writeError(c, "dashboard.list_job_applications", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "applications": items})
}

func (h *Handler) ListAssignments(c *gin.Context) {
	items, err := h.svc.ListAllAssignments(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		writeError(c, "dashboard.list_assignments", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "assignments": items})
}

func (h *Handler) MyDashboard(c *gin.Context) {
	d, err := h.svc.MyDashboard(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		writeError(c, "dashboard.mine", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "dashboard": d})
}

func writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, devdomain.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error(), "redirect": devhttp.OnboardingRedirect})
	case errors.Is(err, devdomain.ErrDeveloperNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, devdomain.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, authdomain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, authdomain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": err.Error()})
	default:
		logging.FromContext(c.Request.Context()).LogError(op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load data, please try again"})
	}
}
