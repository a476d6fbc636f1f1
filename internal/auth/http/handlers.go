package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atoolsera/agency-backend/internal/auth/domain"
	"github.com/atoolsera/agency-backend/internal/auth/middleware"
	"github.com/atoolsera/agency-backend/internal/logging"
)

func (h *Handler) SignUp(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "email and password are required"})
		return
	}

	signed, err := h.authService.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, "auth.signup", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "session": signed})
}

func (h *Handler) SignIn(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "email and password are required"})
		return
	}

	signed, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, "auth.signin", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "session": signed})
}

func (h *Handler) SignOut(c *gin.Context) {
	if tok := middleware.BearerToken(c); tok != "" {
		if err := h.authService.SignOut(c.Request.Context(), tok); err != nil {
			h.writeError(c, "auth.signout", err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Session reports the current session, or null for anonymous callers.
func (h *Handler) Session(c *gin.Context) {
	tok := middleware.BearerToken(c)
	if tok == "" {
		c.JSON(http.StatusOK, gin.H{"ok": true, "session": nil})
		return
	}

	sess, actor, err := h.authService.CurrentSession(c.Request.Context(), tok)
	if errors.Is(err, domain.ErrInvalidToken) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "session": nil})
		return
	}
	if err != nil {
		h.writeError(c, "auth.session", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok": true,
		"session": gin.H{
			"expires_at": sess.ExpiresAt,
			"actor":      actor,
		},
	})
}

func (h *Handler) writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidEmail), errors.Is(err, domain.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "This email is already registered"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Invalid email or password"})
	default:
		logging.FromContext(c.Request.Context()).LogError(op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "authentication failed, please try again"})
	}
}
