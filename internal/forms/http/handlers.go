package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atoolsera/agency-backend/internal/forms"
)

type Handler struct {
	registry *forms.Registry
}

func New(registry *forms.Registry) *Handler {
	return &Handler{registry: registry}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/forms/:flow/advance", h.Advance)
	rg.POST("/forms/:flow/retreat", h.Retreat)
}

type navigateRequest struct {
	Step  int             `json:"step"`
	State json.RawMessage `json:"state"`
}

func (h *Handler) Advance(c *gin.Context) {
	h.navigate(c, h.registry.Advance)
}

func (h *Handler) Retreat(c *gin.Context) {
	h.navigate(c, h.registry.Retreat)
}

func (h *Handler) navigate(c *gin.Context, move func(string, int, json.RawMessage) (forms.Position, error)) {
	var req navigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
		return
	}

	pos, err := move(c.Param("flow"), req.Step, req.State)
	switch {
	case errors.Is(err, forms.ErrUnknownFlow):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error(), "flows": h.registry.Names()})
		return
	case errors.Is(err, forms.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": forms.ErrInvalidState.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "position": pos})
}
