package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atoolsera/agency-backend/internal/content/domain"
)

type Service interface {
	ListPosts(ctx context.Context, f domain.PostFilter) ([]domain.PostSummary, error)
	GetPost(ctx context.Context, slug string) (*domain.PostDetail, error)
	ListPortfolio(ctx context.Context, category string) ([]domain.PortfolioProject, error)
}

type Handler struct {
	svc Service
}

func New(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/blog", h.ListPosts)
	rg.GET("/blog/:slug", h.GetPost)
	rg.GET("/portfolio", h.ListPortfolio)
}

// ListPosts accepts ?category= and ?q=.
func (h *Handler) ListPosts(c *gin.Context) {
	posts, err := h.svc.ListPosts(c.Request.Context(), domain.PostFilter{
		Category: c.Query("category"),
		Query:    c.Query("q"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "posts": posts, "categories": domain.Categories(posts)})
}

func (h *Handler) GetPost(c *gin.Context) {
	d, err := h.svc.GetPost(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "post": d.Post, "related": d.Related})
}

func (h *Handler) ListPortfolio(c *gin.Context) {
	projects, err := h.svc.ListPortfolio(c.Request.Context(), c.Query("category"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": projects})
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrPostNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": domain.ErrLoadFailed.Error()})
}
