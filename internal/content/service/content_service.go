package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atoolsera/agency-backend/internal/content/domain"
	"github.com/atoolsera/agency-backend/internal/logging"
)

type Store interface {
	ListPosts(ctx context.Context, f domain.PostFilter) ([]domain.PostSummary, error)
	GetPostBySlug(ctx context.Context, slug string) (*domain.Post, error)
	ListRelated(ctx context.Context, category, excludeID string, limit int) ([]domain.PostSummary, error)
	ListPortfolio(ctx context.Context, category string) ([]domain.PortfolioProject, error)
}

type ContentService struct {
	store Store
}

func NewContentService(store Store) *ContentService {
	return &ContentService{store: store}
}

// ListPosts treats the "All" category as no filter.
func (s *ContentService) ListPosts(ctx context.Context, f domain.PostFilter) ([]domain.PostSummary, error) {
	f.Category = normalizeCategory(f.Category)
	f.Query = strings.TrimSpace(f.Query)

	posts, err := s.store.ListPosts(ctx, f)
	if err != nil {
		logging.FromContext(ctx).LogError("content.list_posts", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrLoadFailed, err)
	}
	return posts, nil
}

// GetPost loads a published post and up to three others from its category.
// Failing to load related posts does not fail the request.
func (s *ContentService) GetPost(ctx context.Context, slug string) (*domain.PostDetail, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, domain.ErrPostNotFound
	}

	post, err := s.store.GetPostBySlug(ctx, slug)
	if errors.Is(err, domain.ErrPostNotFound) {
		return nil, err
	}
	if err != nil {
		logging.FromContext(ctx).LogError("content.get_post", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrLoadFailed, err)
	}

	related, err := s.store.ListRelated(ctx, post.Category, post.ID, domain.RelatedLimit)
	if err != nil {
		logging.FromContext(ctx).LogWarnf("content.related_posts", "slug=%s error=%v", slug, err)
		related = nil
	}
	if len(related) > domain.RelatedLimit {
		related = related[:domain.RelatedLimit]
	}
	if related == nil {
		related = []domain.PostSummary{}
	}

	return &domain.PostDetail{Post: *post, Related: related}, nil
}

func (s *ContentService) ListPortfolio(ctx context.Context, category string) ([]domain.PortfolioProject, error) {
	projects, err := s.store.ListPortfolio(ctx, normalizeCategory(category))
	if err != nil {
		logging.FromContext(ctx).LogError("content.list_portfolio", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrLoadFailed, err)
	}
	return projects, nil
}

func normalizeCategory(c string) string {
	c = strings.TrimSpace(c)
	if strings.EqualFold(c, "all") {
		return ""
	}
	return c
}
