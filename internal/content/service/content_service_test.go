package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atoolsera/agency-backend/internal/content/domain"
)

type fakeStore struct {
	gotFilter   domain.PostFilter
	gotCategory string
	posts       map[string]domain.Post
	related     []domain.PostSummary
	relatedErr  error
	err         error
}

func (f *fakeStore) ListPosts(_ context.Context, filter domain.PostFilter) ([]domain.PostSummary, error) {
	f.gotFilter = filter
	return []domain.PostSummary{{Slug: "a"}}, f.err
}

func (f *fakeStore) GetPostBySlug(_ context.Context, slug string) (*domain.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.posts[slug]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return &p, nil
}

func (f *fakeStore) ListRelated(context.Context, string, string, int) ([]domain.PostSummary, error) {
	return f.related, f.relatedErr
}

func (f *fakeStore) ListPortfolio(_ context.Context, category string) ([]domain.PortfolioProject, error) {
	f.gotCategory = category
	return nil, f.err
}

func TestListPosts_NormalizesFilter(t *testing.T) {
	store := &fakeStore{}
	svc := NewContentService(store)

	_, err := svc.ListPosts(context.Background(), domain.PostFilter{Category: "All", Query: "  shopify "})
	require.NoError(t, err)
	assert.Equal(t, "", store.gotFilter.Category)
	assert.Equal(t, "shopify", store.gotFilter.Query)

	store.err = errors.New("timeout")
	_, err = svc.ListPosts(context.Background(), domain.PostFilter{})
	assert.ErrorIs(t, err, domain.ErrLoadFailed)
}

func TestGetPost(t *testing.T) {
	post := domain.Post{PostSummary: domain.PostSummary{ID: "1", Slug: "launch", Category: "Shopify"}}
	store := &fakeStore{
		posts: map[string]domain.Post{"launch": post},
		related: []domain.PostSummary{
			{Slug: "a"}, {Slug: "b"}, {Slug: "c"}, {Slug: "d"},
		},
	}
	svc := NewContentService(store)

	t.Run("caps related posts", func(t *testing.T) {
		d, err := svc.GetPost(context.Background(), "launch")
		require.NoError(t, err)
		assert.Equal(t, "launch", d.Post.Slug)
		assert.Len(t, d.Related, domain.RelatedLimit)
	})

	t.Run("related failure is not fatal", func(t *testing.T) {
		store.relatedErr = errors.New("boom")
		defer func() { store.relatedErr = nil }()

		d, err := svc.GetPost(context.Background(), "launch")
		require.NoError(t, err)
		assert.NotNil(t, d.Related)
		assert.Empty(t, d.Related)
	})

	t.Run("unknown and blank slugs", func(t *testing.T) {
		_, err := svc.GetPost(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrPostNotFound)

		_, err = svc.GetPost(context.Background(), " ")
		assert.ErrorIs(t, err, domain.ErrPostNotFound)
	})
}

func TestListPortfolio(t *testing.T) {
	store := &fakeStore{}
	svc := NewContentService(store)

	_, err := svc.ListPortfolio(context.Background(), " E-commerce ")
	require.NoError(t, err)
	assert.Equal(t, "E-commerce", store.gotCategory)
}
