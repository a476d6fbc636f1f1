package domain

import (
	"errors"
	"time"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrLoadFailed   = errors.New("failed to load content, please try again")
)

// RelatedLimit caps the related posts shown under an article.
const RelatedLimit = 3

// PostSummary is a blog post without its body, as listed on the index page.
type PostSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt"`
	CoverImage  *string   `json:"cover_image"`
	Category    string    `json:"category"`
	AuthorName  string    `json:"author_name"`
	AuthorImage *string   `json:"author_image"`
	ReadTime    int       `json:"read_time"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
}

type Post struct {
	PostSummary
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PostDetail struct {
	Post    Post          `json:"post"`
	Related []PostSummary `json:"related"`
}

// PostFilter narrows the published post listing. Query matches title or
// excerpt, case-insensitively.
type PostFilter struct {
	Category string
	Query    string
}

type PortfolioProject struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	ClientName   *string   `json:"client_name"`
	ImageURL     *string   `json:"image_url"`
	ProjectURL   *string   `json:"project_url"`
	Technologies []string  `json:"technologies"`
	Featured     bool      `json:"featured"`
	CreatedAt    time.Time `json:"created_at"`
}

// Categories returns the distinct categories of posts in first-seen order.
func Categories(posts []PostSummary) []string {
	seen := make(map[string]bool, len(posts))
	out := make([]string, 0, 8)
	for _, p := range posts {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}
