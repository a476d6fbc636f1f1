package domain

import "time"

type ProjectType string

const (
	ProjectTypeNewWebsite      ProjectType = "new_website"
	ProjectTypeShopifyStore    ProjectType = "shopify_store"
	ProjectTypeWebsiteRedesign ProjectType = "website_redesign"
	ProjectTypeMaintenance     ProjectType = "maintenance"
)

func (p ProjectType) Valid() bool {
	switch p {
	case ProjectTypeNewWebsite, ProjectTypeShopifyStore, ProjectTypeWebsiteRedesign, ProjectTypeMaintenance:
		return true
	}
	return false
}

type JobType string

const (
	JobTypeFrontend  JobType = "frontend"
	JobTypeBackend   JobType = "backend"
	JobTypeFullstack JobType = "fullstack"
)

func (j JobType) Valid() bool {
	return j == JobTypeFrontend || j == JobTypeBackend || j == JobTypeFullstack
}

// ProjectSubmission is a lead captured by the project intake form. It is
// immutable once stored.
type ProjectSubmission struct {
	ID                 string      `json:"id"`
	ProjectType        ProjectType `json:"project_type"`
	Features           []string    `json:"features"`
	CustomRequirements *string     `json:"custom_requirements,omitempty"`
	BudgetMin          *int        `json:"budget_min"`
	BudgetMax          *int        `json:"budget_max"`
	Timeline           string      `json:"timeline"`
	Name               string      `json:"name"`
	Email              string      `json:"email"`
	Phone              *string     `json:"phone,omitempty"`
	Company            *string     `json:"company,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
}

// JobApplication is tagged with the catalog job's title and type at
// submission time.
type JobApplication struct {
	ID           string    `json:"id"`
	JobTitle     string    `json:"job_title"`
	JobType      JobType   `json:"job_type"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone,omitempty"`
	PortfolioURL *string   `json:"portfolio_url,omitempty"`
	CoverLetter  *string   `json:"cover_letter,omitempty"`
	ResumeURL    *string   `json:"resume_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ChatInquiry comes from the live-chat widget. IsRead is its only mutable field.
type ChatInquiry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
