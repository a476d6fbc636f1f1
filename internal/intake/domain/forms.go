package domain

import (
	"strings"

	"github.com/atoolsera/agency-backend/internal/stepper"
	"github.com/atoolsera/agency-backend/internal/validate"
)

// Features offered on step 2 of the project intake form.
var FeatureOptions = []string{
	"User Authentication",
	"Payment Integration",
	"Admin Dashboard",
	"Blog/CMS",
	"E-commerce Features",
	"Search Functionality",
	"Email Notifications",
	"Analytics Integration",
	"Social Media Integration",
	"API Development",
	"Mobile Responsive",
	"SEO Optimization",
}

// ProjectIntakeForm is the accumulated state of the project intake wizard.
type ProjectIntakeForm struct {
	ProjectType        ProjectType `json:"projectType"`
	Features           []string    `json:"features"`
	CustomRequirements string      `json:"customRequirements"`
	Budget             string      `json:"budget"`
	Timeline           string      `json:"timeline"`
	Name               string      `json:"name"`
	Email              string      `json:"email"`
	Phone              string      `json:"phone"`
	Company            string      `json:"company"`
}

var ProjectIntakeFlow = stepper.NewFlow("project-intake",
	stepper.Step[ProjectIntakeForm]{
		Title: "Project Type",
		Valid: func(f ProjectIntakeForm) bool { return f.ProjectType.Valid() },
	},
	stepper.Step[ProjectIntakeForm]{
		Title: "Features",
		Valid: func(f ProjectIntakeForm) bool {
			return len(f.Features) > 0 || strings.TrimSpace(f.CustomRequirements) != ""
		},
	},
	stepper.Step[ProjectIntakeForm]{
		Title: "Budget & Timeline",
		Valid: func(f ProjectIntakeForm) bool {
			return strings.TrimSpace(f.Budget) != "" && strings.TrimSpace(f.Timeline) != ""
		},
	},
	stepper.Step[ProjectIntakeForm]{
		Title: "Contact Info",
		Valid: func(f ProjectIntakeForm) bool {
			return strings.TrimSpace(f.Name) != "" && validate.Email(f.Email)
		},
	},
)

// ToSubmission maps a validated form to the stored record. Free text is
// trimmed and blank optional fields become nil.
func (f ProjectIntakeForm) ToSubmission() *ProjectSubmission {
	min, max := ParseBudgetRange(strings.TrimSpace(f.Budget))

	features := make([]string, 0, len(f.Features))
	for _, feat := range f.Features {
		if feat = strings.TrimSpace(feat); feat != "" {
			features = append(features, feat)
		}
	}

	return &ProjectSubmission{
		ProjectType:        f.ProjectType,
		Features:           features,
		CustomRequirements: optional(f.CustomRequirements),
		BudgetMin:          min,
		BudgetMax:          max,
		Timeline:           strings.TrimSpace(f.Timeline),
		Name:               strings.TrimSpace(f.Name),
		Email:              strings.TrimSpace(f.Email),
		Phone:              optional(f.Phone),
		Company:            optional(f.Company),
	}
}

// JobApplicationForm is the single-step application form.
type JobApplicationForm struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PortfolioURL string `json:"portfolio_url"`
	CoverLetter  string `json:"cover_letter"`
	ResumeURL    string `json:"resume_url"`
}

var JobApplicationFlow = stepper.NewFlow("job-application",
	stepper.Step[JobApplicationForm]{
		Title: "Your Details",
		Valid: func(f JobApplicationForm) bool {
			return strings.TrimSpace(f.Name) != "" &&
				validate.Email(f.Email) &&
				validate.OptionalURL(f.PortfolioURL) &&
				validate.OptionalURL(f.ResumeURL)
		},
	},
)

func (f JobApplicationForm) ToApplication(jobTitle string, jobType JobType) *JobApplication {
	return &JobApplication{
		JobTitle:     jobTitle,
		JobType:      jobType,
		Name:         strings.TrimSpace(f.Name),
		Email:        strings.TrimSpace(f.Email),
		Phone:        optional(f.Phone),
		PortfolioURL: optional(f.PortfolioURL),
		CoverLetter:  optional(f.CoverLetter),
		ResumeURL:    optional(f.ResumeURL),
	}
}

type ChatInquiryForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate requires all three fields to be non-blank.
func (f ChatInquiryForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.Email) == "" || strings.TrimSpace(f.Message) == "" {
		return ErrValidation
	}
	return nil
}

func (f ChatInquiryForm) ToInquiry() *ChatInquiry {
	return &ChatInquiry{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Message: strings.TrimSpace(f.Message),
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
