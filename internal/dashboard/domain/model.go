package domain

import (
	assigndomain "github.com/atoolsera/agency-backend/internal/assignments/domain"
	devdomain "github.com/atoolsera/agency-backend/internal/developers/domain"
)

// Overview holds the counters shown on the admin landing page.
type Overview struct {
	PendingDevelopers   int `json:"pending_developers"`
	ApprovedDevelopers  int `json:"approved_developers"`
	RejectedDevelopers  int `json:"rejected_developers"`
	AvailableDevelopers int `json:"available_developers"`
	ProjectSubmissions  int `json:"project_submissions"`
	Assignments         int `json:"assignments"`
	UnreadInquiries     int `json:"unread_inquiries"`
}

// DeveloperDashboard is what a developer sees after onboarding.
type DeveloperDashboard struct {
	Profile      devdomain.ProfileDetail   `json:"profile"`
	Assignments  []assigndomain.Assignment `json:"assignments"`
	CanViewLeads bool                      `json:"can_view_leads"`
}
