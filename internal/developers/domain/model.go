package domain

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Reviewable reports whether s is a decision an admin can record.
func (s Status) Reviewable() bool {
	return s == StatusApproved || s == StatusRejected
}

// Profile is the developer record owned by one identity.
type Profile struct {
	ID                    string    `json:"id"`
	UserID                string    `json:"user_id"`
	Name                  string    `json:"name"`
	Email                 string    `json:"email"`
	Role                  string    `json:"role"`
	ExperienceYears       int       `json:"experience_years"`
	Location              *string   `json:"location,omitempty"`
	GithubURL             *string   `json:"github_url,omitempty"`
	PortfolioURL          *string   `json:"portfolio_url,omitempty"`
	WeeklyHours           int       `json:"weekly_hours"`
	PreferredProjectTypes []string  `json:"preferred_project_types"`
	Status                Status    `json:"status"`
	IsAvailable           bool      `json:"is_available"`
	Skills                []Skill   `json:"skills,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Assignable reports whether an admin may assign work to the developer.
func (p Profile) Assignable() bool {
	return p.Status == StatusApproved && p.IsAvailable
}

type Skill struct {
	Name            string `json:"name"`
	YearsExperience int    `json:"years"`
}

type Screenshot struct {
	ID       string    `json:"id,omitempty"`
	FileURL  string    `json:"url"`
	FileName string    `json:"name"`
	Created  time.Time `json:"created_at,omitempty"`
}

// ProfileDetail is a profile with its portfolio screenshots.
type ProfileDetail struct {
	Profile
	Screenshots []Screenshot `json:"screenshots"`
}

// ListFilter narrows developer listings. Zero value lists everyone.
type ListFilter struct {
	Status        Status
	AvailableOnly bool
}

// OnboardingResult describes what a (possibly repeated) onboarding
// submission wrote.
type OnboardingResult struct {
	ProfileID        string `json:"profile_id"`
	Created          bool   `json:"created"`
	RoleGranted      bool   `json:"role_granted"`
	SkillsAdded      int    `json:"skills_added"`
	ScreenshotsAdded int    `json:"screenshots_added"`
}

// Completed reports whether the submission changed anything.
func (r OnboardingResult) Completed() bool {
	return r.Created || r.RoleGranted || r.SkillsAdded > 0 || r.ScreenshotsAdded > 0
}

// StatusCounts summarizes the developer pool for the admin overview.
type StatusCounts struct {
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	Available int `json:"available"`
}
