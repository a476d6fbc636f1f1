package domain

import (
	"strings"

	"github.com/atoolsera/agency-backend/internal/stepper"
	"github.com/atoolsera/agency-backend/internal/validate"
)

const (
	DefaultWeeklyHours = 40
	defaultSkillYears  = 1
)

var SkillOptions = []string{
	"React", "Vue.js", "Angular", "Next.js", "TypeScript", "JavaScript",
	"Node.js", "Python", "PHP", "Ruby", "Go", "Rust",
	"PostgreSQL", "MySQL", "MongoDB", "Redis",
	"AWS", "GCP", "Azure", "Docker", "Kubernetes",
	"Shopify", "WordPress", "Webflow",
	"Figma", "UI/UX Design", "Tailwind CSS",
}

var RoleOptions = []string{
	"Frontend Developer",
	"Backend Developer",
	"Full Stack Developer",
	"Mobile Developer",
	"DevOps Engineer",
	"UI/UX Designer",
	"Shopify Developer",
}

var ProjectTypeOptions = []string{
	"New Websites",
	"E-commerce",
	"Web Apps",
	"Mobile Apps",
	"Shopify Stores",
	"Maintenance",
}

var (
	ExperienceYearOptions = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	SkillYearOptions      = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	WeeklyHourOptions     = []int{10, 20, 30, 40, 50}
)

// Options is served to the onboarding wizard.
type Options struct {
	Roles           []string `json:"roles"`
	Skills          []string `json:"skills"`
	ProjectTypes    []string `json:"project_types"`
	ExperienceYears []int    `json:"experience_years"`
	SkillYears      []int    `json:"skill_years"`
	WeeklyHours     []int    `json:"weekly_hours"`
	DefaultWeekly   int      `json:"default_weekly_hours"`
	Steps           []string `json:"steps"`
}

func OnboardingOptions() Options {
	return Options{
		Roles:           RoleOptions,
		Skills:          SkillOptions,
		ProjectTypes:    ProjectTypeOptions,
		ExperienceYears: ExperienceYearOptions,
		SkillYears:      SkillYearOptions,
		WeeklyHours:     WeeklyHourOptions,
		DefaultWeekly:   DefaultWeeklyHours,
		Steps:           OnboardingFlow.Titles(),
	}
}

// OnboardingForm is the accumulated state of the onboarding wizard. Status
// and IsAvailable may be sent by clients but are never stored.
type OnboardingForm struct {
	Name                  string       `json:"name"`
	Role                  string       `json:"role"`
	ExperienceYears       int          `json:"experienceYears"`
	Location              string       `json:"location"`
	Skills                []Skill      `json:"skills"`
	GithubURL             string       `json:"githubUrl"`
	PortfolioURL          string       `json:"portfolioUrl"`
	WeeklyHours           int          `json:"weeklyHours"`
	PreferredProjectTypes []string     `json:"preferredProjectTypes"`
	Screenshots           []Screenshot `json:"screenshots"`

	Status      Status `json:"status,omitempty"`
	IsAvailable *bool  `json:"is_available,omitempty"`
}

// NewOnboardingForm returns the wizard's initial state.
func NewOnboardingForm() OnboardingForm {
	return OnboardingForm{WeeklyHours: DefaultWeeklyHours}
}

var OnboardingFlow = stepper.NewFlow("developer-onboarding",
	stepper.Step[OnboardingForm]{
		Title: "Basic Info",
		Valid: func(f OnboardingForm) bool {
			return strings.TrimSpace(f.Name) != "" && strings.TrimSpace(f.Role) != "" && f.ExperienceYears > 0
		},
	},
	stepper.Step[OnboardingForm]{
		Title: "Skills",
		Valid: func(f OnboardingForm) bool { return len(f.normalizedSkills()) > 0 },
	},
	stepper.Step[OnboardingForm]{
		Title: "Portfolio",
	},
	stepper.Step[OnboardingForm]{
		Title: "Availability",
		Valid: func(f OnboardingForm) bool { return f.WeeklyHours > 0 },
	},
)

// ToProfile builds the profile row for owner. Review state always starts
// pending and unavailable.
func (f OnboardingForm) ToProfile(userID, email string) *Profile {
	types := make([]string, 0, len(f.PreferredProjectTypes))
	for _, t := range f.PreferredProjectTypes {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}

	return &Profile{
		UserID:                userID,
		Name:                  strings.TrimSpace(f.Name),
		Email:                 strings.TrimSpace(email),
		Role:                  strings.TrimSpace(f.Role),
		ExperienceYears:       f.ExperienceYears,
		Location:              optional(f.Location),
		GithubURL:             optional(f.GithubURL),
		PortfolioURL:          optional(f.PortfolioURL),
		WeeklyHours:           f.WeeklyHours,
		PreferredProjectTypes: types,
		Status:                StatusPending,
		IsAvailable:           false,
	}
}

// NormalizedSkills trims names, drops blanks and duplicates and defaults
// missing years to 1.
func (f OnboardingForm) NormalizedSkills() []Skill {
	return f.normalizedSkills()
}

func (f OnboardingForm) normalizedSkills() []Skill {
	seen := make(map[string]struct{}, len(f.Skills))
	out := make([]Skill, 0, len(f.Skills))
	for _, s := range f.Skills {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		years := s.YearsExperience
		if years <= 0 {
			years = defaultSkillYears
		}
		out = append(out, Skill{Name: name, YearsExperience: years})
	}
	return out
}

// ValidScreenshots keeps screenshots with a usable URL, naming unnamed ones
// after their URL.
func (f OnboardingForm) ValidScreenshots() []Screenshot {
	out := make([]Screenshot, 0, len(f.Screenshots))
	seen := make(map[string]struct{}, len(f.Screenshots))
	for _, s := range f.Screenshots {
		url := strings.TrimSpace(s.FileURL)
		if !validate.URL(url) {
			continue
		}
		if _, dup := seen[url]; dup {
			continue
		}
		seen[url] = struct{}{}

		name := strings.TrimSpace(s.FileName)
		if name == "" {
			name = url[strings.LastIndex(url, "/")+1:]
		}
		out = append(out, Screenshot{FileURL: url, FileName: name})
	}
	return out
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
