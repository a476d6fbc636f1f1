package domain

import "time"

type Status string

const (
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusAssigned:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// ownerTransitions are the moves the assigned developer may make.
var ownerTransitions = map[Status]Status{
	StatusAssigned:   StatusInProgress,
	StatusInProgress: StatusCompleted,
}

func (s Status) Valid() bool {
	switch s {
	case StatusAssigned, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether from -> to is a legal move.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OwnerMayTransition reports whether the assigned developer may make the move.
func OwnerMayTransition(from, to Status) bool {
	next, ok := ownerTransitions[from]
	return ok && next == to
}

type DeveloperSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type ProjectSummary struct {
	ID          string    `json:"id"`
	ProjectType string    `json:"project_type"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Company     *string   `json:"company,omitempty"`
	Timeline    string    `json:"timeline"`
	BudgetMin   *int      `json:"budget_min"`
	BudgetMax   *int      `json:"budget_max"`
	CreatedAt   time.Time `json:"created_at"`
}

// Assignment links one developer to one project submission.
type Assignment struct {
	ID                  string            `json:"id"`
	DeveloperID         string            `json:"developer_id"`
	ProjectSubmissionID string            `json:"project_submission_id"`
	Status              Status            `json:"status"`
	Notes               *string           `json:"notes,omitempty"`
	AssignedAt          time.Time         `json:"assigned_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
	Developer           *DeveloperSummary `json:"developer,omitempty"`
	Project             *ProjectSummary   `json:"project,omitempty"`
}
