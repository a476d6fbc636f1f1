package domain

import "errors"

var (
	ErrDuplicateAssignment    = errors.New("developer already assigned to project")
	ErrAssignFailed           = errors.New("failed to assign developer, please try again")
	ErrUpdateFailed           = errors.New("update failed, please try again")
	ErrDeveloperNotAssignable = errors.New("developer must be approved and available")
	ErrAssignmentNotFound     = errors.New("assignment not found")
	ErrProjectNotFound        = errors.New("project submission not found")
	ErrInvalidStatus          = errors.New("unknown assignment status")
	ErrInvalidTransition      = errors.New("assignment status change not allowed")
)
