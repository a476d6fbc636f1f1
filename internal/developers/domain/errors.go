package domain

import "errors"

var (
	ErrValidation   = errors.New("validation failed")
	ErrSubmitFailed = errors.New("failed to create profile, please try again")
	ErrUploadFailed = errors.New("upload failed, please try again")
	ErrUpdateFailed = errors.New("update failed, please try again")

	// ErrProfileAlreadyExists is only returned when a repeated onboarding
	// submission has nothing left to complete.
	ErrProfileAlreadyExists = errors.New("developer profile already exists")
	ErrProfileNotFound      = errors.New("developer profile not found")
	ErrDeveloperNotFound    = errors.New("developer not found")
	ErrInvalidStatus        = errors.New("status must be approved or rejected")
	ErrInvalidTransition    = errors.New("developer has already been reviewed")
)
