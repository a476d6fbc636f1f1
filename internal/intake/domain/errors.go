package domain

import "errors"

var (
	// ErrValidation is returned before any store call when a form is
	// incomplete or malformed.
	ErrValidation = errors.New("validation failed")

	ErrSubmitFailed = errors.New("submission failed, please try again")
	ErrUpdateFailed = errors.New("update failed, please try again")
	ErrUploadFailed = errors.New("upload failed, please try again")

	ErrJobNotFound     = errors.New("job not found")
	ErrInquiryNotFound = errors.New("chat inquiry not found")
)
