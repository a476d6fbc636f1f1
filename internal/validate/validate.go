// Package validate wraps the validator used by gin bindings for the handful of
// syntactic checks services make outside of request binding.
package validate

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = validator.New()

// Email reports whether s is a syntactically valid email address.
func Email(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return v.Var(s, "email") == nil
}

// URL reports whether s is an absolute http(s) URL.
func URL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return v.Var(s, "http_url") == nil
}

// OptionalURL accepts blank input or a valid URL.
func OptionalURL(s string) bool {
	return strings.TrimSpace(s) == "" || URL(s)
}
