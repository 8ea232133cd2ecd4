package service

import (
	"fmt"
	"regexp"

	apperrors "techcorp/internal/errors"
)

// ContactValidator validates contact form submissions.
type ContactValidator struct {
	emailRegex *regexp.Regexp
}

// NewContactValidator creates a new contact validator.
func NewContactValidator() *ContactValidator {
	return &ContactValidator{
		emailRegex: regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`),
	}
}

// Validate checks the required contact fields and the email shape.
func (v *ContactValidator) Validate(name, email, message string) error {
	if name == "" || email == "" || message == "" {
		return fmt.Errorf("%w: name, email, and message are required", apperrors.ErrValidation)
	}
	if !v.emailRegex.MatchString(email) {
		return fmt.Errorf("%w: please enter a valid email address", apperrors.ErrValidation)
	}
	return nil
}
