package validation

import (
	"regexp"
	"strings"

	"task-management/internal/config"
)

// emailRegex covers practical email syntax; the unique index on the email
// column is the real gatekeeper against duplicates.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance using default limits
func NewValidator() *Validator {
	return &Validator{config: nil}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := len(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidEmail checks if a string is syntactically a valid email address
func (v *Validator) IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidID checks if an entity ID is valid (positive)
func (v *Validator) IsValidID(id int64) bool {
	return id > 0
}

// limits returns configured validation limits or defaults
func (v *Validator) limits() config.ValidationConfig {
	if v.config != nil {
		return v.config.Validation
	}
	return config.NewConfig().Validation
}
