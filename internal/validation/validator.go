package validation

import (
	"regexp"
	"strings"

	"timetrack/internal/config"
)

// Validator provides common validation utilities
type Validator struct {
	nameChars *regexp.Regexp
	tagFormat *regexp.Regexp
	config    *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return NewValidatorWithConfig(nil)
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		// Reject newlines, tabs and other control characters in names.
		nameChars: regexp.MustCompile(`^[a-zA-Z0-9 \-_./:,!?()]+$`),
		// Tags are lowercase identifiers so summaries group predictably.
		tagFormat: regexp.MustCompile(`^[a-z0-9][a-z0-9\-_]*$`),
		config:    cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidNameLength checks if an entity name length is within configured limits
func (v *Validator) IsValidNameLength(name string) bool {
	length := len(strings.TrimSpace(name))
	return length >= v.nameMinLength() && length <= v.nameMaxLength()
}

// IsValidNameCharacters checks if an entity name contains only allowed characters
func (v *Validator) IsValidNameCharacters(name string) bool {
	return v.nameChars.MatchString(name)
}

// IsValidTagFormat checks if a tag is a lowercase identifier
func (v *Validator) IsValidTagFormat(tag string) bool {
	return v.tagFormat.MatchString(tag)
}

// IsValidPriority checks if a priority sits inside the 1 to 5 scale
func (v *Validator) IsValidPriority(priority int) bool {
	return priority >= 1 && priority <= 5
}

// TrimString trims whitespace and returns the cleaned string
func (v *Validator) TrimString(s string) string {
	return strings.TrimSpace(s)
}

func (v *Validator) nameMinLength() int {
	if v.config != nil {
		return v.config.Validation.NameMinLength
	}
	return 1
}

func (v *Validator) nameMaxLength() int {
	if v.config != nil {
		return v.config.Validation.NameMaxLength
	}
	return 255
}
