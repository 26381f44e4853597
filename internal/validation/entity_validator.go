package validation

// EntityValidator provides validation for entity catalog operations
type EntityValidator struct {
	validator *Validator
}

// NewEntityValidator creates a new entity validator
func NewEntityValidator() *EntityValidator {
	return &EntityValidator{
		validator: NewValidator(),
	}
}

// ValidateEntityName validates an entity name for creation or rename
func (ev *EntityValidator) ValidateEntityName(name string) error {
	validationError := NewValidationError()

	trimmedName := ev.validator.TrimString(name)

	if !ev.validator.IsNonEmptyString(trimmedName) {
		validationError.AddRequiredError("entity_name")
		return validationError
	}

	if !ev.validator.IsValidNameLength(trimmedName) {
		validationError.AddInvalidLengthError("entity_name", trimmedName, 1, 255)
	}

	if !ev.validator.IsValidNameCharacters(trimmedName) {
		validationError.AddInvalidCharacterError("entity_name", trimmedName)
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidatePriority validates a priority value on the 1 to 5 scale
func (ev *EntityValidator) ValidatePriority(priority int) error {
	if !ev.validator.IsValidPriority(priority) {
		validationError := NewValidationError()
		validationError.AddInvalidRangeError("priority", priority, "must be between 1 (highest) and 5 (lowest)")
		return validationError
	}
	return nil
}

// ValidateTag validates a tag name
func (ev *EntityValidator) ValidateTag(tag string) error {
	validationError := NewValidationError()

	trimmedTag := ev.validator.TrimString(tag)

	if !ev.validator.IsNonEmptyString(trimmedTag) {
		validationError.AddRequiredError("tag")
		return validationError
	}

	if !ev.validator.IsValidTagFormat(trimmedTag) {
		validationError.AddInvalidFormatError("tag", trimmedTag, "lowercase letters, digits, hyphens and underscores")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// GetValidEntityName returns a cleaned entity name if valid
func (ev *EntityValidator) GetValidEntityName(name string) (string, error) {
	if err := ev.ValidateEntityName(name); err != nil {
		return "", err
	}
	return ev.validator.TrimString(name), nil
}

// GetValidTag returns a cleaned tag if valid
func (ev *EntityValidator) GetValidTag(tag string) (string, error) {
	if err := ev.ValidateTag(tag); err != nil {
		return "", err
	}
	return ev.validator.TrimString(tag), nil
}
