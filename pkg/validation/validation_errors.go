package validation

import (
	"errors"
	"fmt"

	"go-devconnector-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps JSON field names to user-facing labels
var FieldLabels = map[string]string{
	// Users
	"name":     "Name",
	"email":    "Email",
	"password": "Password",

	// Profile
	"status":         "Status",
	"skills":         "Skills",
	"githubusername": "Github username",

	// Experience / Education
	"title":        "Title",
	"company":      "Company",
	"school":       "School",
	"degree":       "Degree",
	"fieldofstudy": "Field of study",
	"from":         "From date",
	"to":           "To date",

	// Posts
	"text": "Text",
}

// Struct validates s and converts failures into an AppError listing every violated field.
func Struct(v *validator.Validate, s interface{}) error {
	if err := v.Struct(s); err != nil {
		return ToAppError(err)
	}
	return nil
}

// ToAppError converts validator errors into an apperror.Validation value.
func ToAppError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperror.BadRequest(err.Error())
	}
	return apperror.Validation(FormatValidationErrors(validationErrors))
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly violations
func FormatValidationErrors(validationErrors validator.ValidationErrors) []apperror.FieldViolation {
	violations := make([]apperror.FieldViolation, 0, len(validationErrors))
	for _, e := range validationErrors {
		violations = append(violations, apperror.FieldViolation{
			Field:   e.Field(),
			Message: formatSingleError(e),
		})
	}
	return violations
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required", "notblank", "csvlist":
		return fmt.Sprintf("%s is required", label)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)

	case "email":
		return fmt.Sprintf("%s must be a valid email address", label)

	case "url":
		return fmt.Sprintf("%s must be a valid URL", label)

	case "date":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", label)

	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s is invalid (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return fieldName
}
