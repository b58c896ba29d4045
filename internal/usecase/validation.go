package usecase

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/jpher/readiness-funnel/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateSubmitAssessmentInput(input SubmitAssessmentInput) []ValidationError {
	var errors []ValidationError

	name := input.CanonicalName()
	if strings.TrimSpace(name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(strings.TrimSpace(input.Email)); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if !input.Scores.InBounds() {
		errors = append(errors, ValidationError{
			"scores",
			fmt.Sprintf("each dimension must be between 0 and %d", entity.MaxDimensionScore),
		})
	}

	return errors
}

func joinValidationErrors(errs []ValidationError) string {
	msg := "validation failed: "
	for _, e := range errs {
		msg += e.Field + " (" + e.Message + "), "
	}
	return strings.TrimSuffix(msg, ", ")
}
