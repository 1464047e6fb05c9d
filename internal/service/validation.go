package service

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/studiohq/studio-api/pkg/errors"
)

// invalidInput builds a 400 error carrying the full list of validation
// failures. Checks are run eagerly and reported together so the caller can
// fix everything in one round-trip.
func invalidInput(messages []string) error {
	return appErrors.WithDetails(appErrors.ErrValidation, map[string]interface{}{"errors": messages})
}

// enumerateValidation flattens validator.ValidationErrors into messages. Any
// other error is reported as-is.
func enumerateValidation(err error) []string {
	var fieldErrs validator.ValidationErrors
	if !asValidationErrors(err, &fieldErrs) {
		return []string{err.Error()}
	}
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "min":
			messages = append(messages, fmt.Sprintf("%s needs at least %s entries", field, fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", field))
		}
	}
	return messages
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return false
	}
	*target = fieldErrs
	return true
}
