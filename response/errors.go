package response

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationFailure is the structured body returned with HTTP 422 when a
// request fails input validation. Errors is keyed by the json field name so
// the client form can render each message inline next to its input.
type ValidationFailure struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// NewValidationFailure translates a validator error into a per-field
// failure body. Non-validator errors produce an empty field map.
func NewValidationFailure(err error) *ValidationFailure {
	failure := &ValidationFailure{
		Message: "The given data was invalid.",
		Errors:  map[string][]string{},
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return failure
	}
	for _, fieldError := range validationErrors {
		field := fieldError.Field()
		failure.Errors[field] = append(failure.Errors[field], fieldMessage(field, fieldError.Tag()))
	}
	return failure
}

// NewFieldFailure builds a failure body for a single field, used when a
// check outside the struct validator fails, such as a list_id that does not
// resolve to one of the requester's lists.
func NewFieldFailure(field string, message string) *ValidationFailure {
	return &ValidationFailure{
		Message: "The given data was invalid.",
		Errors:  map[string][]string{field: {message}},
	}
}

func fieldMessage(field string, tag string) string {
	switch tag {
	case "required", "fieldValidator":
		return fmt.Sprintf("The %s field is required.", field)
	case "dateValidator":
		return fmt.Sprintf("The %s field must be a valid date (YYYY-MM-DD).", field)
	case "min":
		return fmt.Sprintf("The %s field is too short.", field)
	case "max":
		return fmt.Sprintf("The %s field is too long.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}
