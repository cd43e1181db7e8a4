package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type sample struct {
	Title   string `json:"title" validate:"required,fieldValidator"`
	DueDate string `json:"due_date" validate:"omitempty,dateValidator"`
}

func TestFieldValidatorRejectsWhitespaceOnlyValues(t *testing.T) {
	validate := New()

	for _, value := range []string{"   ", "\t", "\n"} {
		err := validate.Struct(sample{Title: value})
		if err == nil {
			t.Errorf("expected validation error for title %q, got none", value)
		}
	}
	if err := validate.Struct(sample{Title: "Groceries"}); err != nil {
		t.Errorf("expected no validation error for a non-empty title, got %v", err)
	}
}

func TestDateValidator(t *testing.T) {
	validate := New()

	valid := []string{"2026-09-01", "2025-01-31"}
	for _, value := range valid {
		if err := validate.Struct(sample{Title: "t", DueDate: value}); err != nil {
			t.Errorf("expected %q to be a valid date, got %v", value, err)
		}
	}
	invalid := []string{"2026-13-01", "01-09-2026", "tomorrow", "2026-09-01T10:00:00Z"}
	for _, value := range invalid {
		if err := validate.Struct(sample{Title: "t", DueDate: value}); err == nil {
			t.Errorf("expected %q to be rejected", value)
		}
	}
	// An empty due date is allowed.
	if err := validate.Struct(sample{Title: "t"}); err != nil {
		t.Errorf("expected an empty due date to be allowed, got %v", err)
	}
}

func TestErrorFieldNamesComeFromJSONTags(t *testing.T) {
	validate := New()

	err := validate.Struct(sample{Title: "", DueDate: "bad"})
	if err == nil {
		t.Fatal("expected a validation error")
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		t.Fatalf("expected validator.ValidationErrors, got %T", err)
	}
	fields := map[string]bool{}
	for _, fieldError := range validationErrors {
		fields[fieldError.Field()] = true
	}
	if !fields["title"] || !fields["due_date"] {
		t.Errorf("expected errors keyed by json field names, got %v", fields)
	}
}
