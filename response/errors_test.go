package response

import (
	"testing"

	"TaskListWebService/commands"
	"TaskListWebService/validation"
)

func TestNewValidationFailureKeysErrorsByField(t *testing.T) {
	validate := validation.New()
	err := validate.Struct(commands.CreateTaskCommand{Title: "", ListId: 0, DueDate: "not-a-date"})
	if err == nil {
		t.Fatal("expected a validation error")
	}

	failure := NewValidationFailure(err)
	if failure.Message != "The given data was invalid." {
		t.Errorf("unexpected message %q", failure.Message)
	}
	for _, field := range []string{"title", "list_id", "due_date"} {
		if len(failure.Errors[field]) == 0 {
			t.Errorf("expected an inline error for field %q, got %v", field, failure.Errors)
		}
	}
}

func TestNewFieldFailure(t *testing.T) {
	failure := NewFieldFailure("list_id", "The selected list is invalid.")
	if got := failure.Errors["list_id"]; len(got) != 1 || got[0] != "The selected list is invalid." {
		t.Errorf("unexpected errors %v", failure.Errors)
	}
}
