// Package commands contains the commands for the application to be used for request inputs.
package commands

// CreateListCommand represents a command to create a new list.
type CreateListCommand struct {
	Title       string `json:"title" validate:"required,max=100,fieldValidator"`
	Description string `json:"description" validate:"max=500"`
}

// UpdateListCommand represents a command to overwrite the mutable fields of a list.
type UpdateListCommand struct {
	Title       string `json:"title" validate:"required,max=100,fieldValidator"`
	Description string `json:"description" validate:"max=500"`
}
