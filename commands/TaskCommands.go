package commands

// CreateTaskCommand represents a command to create a new task in one of the
// requester's lists. DueDate, when present, must be a YYYY-MM-DD date.
type CreateTaskCommand struct {
	Title       string `json:"title" validate:"required,max=100,fieldValidator"`
	Description string `json:"description" validate:"max=500"`
	ListId      int    `json:"list_id" validate:"required"`
	DueDate     string `json:"due_date" validate:"omitempty,dateValidator"`
	IsComplete  bool   `json:"is_complete"`
}

// UpdateTaskCommand represents a command to update a task. The client form
// always submits the full field set, so every mutable field is carried,
// including a possible list reassignment.
type UpdateTaskCommand struct {
	Title       string `json:"title" validate:"required,max=100,fieldValidator"`
	Description string `json:"description" validate:"max=500"`
	ListId      int    `json:"list_id" validate:"required"`
	DueDate     string `json:"due_date" validate:"omitempty,dateValidator"`
	IsComplete  bool   `json:"is_complete"`
}
