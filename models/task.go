package models

// Task represents a work item belonging to exactly one list.
// Task has the following properties:
// - Id: The unique identifier of the task.
// - Title: The title of the task.
// - Description: The optional description of the task.
// - DueDate: The optional due date of the task in YYYY-MM-DD format.
// - IsComplete: Whether the task is done.
// - ListId: The identifier of the list the task belongs to.
type Task struct {
	Id          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
	IsComplete  bool    `json:"is_complete"`
	ListId      int     `json:"list_id"`
}
