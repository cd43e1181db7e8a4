package response

// ListView is a list annotated with the number of tasks it holds, as shown
// on the lists page cards.
type ListView struct {
	Id          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TasksCount  int    `json:"tasks_count"`
}

// ListRef is the id/title pair joined onto task rows and used by the task
// form's list selector.
type ListRef struct {
	Id    int    `json:"id"`
	Title string `json:"title"`
}

// TaskView is a task row joined with its parent list for display.
type TaskView struct {
	Id          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
	IsComplete  bool    `json:"is_complete"`
	ListId      int     `json:"list_id"`
	List        ListRef `json:"list"`
}

// ListIndex is the body of GET /lists.
type ListIndex struct {
	Lists []ListView `json:"lists"`
	Flash *Flash     `json:"flash,omitempty"`
}

// TaskPage is one page of tasks plus its pagination metadata.
type TaskPage struct {
	Data        []TaskView `json:"data"`
	CurrentPage int        `json:"current_page"`
	LastPage    int        `json:"last_page"`
	PerPage     int        `json:"per_page"`
	Total       int        `json:"total"`
}

// TaskIndex is the body of GET /tasks. Lists carries the requester's full
// set of lists for the create/edit form's selector.
type TaskIndex struct {
	Tasks TaskPage  `json:"tasks"`
	Lists []ListRef `json:"lists"`
	Flash *Flash    `json:"flash,omitempty"`
}

// NewTaskPage assembles a TaskPage, deriving the last page number from the
// total row count. An empty result still reports page 1 as the last page.
func NewTaskPage(data []TaskView, page int, perPage int, total int) TaskPage {
	if data == nil {
		data = []TaskView{}
	}
	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}
	return TaskPage{
		Data:        data,
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     perPage,
		Total:       total,
	}
}
