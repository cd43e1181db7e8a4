package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"TaskListWebService/commands"
	"TaskListWebService/models"
	"TaskListWebService/response"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// parsePagination reads the page and per_page query parameters, falling back
// to page 1 with 10 rows when a value is missing or not a positive integer.
// per_page is capped so a single request cannot load the whole table.
func parsePagination(pageValue string, perPageValue string) (int, int) {
	page, err := strconv.Atoi(pageValue)
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(perPageValue)
	if err != nil || perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

// TaskIndexHandler handles the HTTP request for retrieving a page of the requester's tasks.
// It keeps track of the number of requests or errors using Prometheus counters.
// Each task row is joined with the id and title of its parent list. The
// response also carries the requester's full set of lists for the create/edit
// form's list selector, and any pending flash notice, returned once.
//
// The URL accepts query parameters "page" and "per_page" for pagination.
//
// Example request:
// GET /tasks?page=1&per_page=10
//
// Example response:
//
//	{
//	  "tasks": {
//	    "data": [
//	      {"id": 1, "title": "Milk", "description": "", "due_date": null,
//	       "is_complete": false, "list_id": 1, "list": {"id": 1, "title": "Groceries"}}
//	    ],
//	    "current_page": 1,
//	    "last_page": 1,
//	    "per_page": 10,
//	    "total": 1
//	  },
//	  "lists": [{"id": 1, "title": "Groceries"}]
//	}
func TaskIndexHandler(res http.ResponseWriter, req *http.Request, endPointCounter *prometheus.CounterVec, errorCounter *prometheus.CounterVec) {
	endPointCounter.WithLabelValues("/tasks").Inc()
	owner, err := authorize(req)
	if err != nil {
		errorCounter.WithLabelValues("/tasks").Inc()
		http.Error(res, "unauthorized user", http.StatusUnauthorized)
		return
	}
	page, perPage := parsePagination(req.URL.Query().Get("page"), req.URL.Query().Get("per_page"))

	taskPage, err := GetTaskPage(owner, page, perPage)
	if err != nil {
		errorCounter.WithLabelValues("/tasks").Inc()
		http.Error(res, err.Error(), http.StatusInternalServerError)
		log.WithFields(logrus.Fields{
			"operation": "get all tasks",
			"request":   "GET /tasks",
		}).Error(err.Error())
		return
	}
	lists, err := GetListRefs(owner)
	if err != nil {
		errorCounter.WithLabelValues("/tasks").Inc()
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}

	log.WithFields(logrus.Fields{
		"operation": "get all tasks",
		"request":   "GET /tasks",
		"user_id":   owner,
		"page":      page,
	}).Info("Processing request")
	writeJSON(res, http.StatusOK, response.TaskIndex{Tasks: taskPage, Lists: lists, Flash: popFlash(owner)})
}

// GetTaskPage retrieves one page of the owner's tasks joined with their
// parent list, plus the pagination metadata derived from the total count.
//
// Returns:
// - response.TaskPage: The page of tasks with pagination metadata.
// - error: An error if the SQL query execution fails.
func GetTaskPage(owner int, page int, perPage int) (response.TaskPage, error) {
	var total int
	err := db.QueryRow(`SELECT COUNT(*) FROM tasks t
		JOIN lists l ON l.id = t.list_id
		WHERE l.user_id = ?`, owner).Scan(&total)
	if err != nil {
		return response.TaskPage{}, fmt.Errorf("failed to count tasks: %v", err)
	}

	offset := (page - 1) * perPage
	rows, err := db.Query(`SELECT t.id, t.title, COALESCE(t.description, ''), t.due_date, t.is_complete, t.list_id, l.title
		FROM tasks t
		JOIN lists l ON l.id = t.list_id
		WHERE l.user_id = ?
		ORDER BY t.id
		LIMIT ? OFFSET ?`, owner, perPage, offset)
	if err != nil {
		return response.TaskPage{}, fmt.Errorf("failed to execute query: %v", err)
	}
	defer rows.Close()

	tasks := []response.TaskView{}
	for rows.Next() {
		var task response.TaskView
		var dueDate sql.NullString
		err := rows.Scan(&task.Id, &task.Title, &task.Description, &dueDate, &task.IsComplete, &task.ListId, &task.List.Title)
		if err != nil {
			return response.TaskPage{}, fmt.Errorf("failed to scan row into TaskView struct: %v", err)
		}
		if dueDate.Valid {
			value := dueDate.String
			task.DueDate = &value
		}
		task.List.Id = task.ListId
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return response.TaskPage{}, err
	}
	return response.NewTaskPage(tasks, page, perPage, total), nil
}

// GetListRefs retrieves the id and title of every list owned by the given user.
func GetListRefs(owner int) ([]response.ListRef, error) {
	rows, err := db.Query("SELECT id, title FROM lists WHERE user_id = ? ORDER BY id", owner)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %v", err)
	}
	defer rows.Close()

	lists := []response.ListRef{}
	for rows.Next() {
		var list response.ListRef
		if err := rows.Scan(&list.Id, &list.Title); err != nil {
			return nil, fmt.Errorf("failed to scan row into ListRef struct: %v", err)
		}
		lists = append(lists, list)
	}
	return lists, rows.Err()
}

// ownsList reports whether the given list belongs to the owner.
func ownsList(owner int, listId int) (bool, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM lists WHERE id = ? AND user_id = ?", listId, owner).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to execute query: %v", err)
	}
	return count > 0, nil
}

// CreateTaskHandler handles the HTTP request for creating a new task.
// It keeps track of the number of requests or errors using Prometheus counters.
// It reads the request body, validates the input fields, and sanitizes the
// inputs against XSS attacks. The title must be non-empty and list_id must
// reference one of the requester's own lists; a validation failure returns
// the field-level errors for inline display and persists nothing. On success
// a success flash is set for the requester.
//
// Example request body:
//
//	{
//	  "title": "Milk",
//	  "description": "",
//	  "list_id": 1,
//	  "due_date": "2026-09-05",
//	  "is_complete": false
//	}
func CreateTaskHandler(res http.ResponseWriter, req *http.Request, endPointCounter *prometheus.CounterVec, errorCounter *prometheus.CounterVec) {
	endPointCounter.WithLabelValues("/tasks").Inc()
	owner, err := authorize(req)
	if err != nil {
		errorCounter.WithLabelValues("/tasks").Inc()
		http.Error(res, "unauthorized user", http.StatusUnauthorized)
		return
	}

	command := commands.CreateTaskCommand{}
	err = json.NewDecoder(req.Body).Decode(&command)
	if err != nil {
		errorCounter.WithLabelValues("/tasks").Inc()
		http.Error(res, "Invalid request body", http.StatusBadRequest)
		log.WithFields(logrus.Fields{
			"operation": "create a task",
			"request":   "POST /tasks",
		}).Error("Invalid request body")
		return
	}
	command.Title = sanitizeField(command.Title)
	command.Description = sanitizeField(command.Description)
	err = validate.Struct(command)
	if err != nil {
		errorCounter.WithLabelValues("/tasks").Inc()
		log.WithFields(logrus.Fields{
			"operation": "create a task",
			"request":   "POST /tasks",
		}).Error("Invalid request body inputs")
		writeJSON(res, http.StatusUnprocessableEntity, response.NewValidationFailure(err))
		return
	}
	owned, err := ownsList(owner, command.ListId)
	if err != nil {
		errorCounter.WithLabelValues("/tasks").Inc()
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}
	if !owned {
		errorCounter.WithLabelValues("/tasks").Inc()
		log.WithFields(logrus.Fields{
			"operation": "create a task",
			"request":   "POST /tasks",
			"list_id":   command.ListId,
		}).Error("list does not belong to requester")
		writeJSON(res, http.StatusUnprocessableEntity, response.NewFieldFailure("list_id", "The selected list is invalid."))
		return
	}

	task := models.Task{
		Title:       command.Title,
		Description: command.Description,
		IsComplete:  command.IsComplete,
		ListId:      command.ListId,
	}
	if command.DueDate != "" {
		task.DueDate = &command.DueDate
	}
	err = CreateTask(&task)
	if err != nil {
		errorCounter.WithLabelValues("/tasks").Inc()
		http.Error(res, "Unsuccessful insert operation", http.StatusInternalServerError)
		log.WithFields(logrus.Fields{
			"operation": "create a task",
			"request":   "POST /tasks",
		}).Error(err.Error())
		return
	}
	setSuccessFlash(owner, "Task created successfully.")

	taskJSON, _ := json.Marshal(task)
	log.WithFields(logrus.Fields{
		"operation":    "create a task",
		"request body": string(taskJSON),
		"request":      "POST /tasks",
	}).Info("Processing request")
	writeJSON(res, http.StatusCreated, task)
}

// CreateTask inserts a new task into the database and fills in its assigned id.
//
// Returns:
// - error: An error if the SQL statement execution fails.
func CreateTask(task *models.Task) error {
	var dueDate interface{}
	if task.DueDate != nil {
		dueDate = *task.DueDate
	}
	result, err := db.Exec("INSERT INTO tasks(title, description, due_date, is_complete, list_id) VALUES(?, ?, ?, ?, ?)",
		task.Title, task.Description, dueDate, task.IsComplete, task.ListId)
	if err != nil {
		return fmt.Errorf("failed to execute SQL statement: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to retrieve the last inserted ID: %v", err)
	}
	task.Id = int(id)
	return nil
}

// UpdateTaskHandler handles the HTTP request for updating a task.
// It keeps track of the number of requests or errors using Prometheus counters.
// The client form submits the full field set, so every mutable field is
// overwritten, including the completion flag and a possible reassignment to
// another of the requester's lists. An empty description or due date clears
// the stored value. If the task does not belong to the requester through its
// list, nothing changes and the response status is NotFound.
//
// Example request:
// PUT /tasks/1
//
//	{
//	  "title": "Milk",
//	  "description": "2 bottles",
//	  "list_id": 1,
//	  "due_date": "",
//	  "is_complete": true
//	}
func UpdateTaskHandler(res http.ResponseWriter, req *http.Request, endPointCounter *prometheus.CounterVec, errorCounter *prometheus.CounterVec) {
	endPointCounter.WithLabelValues("/tasks/{id}").Inc()
	owner, err := authorize(req)
	if err != nil {
		errorCounter.WithLabelValues("/tasks/{id}").Inc()
		http.Error(res, "unauthorized user", http.StatusUnauthorized)
		return
	}
	taskId, err := strconv.Atoi(req.PathValue("id"))
	if err != nil {
		errorCounter.WithLabelValues("/tasks/{id}").Inc()
		http.Error(res, "Invalid task ID", http.StatusBadRequest)
		return
	}

	command := commands.UpdateTaskCommand{}
	err = json.NewDecoder(req.Body).Decode(&command)
	if err != nil {
		errorCounter.WithLabelValues("/tasks/{id}").Inc()
		http.Error(res, "Invalid request body", http.StatusBadRequest)
		return
	}
	command.Title = sanitizeField(command.Title)
	command.Description = sanitizeField(command.Description)
	err = validate.Struct(command)
	if err != nil {
		errorCounter.WithLabelValues("/tasks/{id}").Inc()
		writeJSON(res, http.StatusUnprocessableEntity, response.NewValidationFailure(err))
		return
	}
	// Reassignment target must be one of the requester's own lists.
	owned, err := ownsList(owner, command.ListId)
	if err != nil {
		errorCounter.WithLabelValues("/tasks/{id}").Inc()
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}
	if !owned {
		errorCounter.WithLabelValues("/tasks/{id}").Inc()
		writeJSON(res, http.StatusUnprocessableEntity, response.NewFieldFailure("list_id", "The selected list is invalid."))
		return
	}

	err = UpdateTask(owner, taskId, command)
	if err == errNotFound {
		errorCounter.WithLabelValues("/tasks/{id}").Inc()
		setErrorFlash(owner, "Task not found.")
		log.WithFields(logrus.Fields{
			"operation": "update a task",
			"request":   "PUT /tasks/{id}",
			"task_id":   taskId,
		}).Error("Task not found")
		writeJSON(res, http.StatusNotFound, response.ErrorResponse{Error: "Task not found."})
		return
	} else if err != nil {
		errorCounter.WithLabelValues("/tasks/{id}").Inc()
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}
	setSuccessFlash(owner, "Task updated successfully.")

	task := models.Task{
		Id:          taskId,
		Title:       command.Title,
		Description: command.Description,
		IsComplete:  command.IsComplete,
		ListId:      command.ListId,
	}
	if command.DueDate != "" {
		task.DueDate = &command.DueDate
	}
	log.WithFields(logrus.Fields{
		"operation": "update a task",
		"request":   "PUT /tasks/{id}",
		"task_id":   taskId,
	}).Info("Processing request")
	writeJSON(res, http.StatusOK, task)
}

// UpdateTask overwrites the mutable fields of one of the owner's tasks.
// Ownership is checked transitively through the task's current list, so a
// task id belonging to another user matches no row.
//
// Returns:
// - error: errNotFound if the task does not belong to the owner, or an error if the SQL statement execution fails.
func UpdateTask(owner int, taskId int, command commands.UpdateTaskCommand) error {
	var dueDate interface{}
	if command.DueDate != "" {
		dueDate = command.DueDate
	}
	result, err := db.Exec(`UPDATE tasks t
		JOIN lists l ON l.id = t.list_id
		SET t.title = ?, t.description = ?, t.due_date = ?, t.is_complete = ?, t.list_id = ?
		WHERE t.id = ? AND l.user_id = ?`,
		command.Title, command.Description, dueDate, command.IsComplete, command.ListId, taskId, owner)
	if err != nil {
		return fmt.Errorf("failed to execute SQL statement: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %v", err)
	}
	if affected == 0 {
		return errNotFound
	}
	return nil
}

// DeleteTaskHandler handles the HTTP request for deleting a task.
// It keeps track of the number of requests or errors using Prometheus counters.
// If the task does not belong to the requester through its list, the data
// store is left unchanged and the response status is NotFound.
//
// Example request:
// DELETE /tasks/1
func DeleteTaskHandler(res http.ResponseWriter, req *http.Request, endPointCounter *prometheus.CounterVec, errorCounter *prometheus.CounterVec) {
	endPointCounter.WithLabelValues("/tasks/{id}").Inc()
	owner, err := authorize(req)
	if err != nil {
		errorCounter.WithLabelValues("/tasks/{id}").Inc()
		http.Error(res, "unauthorized user", http.StatusUnauthorized)
		return
	}
	taskId, err := strconv.Atoi(req.PathValue("id"))
	if err != nil {
		errorCounter.WithLabelValues("/tasks/{id}").Inc()
		http.Error(res, "Invalid task ID", http.StatusBadRequest)
		return
	}

	err = DeleteTask(owner, taskId)
	if err == errNotFound {
		errorCounter.WithLabelValues("/tasks/{id}").Inc()
		setErrorFlash(owner, "Task not found.")
		writeJSON(res, http.StatusNotFound, response.ErrorResponse{Error: "Task not found."})
		return
	} else if err != nil {
		errorCounter.WithLabelValues("/tasks/{id}").Inc()
		http.Error(res, err.Error(), http.StatusInternalServerError)
		log.WithFields(logrus.Fields{
			"operation": "delete a task",
			"request":   "DELETE /tasks/{id}",
		}).Error(err.Error())
		return
	}
	setSuccessFlash(owner, "Task deleted successfully.")

	log.WithFields(logrus.Fields{
		"operation": "delete a task",
		"request":   "DELETE /tasks/{id}",
		"task_id":   taskId,
	}).Info("Processing request")
	writeJSON(res, http.StatusOK, response.Response{Message: fmt.Sprintf("Successfully deleted task with id=%d", taskId)})
}

// DeleteTask removes one of the owner's tasks. Ownership is checked
// transitively through the task's list.
//
// Returns:
// - error: errNotFound if the task does not belong to the owner, or an error if the SQL statement execution fails.
func DeleteTask(owner int, taskId int) error {
	result, err := db.Exec(`DELETE t FROM tasks t
		JOIN lists l ON l.id = t.list_id
		WHERE t.id = ? AND l.user_id = ?`, taskId, owner)
	if err != nil {
		return fmt.Errorf("failed to execute SQL statement: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %v", err)
	}
	if affected == 0 {
		return errNotFound
	}
	return nil
}
