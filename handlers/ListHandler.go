package handlers

import (
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

// ListIndexHandler handles the HTTP request for retrieving all lists owned by the requester.
// It keeps track of the number of requests or errors using Prometheus counters.
// Each list is annotated with the number of tasks it holds. The collection is
// never paginated. If a mutating request left a pending flash notice for the
// requester, it is returned once here and then discarded.
//
// Example request:
// GET /lists
//
// Example response:
//
//	{
//	  "lists": [
//	    {"id": 1, "title": "Groceries", "description": "", "tasks_count": 2}
//	  ],
//	  "flash": {"success": "List created successfully."}
//	}
func ListIndexHandler(res http.ResponseWriter, req *http.Request, endPointCounter *prometheus.CounterVec, errorCounter *prometheus.CounterVec) {
	endPointCounter.WithLabelValues("/lists").Inc()
	owner, err := authorize(req)
	if err != nil {
		errorCounter.WithLabelValues("/lists").Inc()
		http.Error(res, "unauthorized user", http.StatusUnauthorized)
		return
	}

	lists, err := GetListViews(owner)
	if err != nil {
		errorCounter.WithLabelValues("/lists").Inc()
		http.Error(res, err.Error(), http.StatusInternalServerError)
		log.WithFields(logrus.Fields{
			"operation": "get all lists",
			"request":   "GET /lists",
		}).Error(err.Error())
		return
	}

	log.WithFields(logrus.Fields{
		"operation": "get all lists",
		"request":   "GET /lists",
		"user_id":   owner,
	}).Info("Processing request")
	writeJSON(res, http.StatusOK, response.ListIndex{Lists: lists, Flash: popFlash(owner)})
}

// GetListViews retrieves all lists owned by the given user, each with its task count.
//
// Returns:
// - []response.ListView: The owner's lists annotated with task counts.
// - error: An error if the SQL query execution fails.
func GetListViews(owner int) ([]response.ListView, error) {
	rows, err := db.Query(`SELECT l.id, l.title, COALESCE(l.description, ''), COUNT(t.id)
		FROM lists l
		LEFT JOIN tasks t ON t.list_id = l.id
		WHERE l.user_id = ?
		GROUP BY l.id, l.title, l.description
		ORDER BY l.id`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %v", err)
	}
	defer rows.Close()

	lists := []response.ListView{}
	for rows.Next() {
		var list response.ListView
		err := rows.Scan(&list.Id, &list.Title, &list.Description, &list.TasksCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row into ListView struct: %v", err)
		}
		lists = append(lists, list)
	}
	return lists, rows.Err()
}

// CreateListHandler handles the HTTP request for creating a new list.
// It keeps track of the number of requests or errors using Prometheus counters.
// It reads the request body, validates the input fields, and sanitizes the
// inputs against XSS attacks. The title must be non-empty; a validation
// failure returns the field-level errors for inline display and persists
// nothing. On success a success flash is set for the requester.
//
// Example request body:
//
//	{
//	  "title": "Groceries",
//	  "description": "Weekly shopping"
//	}
func CreateListHandler(res http.ResponseWriter, req *http.Request, endPointCounter *prometheus.CounterVec, errorCounter *prometheus.CounterVec) {
	endPointCounter.WithLabelValues("/lists").Inc()
	owner, err := authorize(req)
	if err != nil {
		errorCounter.WithLabelValues("/lists").Inc()
		http.Error(res, "unauthorized user", http.StatusUnauthorized)
		return
	}

	command := commands.CreateListCommand{}
	err = json.NewDecoder(req.Body).Decode(&command)
	if err != nil {
		errorCounter.WithLabelValues("/lists").Inc()
		http.Error(res, "Invalid request body", http.StatusBadRequest)
		log.WithFields(logrus.Fields{
			"operation": "create a list",
			"request":   "POST /lists",
		}).Error("Invalid request body")
		return
	}
	command.Title = sanitizeField(command.Title)
	command.Description = sanitizeField(command.Description)
	err = validate.Struct(command)
	if err != nil {
		errorCounter.WithLabelValues("/lists").Inc()
		log.WithFields(logrus.Fields{
			"operation": "create a list",
			"request":   "POST /lists",
		}).Error("Invalid request body inputs")
		writeJSON(res, http.StatusUnprocessableEntity, response.NewValidationFailure(err))
		return
	}

	list := models.List{Title: command.Title, Description: command.Description, UserId: owner}
	err = CreateList(&list)
	if err != nil {
		errorCounter.WithLabelValues("/lists").Inc()
		http.Error(res, "Unsuccessful insert operation", http.StatusInternalServerError)
		log.WithFields(logrus.Fields{
			"operation": "create a list",
			"request":   "POST /lists",
		}).Error(err.Error())
		return
	}
	setSuccessFlash(owner, "List created successfully.")

	listJSON, _ := json.Marshal(list)
	log.WithFields(logrus.Fields{
		"operation":    "create a list",
		"request body": string(listJSON),
		"request":      "POST /lists",
	}).Info("Processing request")
	writeJSON(res, http.StatusCreated, list)
}

// CreateList inserts a new list into the database and fills in its assigned id.
//
// Returns:
// - error: An error if the SQL statement execution fails.
func CreateList(list *models.List) error {
	result, err := db.Exec("INSERT INTO lists(title, description, user_id) VALUES(?, ?, ?)",
		list.Title, list.Description, list.UserId)
	if err != nil {
		return fmt.Errorf("failed to execute SQL statement: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to retrieve the last inserted ID: %v", err)
	}
	list.Id = int(id)
	return nil
}

// UpdateListHandler handles the HTTP request for updating a list.
// It keeps track of the number of requests or errors using Prometheus counters.
// It overwrites the list's title and description with exactly the submitted
// values; the identifier and owner never change. If the list does not belong
// to the requester, nothing changes, the response status is NotFound and an
// error flash is set.
//
// Example request:
// PUT /lists/1
//
//	{
//	  "title": "Groceries",
//	  "description": "Weekly shopping, updated"
//	}
func UpdateListHandler(res http.ResponseWriter, req *http.Request, endPointCounter *prometheus.CounterVec, errorCounter *prometheus.CounterVec) {
	endPointCounter.WithLabelValues("/lists/{id}").Inc()
	owner, err := authorize(req)
	if err != nil {
		errorCounter.WithLabelValues("/lists/{id}").Inc()
		http.Error(res, "unauthorized user", http.StatusUnauthorized)
		return
	}
	listId, err := strconv.Atoi(req.PathValue("id"))
	if err != nil {
		errorCounter.WithLabelValues("/lists/{id}").Inc()
		http.Error(res, "Invalid list ID", http.StatusBadRequest)
		return
	}

	command := commands.UpdateListCommand{}
	err = json.NewDecoder(req.Body).Decode(&command)
	if err != nil {
		errorCounter.WithLabelValues("/lists/{id}").Inc()
		http.Error(res, "Invalid request body", http.StatusBadRequest)
		return
	}
	command.Title = sanitizeField(command.Title)
	command.Description = sanitizeField(command.Description)
	err = validate.Struct(command)
	if err != nil {
		errorCounter.WithLabelValues("/lists/{id}").Inc()
		writeJSON(res, http.StatusUnprocessableEntity, response.NewValidationFailure(err))
		return
	}

	err = UpdateList(owner, listId, command.Title, command.Description)
	if err == errNotFound {
		errorCounter.WithLabelValues("/lists/{id}").Inc()
		setErrorFlash(owner, "List not found.")
		log.WithFields(logrus.Fields{
			"operation": "update a list",
			"request":   "PUT /lists/{id}",
			"list_id":   listId,
		}).Error("List not found")
		writeJSON(res, http.StatusNotFound, response.ErrorResponse{Error: "List not found."})
		return
	} else if err != nil {
		errorCounter.WithLabelValues("/lists/{id}").Inc()
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}
	setSuccessFlash(owner, "List updated successfully.")

	log.WithFields(logrus.Fields{
		"operation": "update a list",
		"request":   "PUT /lists/{id}",
		"list_id":   listId,
	}).Info("Processing request")
	writeJSON(res, http.StatusOK, models.List{Id: listId, Title: command.Title, Description: command.Description, UserId: owner})
}

// UpdateList overwrites the mutable fields of one of the owner's lists.
// The statement is scoped to the owner so a foreign id matches no row.
//
// Returns:
// - error: errNotFound if the list does not belong to the owner, or an error if the SQL statement execution fails.
func UpdateList(owner int, listId int, title string, description string) error {
	result, err := db.Exec("UPDATE lists SET title = ?, description = ? WHERE id = ? AND user_id = ?",
		title, description, listId, owner)
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

// DeleteListHandler handles the HTTP request for deleting a list.
// It keeps track of the number of requests or errors using Prometheus counters.
// Deleting a list also deletes every task in it, in the same transaction.
// If the list does not belong to the requester, the data store is left
// unchanged and the response status is NotFound.
//
// Example request:
// DELETE /lists/1
func DeleteListHandler(res http.ResponseWriter, req *http.Request, endPointCounter *prometheus.CounterVec, errorCounter *prometheus.CounterVec) {
	endPointCounter.WithLabelValues("/lists/{id}").Inc()
	owner, err := authorize(req)
	if err != nil {
		errorCounter.WithLabelValues("/lists/{id}").Inc()
		http.Error(res, "unauthorized user", http.StatusUnauthorized)
		return
	}
	listId, err := strconv.Atoi(req.PathValue("id"))
	if err != nil {
		errorCounter.WithLabelValues("/lists/{id}").Inc()
		http.Error(res, "Invalid list ID", http.StatusBadRequest)
		return
	}

	err = DeleteList(owner, listId)
	if err == errNotFound {
		errorCounter.WithLabelValues("/lists/{id}").Inc()
		setErrorFlash(owner, "List not found.")
		writeJSON(res, http.StatusNotFound, response.ErrorResponse{Error: "List not found."})
		return
	} else if err != nil {
		errorCounter.WithLabelValues("/lists/{id}").Inc()
		http.Error(res, err.Error(), http.StatusInternalServerError)
		log.WithFields(logrus.Fields{
			"operation": "delete a list",
			"request":   "DELETE /lists/{id}",
		}).Error(err.Error())
		return
	}
	setSuccessFlash(owner, "List deleted successfully.")

	log.WithFields(logrus.Fields{
		"operation": "delete a list",
		"request":   "DELETE /lists/{id}",
		"list_id":   listId,
	}).Info("Processing request")
	writeJSON(res, http.StatusOK, response.Response{Message: fmt.Sprintf("Successfully deleted list with id=%d", listId)})
}

// DeleteList removes one of the owner's lists and all of its tasks in a
// single transaction. Tasks go first so the list row is only removed
// together with its children.
//
// Returns:
// - error: errNotFound if the list does not belong to the owner, or an error if the transaction fails.
func DeleteList(owner int, listId int) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`DELETE t FROM tasks t
		JOIN lists l ON l.id = t.list_id
		WHERE l.id = ? AND l.user_id = ?`, listId, owner)
	if err != nil {
		return fmt.Errorf("failed to execute SQL statement: %v", err)
	}
	result, err := tx.Exec("DELETE FROM lists WHERE id = ? AND user_id = ?", listId, owner)
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
	return tx.Commit()
}
