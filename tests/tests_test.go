// Package tests contains black-box tests for the TaskListWebService application.
//
// The tests talk to a running instance of the service over HTTP, the way the
// web pages do. They cover the ownership rules (one user never observes or
// mutates another user's lists or tasks), the validation contract, the
// one-shot flash notices, and the full create/complete/delete scenario.
// When no instance is reachable the tests are skipped.
package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"testing"
	"time"
)

var client = &http.Client{Timeout: 10 * time.Second}

func baseURL() string {
	if url := os.Getenv("TASKLIST_BASE_URL"); url != "" {
		return url
	}
	return "http://localhost:8080"
}

// requireService skips the test when no service instance is reachable.
func requireService(t *testing.T) {
	t.Helper()
	if os.Getenv("TASKLIST_BASE_URL") != "" {
		return
	}
	conn, err := net.DialTimeout("tcp", "localhost:8080", time.Second)
	if err != nil {
		t.Skipf("service not reachable: %v", err)
	}
	conn.Close()
}

func doJSON(t *testing.T, method string, path string, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Error marshaling request body: %v", err)
		}
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, baseURL()+path, reader)
	if err != nil {
		t.Fatalf("Error creating HTTP request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	res, err := client.Do(req)
	if err != nil {
		t.Fatalf("Error making %s request: %v", method, err)
	}
	defer res.Body.Close()
	decoded := map[string]any{}
	json.NewDecoder(res.Body).Decode(&decoded)
	return res, decoded
}

// registerAndLogin creates a fresh user and returns its bearer token.
func registerAndLogin(t *testing.T) string {
	t.Helper()
	username := fmt.Sprintf("user%d", time.Now().UnixNano())
	credentials := map[string]any{"username": username, "password": "secret123"}
	res, _ := doJSON(t, "POST", "/register", "", credentials)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status code %d, got %d", http.StatusCreated, res.StatusCode)
	}
	res, body := doJSON(t, "POST", "/login", "", credentials)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, res.StatusCode)
	}
	token, ok := body["token"].(string)
	if !ok || token == "" {
		t.Fatal("Token field not found or not a string")
	}
	return token
}

func createList(t *testing.T, token string, title string) int {
	t.Helper()
	res, body := doJSON(t, "POST", "/lists", token, map[string]any{"title": title, "description": ""})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status code %d, got %d", http.StatusCreated, res.StatusCode)
	}
	id, ok := body["id"].(float64)
	if !ok || id == 0 {
		t.Fatal("id must be non-zero")
	}
	return int(id)
}

func listTitles(t *testing.T, token string) (map[string]float64, map[string]any) {
	t.Helper()
	res, body := doJSON(t, "GET", "/lists", token, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, res.StatusCode)
	}
	titles := map[string]float64{}
	lists, _ := body["lists"].([]any)
	for _, entry := range lists {
		list := entry.(map[string]any)
		titles[list["title"].(string)] = list["tasks_count"].(float64)
	}
	flash, _ := body["flash"].(map[string]any)
	return titles, flash
}

// TestCreateListSetsOneShotFlash verifies that a successful mutation leaves a
// flash notice that the very next read observes exactly once.
func TestCreateListSetsOneShotFlash(t *testing.T) {
	requireService(t)
	token := registerAndLogin(t)

	createList(t, token, "Groceries")

	_, flash := listTitles(t, token)
	if flash == nil || flash["success"] != "List created successfully." {
		t.Errorf("Expected the success flash on the first read, got %v", flash)
	}
	_, flash = listTitles(t, token)
	if flash != nil {
		t.Errorf("Expected no flash on the second read, got %v", flash)
	}
}

// TestCreateListValidation verifies that an empty title fails with per-field
// errors and persists nothing.
func TestCreateListValidation(t *testing.T) {
	requireService(t)
	token := registerAndLogin(t)

	res, body := doJSON(t, "POST", "/lists", token, map[string]any{"title": "   ", "description": "x"})
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("Expected status code %d, got %d", http.StatusUnprocessableEntity, res.StatusCode)
	}
	fieldErrors, _ := body["errors"].(map[string]any)
	if len(fieldErrors) == 0 || fieldErrors["title"] == nil {
		t.Errorf("Expected an inline error for the title field, got %v", body)
	}

	titles, _ := listTitles(t, token)
	if len(titles) != 0 {
		t.Errorf("Expected nothing persisted, got %v", titles)
	}
}

// TestUpdateListOverwritesSubmittedFields verifies that a successful update
// sets the list's title and description to exactly the submitted values and
// leaves its identifier unchanged.
func TestUpdateListOverwritesSubmittedFields(t *testing.T) {
	requireService(t)
	token := registerAndLogin(t)

	listId := createList(t, token, "Groceries")

	res, updated := doJSON(t, "PUT", fmt.Sprintf("/lists/%d", listId), token, map[string]any{
		"title": "Errands", "description": "Weekly shopping",
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, res.StatusCode)
	}
	if int(updated["id"].(float64)) != listId {
		t.Errorf("Expected the identifier to stay %d, got %v", listId, updated["id"])
	}

	res, body := doJSON(t, "GET", "/lists", token, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, res.StatusCode)
	}
	for _, entry := range body["lists"].([]any) {
		list := entry.(map[string]any)
		if int(list["id"].(float64)) != listId {
			continue
		}
		if list["title"] != "Errands" || list["description"] != "Weekly shopping" {
			t.Errorf("Expected exactly the submitted values, got title %q description %q",
				list["title"], list["description"])
		}
		return
	}
	t.Errorf("list %d not found after update", listId)
}

// TestRegisterDuplicateUsername verifies that registering an existing
// username returns Conflict instead of a server error.
func TestRegisterDuplicateUsername(t *testing.T) {
	requireService(t)
	username := fmt.Sprintf("user%d", time.Now().UnixNano())
	credentials := map[string]any{"username": username, "password": "secret123"}

	res, _ := doJSON(t, "POST", "/register", "", credentials)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status code %d, got %d", http.StatusCreated, res.StatusCode)
	}
	res, _ = doJSON(t, "POST", "/register", "", credentials)
	if res.StatusCode != http.StatusConflict {
		t.Errorf("Expected status code %d, got %d", http.StatusConflict, res.StatusCode)
	}
}

// TestOwnershipIsolation verifies that lists created by one user are never
// returned to another, and that cross-user update and delete leave the data
// store unchanged and return NotFound.
func TestOwnershipIsolation(t *testing.T) {
	requireService(t)
	tokenA := registerAndLogin(t)
	tokenB := registerAndLogin(t)

	listId := createList(t, tokenA, "Private")

	titles, _ := listTitles(t, tokenB)
	if _, found := titles["Private"]; found {
		t.Error("User B must not see user A's list")
	}

	res, _ := doJSON(t, "PUT", fmt.Sprintf("/lists/%d", listId), tokenB, map[string]any{"title": "Hijacked", "description": ""})
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, res.StatusCode)
	}
	res, _ = doJSON(t, "DELETE", fmt.Sprintf("/lists/%d", listId), tokenB, nil)
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, res.StatusCode)
	}

	titles, _ = listTitles(t, tokenA)
	if _, found := titles["Private"]; !found {
		t.Error("User A's list must be unchanged after user B's attempts")
	}
}

// TestTaskCreateRejectsForeignList verifies that creating a task against a
// list owned by another user fails and persists nothing.
func TestTaskCreateRejectsForeignList(t *testing.T) {
	requireService(t)
	tokenA := registerAndLogin(t)
	tokenB := registerAndLogin(t)

	listId := createList(t, tokenA, "Mine")

	res, body := doJSON(t, "POST", "/tasks", tokenB, map[string]any{
		"title": "Sneaky", "list_id": listId, "is_complete": false,
	})
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("Expected status code %d, got %d", http.StatusUnprocessableEntity, res.StatusCode)
	}
	fieldErrors, _ := body["errors"].(map[string]any)
	if fieldErrors["list_id"] == nil {
		t.Errorf("Expected an inline error for the list_id field, got %v", body)
	}

	titles, _ := listTitles(t, tokenA)
	if titles["Mine"] != 0 {
		t.Errorf("Expected the list to stay empty, got %v tasks", titles["Mine"])
	}
}

// TestListTaskScenario walks the full scenario: create a list, see it with a
// zero task count, add a task, see it joined with the list and pending, mark
// it done, then delete the list and verify the cascade removed its task.
func TestListTaskScenario(t *testing.T) {
	requireService(t)
	token := registerAndLogin(t)

	listId := createList(t, token, "Groceries")
	titles, _ := listTitles(t, token)
	if titles["Groceries"] != 0 {
		t.Fatalf("Expected tasks_count 0, got %v", titles["Groceries"])
	}

	res, created := doJSON(t, "POST", "/tasks", token, map[string]any{
		"title": "Milk", "list_id": listId, "description": "", "due_date": "", "is_complete": false,
	})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status code %d, got %d", http.StatusCreated, res.StatusCode)
	}
	taskId := int(created["id"].(float64))

	res, body := doJSON(t, "GET", "/tasks?page=1&per_page=10", token, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, res.StatusCode)
	}
	page := body["tasks"].(map[string]any)
	row := findTask(t, page, taskId)
	if row["list"].(map[string]any)["title"] != "Groceries" {
		t.Errorf("Expected the row joined with its list title, got %v", row["list"])
	}
	if row["is_complete"] != false {
		t.Error("Expected the new task to be pending")
	}

	res, _ = doJSON(t, "PUT", fmt.Sprintf("/tasks/%d", taskId), token, map[string]any{
		"title": "Milk", "list_id": listId, "description": "", "due_date": "", "is_complete": true,
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, res.StatusCode)
	}
	_, body = doJSON(t, "GET", "/tasks?page=1&per_page=10", token, nil)
	row = findTask(t, body["tasks"].(map[string]any), taskId)
	if row["is_complete"] != true {
		t.Error("Expected the task to show as done after the update")
	}

	res, _ = doJSON(t, "DELETE", fmt.Sprintf("/lists/%d", listId), token, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, res.StatusCode)
	}
	titles, _ = listTitles(t, token)
	if _, found := titles["Groceries"]; found {
		t.Error("Expected the list to be gone after deletion")
	}
	_, body = doJSON(t, "GET", "/tasks?page=1&per_page=10", token, nil)
	page = body["tasks"].(map[string]any)
	for _, entry := range page["data"].([]any) {
		if int(entry.(map[string]any)["id"].(float64)) == taskId {
			t.Error("Expected the list's tasks to be deleted with it")
		}
	}
}

func findTask(t *testing.T, page map[string]any, taskId int) map[string]any {
	t.Helper()
	for _, entry := range page["data"].([]any) {
		row := entry.(map[string]any)
		if int(row["id"].(float64)) == taskId {
			return row
		}
	}
	t.Fatalf("task %d not found in page %v", taskId, page)
	return nil
}
