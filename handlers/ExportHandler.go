package handlers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"TaskListWebService/response"

	"github.com/jung-kurt/gofpdf"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// ExportTasksHandler handles the HTTP request for exporting the requester's tasks.
// It keeps track of the number of requests or errors using Prometheus counters.
// The URL accepts a "format" query parameter: json (default), csv or pdf.
// Every task the requester owns is exported, regardless of pagination.
//
// Example request:
// GET /tasks/export?format=csv
func ExportTasksHandler(res http.ResponseWriter, req *http.Request, endPointCounter *prometheus.CounterVec, errorCounter *prometheus.CounterVec) {
	endPointCounter.WithLabelValues("/tasks/export").Inc()
	owner, err := authorize(req)
	if err != nil {
		errorCounter.WithLabelValues("/tasks/export").Inc()
		http.Error(res, "unauthorized user", http.StatusUnauthorized)
		return
	}
	format := req.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	var total int
	err = db.QueryRow(`SELECT COUNT(*) FROM tasks t JOIN lists l ON l.id = t.list_id WHERE l.user_id = ?`, owner).Scan(&total)
	if err != nil {
		errorCounter.WithLabelValues("/tasks/export").Inc()
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}
	page, err := GetTaskPage(owner, 1, max(total, 1))
	if err != nil {
		errorCounter.WithLabelValues("/tasks/export").Inc()
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}

	body, err := renderExport(page.Data, format)
	if err != nil {
		errorCounter.WithLabelValues("/tasks/export").Inc()
		http.Error(res, err.Error(), http.StatusBadRequest)
		log.WithFields(logrus.Fields{
			"operation": "export tasks",
			"request":   "GET /tasks/export",
		}).Error(err.Error())
		return
	}

	switch strings.ToLower(format) {
	case "csv":
		res.Header().Set("Content-Type", "text/csv")
	case "pdf":
		res.Header().Set("Content-Type", "application/pdf")
	default:
		res.Header().Set("Content-Type", "application/json")
	}
	log.WithFields(logrus.Fields{
		"operation": "export tasks",
		"request":   "GET /tasks/export",
		"user_id":   owner,
		"format":    format,
	}).Info("Processing request")
	res.WriteHeader(http.StatusOK)
	res.Write(body)
}

// renderExport serializes the given task rows in the requested format.
func renderExport(tasks []response.TaskView, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return json.MarshalIndent(tasks, "", "  ")
	case "csv":
		var b strings.Builder
		w := csv.NewWriter(&b)
		_ = w.Write([]string{"id", "title", "description", "list", "due_date", "status"})
		for _, task := range tasks {
			dueDate := ""
			if task.DueDate != nil {
				dueDate = *task.DueDate
			}
			_ = w.Write([]string{fmt.Sprint(task.Id), task.Title, task.Description, task.List.Title, dueDate, statusLabel(task.IsComplete)})
		}
		w.Flush()
		return []byte(b.String()), nil
	case "pdf":
		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(40, 10, "Tasks")
		pdf.Ln(12)
		pdf.SetFont("Arial", "", 10)
		for _, task := range tasks {
			dueDate := "-"
			if task.DueDate != nil {
				dueDate = *task.DueDate
			}
			line := fmt.Sprintf("[%s] %s (%s) due %s", statusLabel(task.IsComplete), task.Title, task.List.Title, dueDate)
			pdf.MultiCell(0, 6, line, "0", "L", false)
		}
		var buf bytes.Buffer
		if err := pdf.Output(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown format %s", format)
	}
}

// statusLabel derives the display label from the completion flag.
func statusLabel(isComplete bool) string {
	if isComplete {
		return "Done"
	}
	return "Pending"
}
