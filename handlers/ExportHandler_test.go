package handlers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"TaskListWebService/response"
)

func exportFixture() []response.TaskView {
	due := "2026-09-05"
	return []response.TaskView{
		{Id: 1, Title: "Milk", Description: "2 bottles", DueDate: &due, IsComplete: false,
			ListId: 1, List: response.ListRef{Id: 1, Title: "Groceries"}},
		{Id: 2, Title: "Taxes", IsComplete: true,
			ListId: 2, List: response.ListRef{Id: 2, Title: "Paperwork"}},
	}
}

func TestRenderExportJSON(t *testing.T) {
	body, err := renderExport(exportFixture(), "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var tasks []response.TaskView
	if err := json.Unmarshal(body, &tasks); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(tasks) != 2 || tasks[0].Title != "Milk" {
		t.Errorf("unexpected export content: %v", tasks)
	}
}

func TestRenderExportCSV(t *testing.T) {
	body, err := renderExport(exportFixture(), "csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected a header and two rows, got %d lines", len(lines))
	}
	if lines[0] != "id,title,description,list,due_date,status" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "Pending") || !strings.Contains(lines[2], "Done") {
		t.Errorf("status labels missing from rows: %v", lines[1:])
	}
}

func TestRenderExportPDF(t *testing.T) {
	body, err := renderExport(exportFixture(), "pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(body, []byte("%PDF")) {
		t.Error("expected a PDF document")
	}
}

func TestRenderExportUnknownFormat(t *testing.T) {
	if _, err := renderExport(exportFixture(), "xml"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
