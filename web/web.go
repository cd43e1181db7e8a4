// Package web serves the browser pages that drive the JSON API.
//
// The pages are plain HTML templates with embedded scripts. They hold only
// transient UI state (the modal's create/edit/submitting state and the toast
// timer); every successful mutation triggers a full re-fetch of the
// authoritative data from the server instead of mutating a local copy.
package web

import (
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// ListsPage serves the lists page.
func ListsPage(res http.ResponseWriter, req *http.Request) {
	render(res, "lists.html")
}

// TasksPage serves the tasks page.
func TasksPage(res http.ResponseWriter, req *http.Request) {
	render(res, "tasks.html")
}

func render(res http.ResponseWriter, name string) {
	res.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(res, name, nil); err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
	}
}
