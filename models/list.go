// Package models contains the data models for the application to be used in request handling.
package models

// List represents a named collection of tasks owned by a single user.
// List has the following properties:
// - Id: The unique identifier of the list.
// - Title: The title of the list.
// - Description: The optional description of the list.
// - UserId: The identifier of the owning user. Never serialized.
type List struct {
	Id          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	UserId      int    `json:"-"`
}
