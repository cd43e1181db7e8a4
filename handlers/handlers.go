// Package handlers provides the HTTP request handlers for TaskListWebService.
//
// This package contains the implementation of the HTTP request handlers for managing
// lists and the tasks inside them (CRUD operations for both entities).
// It includes handlers for registration and login, list and task creation, retrieval,
// update, and deletion, and an export endpoint for the requester's tasks.
// The handlers interact with a MySQL database and use JWT tokens to identify the
// requesting user; every read and write is scoped to that user so one user can
// never observe or mutate another user's lists or tasks.
// The package also keeps a one-shot flash notice per user that is set by mutating
// requests and returned exactly once by the next index read.
//
// For more information on the available endpoints, please refer to the individual
// handler function documentation.
package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"os"
	"strings"

	"TaskListWebService/validation"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
)

var (
	db        *sql.DB
	log       = logrus.New()
	secretKey []byte
	validate  *validator.Validate
)

// errNotFound marks operations whose target id does not resolve to a row
// owned by the requester.
var errNotFound = errors.New("not found")

func Initialize() {
	validate = validation.New()

	log.SetLevel(logrus.InfoLevel)
	log.SetFormatter(&logrus.JSONFormatter{})

	secretKey = []byte(os.Getenv("SECRET_KEY"))

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "tasklists"
	}
	cfg := mysql.Config{
		User:                 os.Getenv("DB_USERNAME"),
		Passwd:               os.Getenv("DB_PASSWORD"),
		Net:                  "tcp",
		Addr:                 os.Getenv("DB_ADDRESS"),
		DBName:               dbName,
		AllowNativePasswords: true,
		// Affected-row counts must reflect matched rows, not changed rows,
		// for the ownership checks built on RowsAffected.
		ClientFoundRows: true,
	}
	var err error
	db, err = sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		log.Fatal(err)
	}

	pingErr := db.Ping()
	if pingErr != nil {
		log.Fatal(pingErr)
	}
	if err := migrate(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Connected!")
}

// sanitizeField trims and escapes a submitted text field to prevent XSS attacks.
func sanitizeField(value string) string {
	return html.EscapeString(strings.TrimSpace(value))
}

// writeJSON encodes v as the JSON response body with the given status code.
func writeJSON(res http.ResponseWriter, code int, v any) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(code)
	json.NewEncoder(res).Encode(v)
}
