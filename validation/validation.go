// Package validation contains custom validation functions for the application to use for input validation.
package validation

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// New returns a validator with the application's custom validators
// registered. Field names reported in validation errors are taken from the
// json struct tags so they match the names the client submitted.
func New() *validator.Validate {
	validate := validator.New()
	validate.RegisterValidation("fieldValidator", validator.Func(func(fl validator.FieldLevel) bool {
		return FieldValidator(fl)
	}))
	validate.RegisterValidation("dateValidator", validator.Func(func(fl validator.FieldLevel) bool {
		return DateValidator(fl)
	}))
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// FieldValidator is a validation function that checks if the field value is empty.
// It returns true if the field value is not empty after trimming whitespace, and false otherwise.
func FieldValidator(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return false
	}
	return true
}

// DateValidator checks that the field value is a calendar date in
// YYYY-MM-DD format, the format the date input submits.
func DateValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}
