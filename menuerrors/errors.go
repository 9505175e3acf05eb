// Package menuerrors defines the typed error taxonomy shared by the
// document store, reorder engine, session and persistence gateway.
package menuerrors

import (
	"errors"
	"fmt"
)

// ValidationError reports bad or missing input (empty name, empty columns,
// out-of-range index).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return "validation: " + e.Msg }

// Validationf builds a ValidationError from a format string
func Validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// DuplicateNameError reports a column add/rename collision
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return "duplicate column name: " + e.Name
}

// LastColumnError reports an attempt to delete a section's only column
type LastColumnError struct {
	Section string
}

func (e *LastColumnError) Error() string {
	return "cannot delete the last column of section " + e.Section
}

// NotFoundError reports an unknown section, item, menu or missing snapshot
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Resource + " not found"
	}
	return e.Resource + " " + e.ID + " not found"
}

// SlugInvalidError reports a slug that fails publish-time validation
type SlugInvalidError struct {
	Slug string
}

func (e *SlugInvalidError) Error() string {
	return "invalid slug " + e.Slug + ": must be lowercase letters, digits or dashes, at least 3 characters"
}

// SlugTakenError reports a slug already claimed by another menu
type SlugTakenError struct {
	Slug string
}

func (e *SlugTakenError) Error() string { return "slug already taken: " + e.Slug }

// PersistenceError wraps a gateway I/O failure
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return "persistence: " + e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
