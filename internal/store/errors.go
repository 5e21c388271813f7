package store

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// PageNotFoundError indicates a title or id lookup yielded no row.
// User-facing, non-fatal.
type PageNotFoundError struct {
	Title string
}

func (e *PageNotFoundError) Error() string {
	if e.Title == "" {
		return "page not found"
	}
	return fmt.Sprintf("page %q not found", e.Title)
}

// PageExistsError indicates a uniqueness violation on create or rename.
// Titles collide under case-insensitive comparison, so "Foo" and "FOO"
// are the same page. User-facing, non-fatal.
type PageExistsError struct {
	Title string
}

func (e *PageExistsError) Error() string {
	return fmt.Sprintf("a page called %q already exists", e.Title)
}

// ValidationError indicates a caller handed the store inconsistent
// input, such as a batch revision lookup naming ids that don't all
// exist. Should not occur under correct usage.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StoreUnavailableError wraps connection or transport failures. The
// operation may be retried once the store is reachable again.
type StoreUnavailableError struct {
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable: %v", e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a PageNotFoundError.
func IsNotFound(err error) bool {
	var e *PageNotFoundError
	return errors.As(err, &e)
}

// IsExists reports whether err is a PageExistsError.
func IsExists(err error) bool {
	var e *PageExistsError
	return errors.As(err, &e)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsUnavailable reports whether err is a StoreUnavailableError.
func IsUnavailable(err error) bool {
	var e *StoreUnavailableError
	return errors.As(err, &e)
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure, the signal behind PageExistsError on create and rename.
func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
		se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

// classify translates driver-level connection failures into
// StoreUnavailableError and leaves everything else untouched.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		switch se.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrCantOpen:
			return &StoreUnavailableError{Err: err}
		}
	}
	return err
}
