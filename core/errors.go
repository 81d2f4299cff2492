package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return "validation failed"
	}
	return err.Err.Error()
}

// NotFoundError reports a missing student, class, location or fee record.
type NotFoundError struct {
	Resource string
}

func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

func (err NotFoundError) Error() string {
	return err.Resource + " not found"
}

func IsNotFound(err error) bool {
	_, ok := errors.Cause(err).(*NotFoundError)
	return ok
}

// ConflictError signals a uniqueness violation from a concurrent writer.
// The logical operation should be re-read and retried.
type ConflictError struct {
	Op string
}

func NewConflictError(op string) error {
	return &ConflictError{Op: op}
}

func (err ConflictError) Error() string {
	return "conflicting write: " + err.Op
}

func IsConflict(err error) bool {
	_, ok := errors.Cause(err).(*ConflictError)
	return ok
}

// StoreUnavailableError signals that the persistence layer cannot be reached.
type StoreUnavailableError struct {
	Err error
}

func NewStoreUnavailableError(err error) error {
	return &StoreUnavailableError{Err: err}
}

func (err StoreUnavailableError) Error() string {
	return "store unavailable"
}

func IsStoreUnavailable(err error) bool {
	_, ok := errors.Cause(err).(*StoreUnavailableError)
	return ok
}

// RetryOnConflict runs fn and, if it fails with a ConflictError, runs it once more.
func RetryOnConflict(fn func() error) error {
	err := fn()
	if IsConflict(err) {
		return fn()
	}
	return err
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
