// Package errors provides the error taxonomy for inventory operations.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrProductNotFound is returned by update and delete when no row matches the id,
// and by the controller when an edit or delete targets an id outside the loaded list.
var ErrProductNotFound = errors.New("product not found")

// FieldProblem describes one rejected form field.
type FieldProblem struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError is returned when user input fails a business rule.
// Nothing is persisted when it is returned.
type ValidationError struct {
	Problems []FieldProblem
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Fields returns the problems keyed by field name.
func (e *ValidationError) Fields() map[string]string {
	out := make(map[string]string, len(e.Problems))
	for _, p := range e.Problems {
		out[p.Field] = p.Message
	}
	return out
}

// StorageFailure wraps any error raised by the storage engine.
type StorageFailure struct {
	Op  string
	Err error
}

func (e *StorageFailure) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageFailure) Unwrap() error { return e.Err }

// NewStorageFailure wraps err as a StorageFailure for op. A nil err yields nil.
func NewStorageFailure(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageFailure{Op: op, Err: err}
}

// IsStorageFailure reports whether err carries a StorageFailure.
func IsStorageFailure(err error) bool {
	var sf *StorageFailure
	return errors.As(err, &sf)
}

// AsValidation extracts a ValidationError from err.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
