package model

import "fmt"

// RecordError reports a malformed normalized record from the upstream
// collaborator. The codec itself never raises these: all missing fields
// are defaulted. They surface only when a payload cannot be decoded at
// the API boundary.
type RecordError struct {
	Kind    string // "invoice" or "bank"
	Field   string
	Message string
	Cause   error
}

func (e *RecordError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Kind, e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Field, e.Message)
}

func (e *RecordError) Unwrap() error {
	return e.Cause
}

// NewRecordError creates a new record error.
func NewRecordError(kind, field, message string, cause error) *RecordError {
	return &RecordError{
		Kind:    kind,
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}
