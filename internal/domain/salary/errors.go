package salary

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrComponentNotFound      = errors.New("salary component not found")
	ErrStructureNotFound      = errors.New("salary structure not found")
	ErrDuplicateCode          = errors.New("salary component code already exists")
	ErrUnsupportedCalculation = errors.New("formula calculation type is not supported")
	ErrUnsupportedSchema      = errors.New("unsupported salary storage schema version")
)

// FieldIssue names one invalid input field.
type FieldIssue struct {
	Field  string
	Reason string
}

// ValidationError collects every problem found in a component or structure input.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Field+": "+issue.Reason)
	}
	return "invalid salary input: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, reason string) {
	e.Issues = append(e.Issues, FieldIssue{Field: field, Reason: reason})
}

func (e *ValidationError) orNil() error {
	if e == nil || len(e.Issues) == 0 {
		return nil
	}
	return e
}

// PersistenceError reports a mutation that was rolled back because the state
// could not be written.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist salary state after %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
