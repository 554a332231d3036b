// Package formweld provides custom error types for better error handling and reporting.
package formweld

import (
	"fmt"
	"strings"
)

// MalformedDocumentError reports a document tree that is missing an expected
// structural root (typically the body). The offending document must be
// discarded; it cannot be scanned or rendered.
type MalformedDocumentError struct {
	Document string
	Reason   string
}

func (e *MalformedDocumentError) Error() string {
	if e.Document != "" {
		return fmt.Sprintf("malformed document '%s': %s", e.Document, e.Reason)
	}
	return fmt.Sprintf("malformed document: %s", e.Reason)
}

// NewMalformedDocumentError creates a new malformed document error
func NewMalformedDocumentError(document, reason string) error {
	return &MalformedDocumentError{
		Document: document,
		Reason:   reason,
	}
}

// CorruptPackageError reports a byte buffer that could not be opened as a
// document package at all.
type CorruptPackageError struct {
	Name  string
	Cause error
}

func (e *CorruptPackageError) Error() string {
	if e.Name != "" && e.Cause != nil {
		return fmt.Sprintf("corrupt package '%s': %v", e.Name, e.Cause)
	} else if e.Cause != nil {
		return fmt.Sprintf("corrupt package: %v", e.Cause)
	}
	return fmt.Sprintf("corrupt package '%s'", e.Name)
}

func (e *CorruptPackageError) Unwrap() error {
	return e.Cause
}

// NewCorruptPackageError creates a new corrupt package error
func NewCorruptPackageError(name string, cause error) error {
	return &CorruptPackageError{
		Name:  name,
		Cause: cause,
	}
}

// EmptyDataSetError reports a composition attempted with zero data rows.
type EmptyDataSetError struct {
	Operation string
}

func (e *EmptyDataSetError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("empty data set: %s requires at least one row", e.Operation)
	}
	return "empty data set: at least one row is required"
}

// NewEmptyDataSetError creates a new empty data set error
func NewEmptyDataSetError(operation string) error {
	return &EmptyDataSetError{Operation: operation}
}

// DocumentError represents an error during document operations
type DocumentError struct {
	Operation string
	Path      string
	Cause     error
}

func (e *DocumentError) Error() string {
	if e.Path != "" && e.Cause != nil {
		return fmt.Sprintf("document error during %s of '%s': %v", e.Operation, e.Path, e.Cause)
	} else if e.Path != "" {
		return fmt.Sprintf("document error during %s of '%s'", e.Operation, e.Path)
	} else if e.Cause != nil {
		return fmt.Sprintf("document error during %s: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("document error during %s", e.Operation)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// NewDocumentError creates a new document error
func NewDocumentError(operation, path string, cause error) error {
	return &DocumentError{
		Operation: operation,
		Path:      path,
		Cause:     cause,
	}
}

// MultiError collects multiple errors
type MultiError struct {
	errors []error
}

// NewMultiError creates a new multi-error collector
func NewMultiError() *MultiError {
	return &MultiError{
		errors: make([]error, 0),
	}
}

// Add adds an error to the collection (ignores nil errors)
func (m *MultiError) Add(err error) {
	if err != nil {
		m.errors = append(m.errors, err)
	}
}

// Len returns the number of errors
func (m *MultiError) Len() int {
	return len(m.errors)
}

// Errors returns the collected errors
func (m *MultiError) Errors() []error {
	return m.errors
}

// Err returns the multi-error or nil if empty
func (m *MultiError) Err() error {
	if len(m.errors) == 0 {
		return nil
	}
	if len(m.errors) == 1 {
		return m.errors[0]
	}
	return m
}

func (m *MultiError) Error() string {
	if len(m.errors) == 0 {
		return "no errors"
	}

	if len(m.errors) == 1 {
		return m.errors[0].Error()
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d errors occurred:", len(m.errors)))
	for i, err := range m.errors {
		parts = append(parts, fmt.Sprintf("  [%d] %v", i+1, err))
	}
	return strings.Join(parts, "\n")
}

// ContextError adds context to an existing error
type ContextError struct {
	Operation string
	Context   map[string]interface{}
	Cause     error
}

func (e *ContextError) Error() string {
	var contextParts []string
	for k, v := range e.Context {
		contextParts = append(contextParts, fmt.Sprintf("%s=%v", k, v))
	}

	if len(contextParts) > 0 {
		return fmt.Sprintf("%s [%s]: %v", e.Operation, strings.Join(contextParts, ", "), e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Cause)
}

func (e *ContextError) Unwrap() error {
	return e.Cause
}

// WithContext wraps an error with additional context
func WithContext(err error, operation string, context map[string]interface{}) error {
	if err == nil {
		return nil
	}
	return &ContextError{
		Operation: operation,
		Context:   context,
		Cause:     err,
	}
}

// IsMalformedDocumentError checks if an error is a malformed document error
func IsMalformedDocumentError(err error) bool {
	_, ok := err.(*MalformedDocumentError)
	return ok
}

// IsCorruptPackageError checks if an error is a corrupt package error
func IsCorruptPackageError(err error) bool {
	_, ok := err.(*CorruptPackageError)
	return ok
}

// IsEmptyDataSetError checks if an error is an empty data set error
func IsEmptyDataSetError(err error) bool {
	_, ok := err.(*EmptyDataSetError)
	return ok
}

// IsDocumentError checks if an error is a document error
func IsDocumentError(err error) bool {
	_, ok := err.(*DocumentError)
	return ok
}
