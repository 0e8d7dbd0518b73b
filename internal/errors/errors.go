// Package errors provides a lightweight structured error type (BuildError)
// for category-based classification in the build orchestration and CLI.
package errors

import "fmt"

// Category classifies a BuildError for reporting.
type Category string

const (
	// User-facing configuration and input errors
	CategoryConfig     Category = "config"
	CategoryValidation Category = "validation"

	// Build and processing errors
	CategoryDocument   Category = "document"
	CategoryPagination Category = "pagination"
	CategoryRender     Category = "render"
	CategoryFileSystem Category = "filesystem"
	CategoryImage      Category = "image"

	CategoryInternal Category = "internal"
)

// BuildError is a structured error with a category and key/value context.
type BuildError struct {
	Category Category      `json:"category"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for BuildError.
type ContextFields map[string]any

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// Unwrap supports errors.Is/errors.As chains through the cause.
func (e *BuildError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error.
func (e *BuildError) WithContext(key string, value any) *BuildError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new BuildError.
func New(category Category, message string) *BuildError {
	return &BuildError{Category: category, Message: message}
}

// Wrap creates a new BuildError that wraps an existing error.
func Wrap(err error, category Category, message string) *BuildError {
	return &BuildError{Category: category, Message: message, Cause: err}
}
