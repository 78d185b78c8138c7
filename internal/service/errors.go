package service

import (
	"errors"
	"fmt"

	"github.com/vocabdeck/vocabdeck-api/internal/store"
)

// Service sentinel errors. The API layer maps them to status codes.
var (
	// ErrNotOwned indicates a resource is owned by a different user than the one making the request.
	// API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrFolderNotFound indicates the folder does not exist.
	ErrFolderNotFound = errors.New("folder not found")

	// ErrStudySetNotFound indicates the study set does not exist.
	ErrStudySetNotFound = errors.New("study set not found")

	// ErrEmptyVocabulary is returned when a vocabulary list has no row with both
	// a term and a definition.
	ErrEmptyVocabulary = errors.New("at least one term with a definition is required")

	// ErrExamplesUnavailable is returned when no example generator is configured.
	ErrExamplesUnavailable = errors.New("example generation is not available")
)

// ServiceError wraps an unexpected failure with the operation that hit it.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "create_folder")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err for operation. Store not-found errors become the
// matching service sentinel and service sentinels pass through unwrapped.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, store.ErrFolderNotFound), errors.Is(err, ErrFolderNotFound):
		return ErrFolderNotFound
	case errors.Is(err, store.ErrStudySetNotFound), errors.Is(err, ErrStudySetNotFound):
		return ErrStudySetNotFound
	case errors.Is(err, ErrNotOwned):
		return ErrNotOwned
	case errors.Is(err, ErrEmptyVocabulary):
		return ErrEmptyVocabulary
	case errors.Is(err, ErrExamplesUnavailable):
		return ErrExamplesUnavailable
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
