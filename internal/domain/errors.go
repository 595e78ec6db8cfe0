package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrCollaborator = errors.New("storage request failed")
	ErrUnauthorized = errors.New("unauthorized")
)

// DefaultCollaboratorMessage is shown when the storage service gave no message.
const DefaultCollaboratorMessage = "request failed"

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates a local precondition failed.
	// It is reported before the storage service is contacted.
	ValidationError struct {
		Field   string
		Message string
	}
)

func (e *NotFoundError) Error() string   { return e.Message }
func (e *ValidationError) Error() string { return e.Message }

func (e *NotFoundError) StatusCode() int   { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

func (e *NotFoundError) Is(target error) bool   { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // folder or file
	ResourceID   int64  // ID of the existing/conflicting resource
}

func (e *ConflictError) Error() string {
	return e.Message
}

func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// CollaboratorError reports a failed call to the storage service.
// Message carries the server-provided text when there was one.
type CollaboratorError struct {
	Op      string // collaborator operation, e.g. "createFolder"
	Status  int    // HTTP status or envelope code, 0 when the request never completed
	Message string
	Err     error
}

func (e *CollaboratorError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = DefaultCollaboratorMessage
	}
	if e.Op == "" {
		return msg
	}
	return e.Op + ": " + msg
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

func (e *CollaboratorError) StatusCode() int {
	if e.Status >= 400 && e.Status < 600 {
		return e.Status
	}
	return http.StatusBadGateway
}

func (e *CollaboratorError) Is(target error) bool {
	return target == ErrCollaborator
}

// UserMessage returns the text shown to the user: the server message, or the fallback.
func (e *CollaboratorError) UserMessage() string {
	if e.Message == "" {
		return DefaultCollaboratorMessage
	}
	return e.Message
}

// AsCollaboratorError normalizes any storage failure into a CollaboratorError.
// Errors that already are CollaboratorErrors are returned unchanged.
func AsCollaboratorError(op string, err error) *CollaboratorError {
	if err == nil {
		return nil
	}
	var collabErr *CollaboratorError
	if errors.As(err, &collabErr) {
		return collabErr
	}

	status := 0
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.StatusCode()
	}
	return &CollaboratorError{
		Op:      op,
		Status:  status,
		Message: err.Error(),
		Err:     err,
	}
}
