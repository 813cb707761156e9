package errors

import "fmt"

// ErrorCode represents a curio error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrSlugExists     ErrorCode = "SLUG_EXISTS"     // 409
	ErrConflict       ErrorCode = "CONFLICT"        // 409
	ErrNotQueryBlock  ErrorCode = "NOT_QUERY_BLOCK" // 422
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// Error represents a structured error with code, status, and details.
type Error struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *Error {
	return &Error{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing post, page, or query block.
func NewNotFound(identifier string) *Error {
	return &Error{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewSlugExists creates a 409 error for page slug collisions.
func NewSlugExists(slug string) *Error {
	return &Error{
		Code:    ErrSlugExists,
		Status:  409,
		Message: fmt.Sprintf("page with slug %q already exists", slug),
		Details: map[string]any{"slug": slug},
	}
}

// NewConflict creates a 409 error for general conflicts.
func NewConflict(msg string) *Error {
	return &Error{
		Code:    ErrConflict,
		Status:  409,
		Message: msg,
	}
}

// NewNotQueryBlock creates a 422 error when a block is not a curated query.
func NewNotQueryBlock(identifier string) *Error {
	return &Error{
		Code:    ErrNotQueryBlock,
		Status:  422,
		Message: fmt.Sprintf("block %q is not a curated query block", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *Error {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &Error{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a curio Error with the given code.
func Is(err error, code ErrorCode) bool {
	if cErr, ok := err.(*Error); ok {
		return cErr.Code == code
	}
	return false
}
