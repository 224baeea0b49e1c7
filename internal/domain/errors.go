package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"

	// Catalog errors
	CodeQuestionNotFound ErrorCode = "QUESTION_NOT_FOUND"
	CodeCategoryNotFound ErrorCode = "CATEGORY_NOT_FOUND"

	// Session errors
	CodeSessionNotFound    ErrorCode = "SESSION_NOT_FOUND"
	CodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"
	CodeConfirmRequired    ErrorCode = "CONFIRMATION_REQUIRED"

	// Export errors
	CodeExportFailed     ErrorCode = "EXPORT_FAILED"
	CodePDFUnavailable   ErrorCode = "PDF_UNAVAILABLE"
	CodePDFExportFailed  ErrorCode = "PDF_EXPORT_FAILED"
	CodeExportInProgress ErrorCode = "EXPORT_IN_PROGRESS"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DomainError with the same code, so callers
// can match with errors.Is(err, &DomainError{Code: CodeX}).
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithContext attaches a detail that is reported back to API clients.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// HasCode reports whether err carries the given domain error code.
func HasCode(err error, code ErrorCode) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == code
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewQuestionNotFoundError(questionID string) *DomainError {
	return NewError(CodeQuestionNotFound, fmt.Sprintf("Question not found with ID: %s", questionID), nil).
		WithContext("question_id", questionID)
}

func NewCategoryNotFoundError(categoryID string) *DomainError {
	return NewError(CodeCategoryNotFound, fmt.Sprintf("Category not found with ID: %s", categoryID), nil).
		WithContext("category_id", categoryID)
}

func NewSessionNotFoundError(sessionID string) *DomainError {
	return NewError(CodeSessionNotFound, fmt.Sprintf("Session not found with ID: %s", sessionID), nil).
		WithContext("session_id", sessionID)
}

func NewStorageUnavailableError(err error) *DomainError {
	return NewError(CodeStorageUnavailable, "Session storage is unavailable", err)
}

func NewExportFailedError(err error) *DomainError {
	return NewError(CodeExportFailed, "Failed to export report", err)
}

func NewPDFUnavailableError() *DomainError {
	return NewError(CodePDFUnavailable, "PDF export is not available, download the HTML report instead", nil).
		WithContext("fallback_format", "html")
}

func NewPDFExportFailedError(err error) *DomainError {
	return NewError(CodePDFExportFailed, "Failed to convert report to PDF, download the HTML report instead", err).
		WithContext("fallback_format", "html")
}

func NewExportInProgressError() *DomainError {
	return NewError(CodeExportInProgress, "Another PDF export is already running", nil)
}

func NewConfirmationRequiredError(action string) *DomainError {
	return NewError(CodeConfirmRequired, fmt.Sprintf("%s requires explicit confirmation, repeat the request with confirm=true", action), nil).
		WithContext("action", action)
}
