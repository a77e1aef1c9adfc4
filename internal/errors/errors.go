// Package errors provides custom error types for the Expenses backend.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Entity errors.
var (
	ErrAccountNotFound     = &AppError{Code: "ACCOUNT_NOT_FOUND", Message: "Account not found", StatusCode: http.StatusNotFound}
	ErrCategoryNotFound    = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrPayeeNotFound       = &AppError{Code: "PAYEE_NOT_FOUND", Message: "Payee not found", StatusCode: http.StatusNotFound}
	ErrProjectNotFound     = &AppError{Code: "PROJECT_NOT_FOUND", Message: "Project not found", StatusCode: http.StatusNotFound}
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
)

// Restore errors.
var (
	ErrBackupNotFound   = &AppError{Code: "BACKUP_NOT_FOUND", Message: "Backup file not found", StatusCode: http.StatusNotFound}
	ErrBackupRead       = &AppError{Code: "BACKUP_READ_FAILED", Message: "Could not read backup file", StatusCode: http.StatusUnprocessableEntity}
	ErrBackupParse      = &AppError{Code: "BACKUP_PARSE_FAILED", Message: "Could not parse backup file", StatusCode: http.StatusUnprocessableEntity}
	ErrImportInProgress = &AppError{Code: "IMPORT_IN_PROGRESS", Message: "Another import is already running", StatusCode: http.StatusConflict}
	ErrJobNotFound      = &AppError{Code: "JOB_NOT_FOUND", Message: "Restore job not found", StatusCode: http.StatusNotFound}
)
