package model

import (
	"errors"
	"fmt"
	"net/http"
)

// MineralError is the base error of the mineral domain.
type MineralError struct {
	Code    string // unique code, e.g. "MINERAL_NOT_FOUND"
	Message string // human-readable message
	Err     error  // underlying error
}

// Error implements error interface
func (e *MineralError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap allows error wrapping compatibility
func (e *MineralError) Unwrap() error {
	return e.Err
}

// ============================================
// DOMAIN-SPECIFIC ERROR DEFINITIONS
// ============================================

var ErrMineralNotFound = &MineralError{
	Code:    "MINERAL_NOT_FOUND",
	Message: "Mineral not found",
}

var ErrInvalidMineralID = &MineralError{
	Code:    "INVALID_MINERAL_ID",
	Message: "Invalid mineral ID",
}

var ErrInvalidMineral = &MineralError{
	Code:    "INVALID_MINERAL",
	Message: "Mineral data is invalid",
}

var ErrInvalidExportFormat = &MineralError{
	Code:    "INVALID_EXPORT_FORMAT",
	Message: "Unsupported export format",
}

var ErrStorageUnavailable = &MineralError{
	Code:    "STORAGE_UNAVAILABLE",
	Message: "No database is attached",
}

// ============================================
// ERROR FACTORY FUNCTIONS
// ============================================

// NewInvalidMineralID builds an INVALID_MINERAL_ID error for the raw input.
func NewInvalidMineralID(raw string) *MineralError {
	return &MineralError{
		Code:    "INVALID_MINERAL_ID",
		Message: fmt.Sprintf("Invalid mineral ID: %q", raw),
	}
}

// NewInvalidMineral wraps a validation failure.
func NewInvalidMineral(err error) *MineralError {
	return &MineralError{
		Code:    "INVALID_MINERAL",
		Message: "Mineral data is invalid",
		Err:     err,
	}
}

// NewInvalidExportFormat names the rejected format.
func NewInvalidExportFormat(format string) *MineralError {
	return &MineralError{
		Code:    "INVALID_EXPORT_FORMAT",
		Message: fmt.Sprintf("Unsupported export format: %q", format),
	}
}

// NewStorageError wraps a persistence failure.
func NewStorageError(op string, err error) *MineralError {
	return &MineralError{
		Code:    "STORAGE_ERROR",
		Message: fmt.Sprintf("Storage operation %s failed", op),
		Err:     err,
	}
}

// ============================================
// ERROR CHECKING FUNCTIONS
// ============================================

func hasCode(err error, code string) bool {
	var mErr *MineralError
	return errors.As(err, &mErr) && mErr.Code == code
}

func IsMineralNotFound(err error) bool     { return hasCode(err, "MINERAL_NOT_FOUND") }
func IsInvalidMineralID(err error) bool    { return hasCode(err, "INVALID_MINERAL_ID") }
func IsInvalidMineral(err error) bool      { return hasCode(err, "INVALID_MINERAL") }
func IsInvalidExportFormat(err error) bool { return hasCode(err, "INVALID_EXPORT_FORMAT") }
func IsStorageUnavailable(err error) bool  { return hasCode(err, "STORAGE_UNAVAILABLE") }

// GetErrorCode returns the domain code or "UNKNOWN_ERROR".
func GetErrorCode(err error) string {
	var mErr *MineralError
	if errors.As(err, &mErr) {
		return mErr.Code
	}
	return "UNKNOWN_ERROR"
}

// MapErrorToHTTP maps a domain error to status code, message and code.
func MapErrorToHTTP(err error) (int, string, string) {
	if err == nil {
		return http.StatusOK, "Success", ""
	}

	var mErr *MineralError
	switch {
	case IsMineralNotFound(err):
		return http.StatusNotFound, "Mineral not found", GetErrorCode(err)
	case IsInvalidMineralID(err), IsInvalidMineral(err), IsInvalidExportFormat(err):
		errors.As(err, &mErr)
		return http.StatusBadRequest, mErr.Error(), mErr.Code
	case IsStorageUnavailable(err):
		return http.StatusServiceUnavailable, ErrStorageUnavailable.Message, GetErrorCode(err)
	case errors.As(err, &mErr):
		return http.StatusInternalServerError, mErr.Message, mErr.Code
	default:
		return http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR"
	}
}
