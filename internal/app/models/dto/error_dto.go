package dto

import (
	"fmt"
	"time"

	"github.com/pioneer/admissions/internal/pkg/apperrors"
)

// ErrorCode represents standardized error codes
type ErrorCode string

// Standard error codes for the application
const (
	// Authentication errors
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeInvalidToken       ErrorCode = "AUTH_005"
	ErrorCodeExpiredToken       ErrorCode = "AUTH_006"
	ErrorCodeTokenNotFound      ErrorCode = "AUTH_007"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_008"
	ErrorCodeRevokedToken       ErrorCode = "AUTH_009"

	// Resource errors
	ErrorCodeResourceNotFound ErrorCode = "RES_001"

	// Validation errors
	ErrorCodeValidationFailed ErrorCode = "VAL_001"
	ErrorCodeBadRequest       ErrorCode = "BAD_REQUEST"

	// Upload errors
	ErrorCodeInvalidFileType ErrorCode = "UPL_001"
	ErrorCodeFileTooLarge    ErrorCode = "UPL_002"

	// Authorization errors
	ErrorCodeForbidden   ErrorCode = "FORBIDDEN"
	ErrorCodeNotApproved ErrorCode = "NOT_APPROVED"

	// Server errors
	ErrorCodeInternalServer ErrorCode = "SRV_001"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

// Severity levels
const (
	ErrorSeverityWarning ErrorSeverity = "WARNING"
	ErrorSeverityError   ErrorSeverity = "ERROR"
)

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Code     ErrorCode     `json:"code" example:"AUTH_001"`
	Message  string        `json:"message" example:"Invalid credentials."`
	Field    string        `json:"field,omitempty" example:"email"`
	Severity ErrorSeverity `json:"severity" example:"ERROR"`
	Details  interface{}   `json:"details,omitempty"`
}

// ErrorResponse represents the standard error response structure. Msg
// repeats the human-readable message at the top level for clients that
// only read msg.
type ErrorResponse struct {
	Success   bool         `json:"success" example:"false"`
	Msg       string       `json:"msg" example:"Invalid credentials."`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewErrorDetail creates a new error detail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{
		Code:     code,
		Message:  message,
		Severity: ErrorSeverityError,
	}
}

// WithField adds a field name to the error detail
func (e *ErrorDetail) WithField(field string) *ErrorDetail {
	e.Field = field
	return e
}

// WithSeverity sets the severity level of the error
func (e *ErrorDetail) WithSeverity(severity ErrorSeverity) *ErrorDetail {
	e.Severity = severity
	return e
}

// WithDetails adds additional details to the error
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// WithDetailf formats details as a string
func (e *ErrorDetail) WithDetailf(format string, args ...interface{}) *ErrorDetail {
	e.Details = fmt.Sprintf(format, args...)
	return e
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(errorDetail *ErrorDetail) *ErrorResponse {
	return &ErrorResponse{
		Success:   false,
		Msg:       errorDetail.Message,
		Error:     errorDetail,
		Timestamp: time.Now(),
	}
}

// MessageResponse is the bare {success, msg} shape used by the registration
// and credential routes.
type MessageResponse struct {
	Success bool   `json:"success" example:"false"`
	Msg     string `json:"msg" example:"Email already exists"`
}

// ValidationErrorResponse lists every field failure of a rejected payload
type ValidationErrorResponse struct {
	StatusCode int                    `json:"statusCode" example:"400"`
	Message    string                 `json:"message" example:"Validation Error"`
	Errors     []apperrors.FieldError `json:"errors"`
}

// NewValidationErrorResponse converts a validation error into its response body
func NewValidationErrorResponse(err *apperrors.ValidationError) *ValidationErrorResponse {
	fields := err.Fields
	if fields == nil {
		fields = []apperrors.FieldError{}
	}
	return &ValidationErrorResponse{
		StatusCode: 400,
		Message:    "Validation Error",
		Errors:     fields,
	}
}
