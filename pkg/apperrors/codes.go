package apperrors

// ErrorCode - machine-readable error code returned to clients
type ErrorCode string

// Common, non-domain codes
const (
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"
	CodeUnknownError  ErrorCode = "UNKNOWN_ERROR"

	// Business-logic failures surfaced by the workflow services
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeDuplicateRequest   ErrorCode = "DUPLICATE_REQUEST"
	CodeInvalidArgument    ErrorCode = "INVALID_ARGUMENT"
	CodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	CodeInvalidStatus      ErrorCode = "INVALID_STATUS"
	CodeAccountDeactivated ErrorCode = "ACCOUNT_DEACTIVATED"

	// Authentication and authorization
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
)
