package apperrors

import (
	"fmt"
	"net/http"
)

/*
Factories and predefined values for the business errors raised by the
workflow services.
*/

// =========================================================================
// Factories
// =========================================================================

// ErrInvalidArgument - request argument rejected by business rules (400)
func ErrInvalidArgument(domain, message string) *AppError {
	return New(CodeInvalidArgument, domain, message, http.StatusBadRequest)
}

// ErrInvalidTransition - status change outside the allowed table (409).
// Raised only when strict transitions are enabled.
func ErrInvalidTransition(domain string, from, to fmt.Stringer) *AppError {
	return New(CodeInvalidStatus, domain,
		fmt.Sprintf("Cannot change status from %s to %s", from, to),
		http.StatusConflict,
	).WithDetails(map[string]string{"from": from.String(), "to": to.String()})
}

// =========================================================================
// Predefined values
// =========================================================================

// --- Not found ---

var ErrUserNotFound = New(CodeNotFound, "user", "User not found", http.StatusNotFound)

var ErrPropertyNotFound = New(CodeNotFound, "property", "Property not found", http.StatusNotFound)

var ErrApplicationNotFound = New(CodeNotFound, "application", "Application not found", http.StatusNotFound)

var ErrViewingNotFound = New(CodeNotFound, "viewing", "Viewing request not found", http.StatusNotFound)

// ErrPropertyOrUserNotFound - submit/request/add referencing a missing property or user.
var ErrPropertyOrUserNotFound = New(CodeNotFound, "resource", "Property or user not found", http.StatusNotFound)

// --- Duplicate requests ---

var ErrDuplicateApplication = New(
	CodeDuplicateRequest,
	"application",
	"You already have an application for this property",
	http.StatusConflict,
)

var ErrDuplicateViewing = New(
	CodeDuplicateRequest,
	"viewing",
	"You already have a viewing request for this property",
	http.StatusConflict,
)

var ErrAlreadyFavorited = New(
	CodeDuplicateRequest,
	"favorite",
	"Property is already in favorites",
	http.StatusConflict,
)

var ErrEmailAlreadyExists = New(
	CodeDuplicateRequest,
	"auth",
	"Email already registered",
	http.StatusConflict,
)

// --- Invalid arguments ---

var ErrViewingDateNotInFuture = ErrInvalidArgument("viewing", "Viewing date must be in the future")

var ErrInvalidPriceRange = ErrInvalidArgument("property", "Minimum price cannot be greater than maximum price")

// --- Auth & account state ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid password",
	http.StatusUnauthorized,
)

var ErrAccountDeactivated = New(
	CodeAccountDeactivated,
	"auth",
	"Account is deactivated",
	http.StatusForbidden,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// --- Authorization ---

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrNotPropertyOwner = New(
	CodeForbidden,
	"property",
	"You don't have permission to update this property",
	http.StatusForbidden,
)

var ErrNotApplicant = New(
	CodeForbidden,
	"application",
	"Only the applicant can perform this action",
	http.StatusForbidden,
)

var ErrNotRequester = New(
	CodeForbidden,
	"viewing",
	"Only the requester or the property owner can perform this action",
	http.StatusForbidden,
)

var ErrCannotModifySelf = New(
	CodeForbidden,
	"user",
	"Operation on self is not allowed",
	http.StatusForbidden,
)
