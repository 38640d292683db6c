package apperrors

import "net/http"

// Predefined domain errors. Services return these; handlers map them to
// responses through HandleError.

// ErrInvalidCredentials is deliberately the single error for both
// unknown-email and wrong-password logins, so responses never reveal which
// branch failed.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrEmailAlreadyExists is a conflict, distinct from the auth taxonomy.
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

// ErrInvalidResetToken covers unknown or already consumed reset tokens.
var ErrInvalidResetToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid password reset token",
	http.StatusBadRequest,
)

var ErrExpiredResetToken = New(
	CodeTokenExpired,
	"auth",
	"Password reset token has expired",
	http.StatusBadRequest,
)

var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password must be at least 6 characters long",
	http.StatusBadRequest,
)

// ErrInvalidStatusTransition guards the forward-only onboarding state machine.
var ErrInvalidStatusTransition = New(
	CodeInvalidStatus,
	"user",
	"Status transition not allowed",
	http.StatusBadRequest,
)

// ErrMailDelivery surfaces mail transport failures outside the
// forgot-password flow without disclosing transport details.
var ErrMailDelivery = New(
	CodeExternalServiceError,
	"mail",
	"Mail service unavailable",
	http.StatusServiceUnavailable,
)
