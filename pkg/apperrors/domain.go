package apperrors

import "net/http"

// Factories and predefined errors for the transit domain.

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound and friends)
// into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict builds a domain-specific 409.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidStatus rejects a status value or transition the workflow does not
// allow.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// --- Auth / OTP flow ---

// ErrInvalidCredentials is deliberately identical for "no such user" and
// "wrong password" so the endpoint cannot be used for account enumeration.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrAccountExists covers both email and username collisions at signup and at
// OTP verification time.
var ErrAccountExists = New(
	CodeConflict,
	"auth",
	"An account with this email or username already exists",
	http.StatusConflict,
)

// ErrNoPendingAction - verify/resend called with no signup or signin in flight
// for this session. Also returned on replay after a successful verification.
var ErrNoPendingAction = New(
	CodeNoPendingAction,
	"otp",
	"No verification in progress for this session",
	http.StatusNotFound,
)

// ErrOTPExpired - the pending code is older than the validity window.
var ErrOTPExpired = New(
	CodeOTPExpired,
	"otp",
	"OTP has expired, please request a new one",
	http.StatusBadRequest,
)

// ErrOTPMismatch - submitted code does not match the stored one.
var ErrOTPMismatch = New(
	CodeOTPMismatch,
	"otp",
	"OTP code does not match",
	http.StatusUnauthorized,
)

// ErrWeakPassword - password shorter than the minimum length.
var ErrWeakPassword = New(
	CodeValidationFailed,
	"auth",
	"Password must be at least 6 characters long",
	http.StatusBadRequest,
)

// ErrUserSuspended - account exists but was suspended by an administrator.
var ErrUserSuspended = New(
	CodeForbidden,
	"auth",
	"Account is suspended",
	http.StatusForbidden,
)

// ErrEmailDeliveryFailed - the notification dispatcher could not send the OTP.
// The pending action survives so the user can retry via resend.
var ErrEmailDeliveryFailed = New(
	CodeExternalServiceError,
	"email",
	"Failed to send verification email",
	http.StatusInternalServerError,
)

// ErrInsufficientPermissions - a non-admin hit an admin-only endpoint.
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)
