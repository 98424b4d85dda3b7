package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrTaskNotFound is returned when a task does not exist.
	ErrTaskNotFound = errors.New("Task not found")
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("User not found")
	// ErrInvalidID is returned when a path parameter is not a valid task ID.
	ErrInvalidID = errors.New("Invalid task ID format")
	// ErrUserExists is returned when registering with a taken email or username.
	ErrUserExists = errors.New("User already exists with this email or username")
	// ErrUsernameTaken is returned when a profile update targets a taken username.
	ErrUsernameTaken = errors.New("Username is already taken")
	// ErrUsernameTooShort is returned when a profile update's username is
	// under three characters after trimming.
	ErrUsernameTooShort = errors.New("Username must be at least 3 characters long")
	// ErrInvalidCredentials is the single login failure. It is deliberately
	// identical for unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrWrongPassword is returned when the current password check fails on a
	// password change.
	ErrWrongPassword = errors.New("Current password is incorrect")
	// ErrInvalidStatus is returned when a status patch carries a value outside
	// the closed status set.
	ErrInvalidStatus = errors.New("Invalid status. Must be pending, in-progress, or completed")
)

// Token verification failures form a closed set so middleware can branch on
// kinds instead of matching error strings.
var (
	// ErrTokenMissing is returned when no usable bearer token is present.
	ErrTokenMissing = errors.New("Access denied. No token provided.")
	// ErrTokenMalformed is returned when the Authorization header does not
	// carry a "Bearer " prefix.
	ErrTokenMalformed = errors.New("Access denied. Invalid token format.")
	// ErrTokenInvalid is returned when the signature does not verify.
	ErrTokenInvalid = errors.New("Access denied. Invalid token.")
	// ErrTokenExpired is returned when the token is past its expiry.
	ErrTokenExpired = errors.New("Access denied. Token expired.")
)

// FieldError describes one violated validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the wire shape for every rejected request.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
	Message string       `json:"message,omitempty"`
}

// HTTPError pairs an ErrorResponse with a status code.
type HTTPError struct {
	StatusCode int
	Body       ErrorResponse
}

func (e *HTTPError) Error() string {
	return e.Body.Error
}

// NewHTTPError creates an HTTP error with a plain message body.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Body:       ErrorResponse{Error: message},
	}
}

// NewValidationError creates the batched 400 response for field violations.
func NewValidationError(details []FieldError) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusBadRequest,
		Body: ErrorResponse{
			Error:   "Validation failed",
			Details: details,
		},
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become an
// internal fault with the underlying message surfaced in the body.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrTaskNotFound), errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidID), errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrUsernameTooShort):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUserExists), errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrWrongPassword):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrTokenMissing), errors.Is(err, ErrTokenMalformed),
		errors.Is(err, ErrTokenInvalid), errors.Is(err, ErrTokenExpired):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Body: ErrorResponse{
				Error:   "Internal server error",
				Message: err.Error(),
			},
		}
	}
}
