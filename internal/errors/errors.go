package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountDisabled is returned when the account status is not active.
	ErrAccountDisabled = errors.New("account disabled")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid, expired or revoked.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists is returned when creating a user with a taken email.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrSelfModify is returned when an admin tries to change their own role or status.
	ErrSelfModify = errors.New("cannot modify your own account")
	// ErrInvalidRole is returned for a role outside the known enumeration.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidStatus is returned for a status outside the known enumeration.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrNoUpdates is returned when an update request carries nothing to change.
	ErrNoUpdates = errors.New("no valid updates provided")
	// ErrForbiddenHost is returned when the target device is outside the local allow-list.
	ErrForbiddenHost = errors.New("only local network IPs are allowed")
	// ErrInvalidHost is returned for a syntactically invalid device address.
	ErrInvalidHost = errors.New("invalid IP address format")
	// ErrInvalidPort is returned for a port outside [1, 65535].
	ErrInvalidPort = errors.New("invalid port number")
	// ErrTextTooLong is returned when the print payload exceeds the limit.
	ErrTextTooLong = errors.New("text too long (max 1000 characters)")
	// ErrWrongPassword is returned when the current password does not verify.
	ErrWrongPassword = errors.New("current password is incorrect")
	// ErrWeakPassword is returned when a new password is too short.
	ErrWeakPassword = errors.New("new password must be at least 6 characters")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Device communication
// errors are mapped by the print handler, which owns their sub-reasons.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrAccountDisabled):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "ACCOUNT_DISABLED")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_REFRESH_TOKEN")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrSelfModify):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SELF_MODIFY")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	case errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	case errors.Is(err, ErrNoUpdates):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_UPDATES")
	case errors.Is(err, ErrForbiddenHost):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN_HOST")
	case errors.Is(err, ErrInvalidHost):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_HOST")
	case errors.Is(err, ErrInvalidPort):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PORT")
	case errors.Is(err, ErrTextTooLong):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "TEXT_TOO_LONG")
	case errors.Is(err, ErrWrongPassword):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "WRONG_PASSWORD")
	case errors.Is(err, ErrWeakPassword):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "WEAK_PASSWORD")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
