package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailExists is returned when an email is already taken by a user or store.
	ErrEmailExists = errors.New("email already exists")
	// ErrStoreNotFound is returned when a referenced store does not exist.
	ErrStoreNotFound = errors.New("store not found")
	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidRating is returned when a rating value is outside [1,5].
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrNoStoreForOwner is returned when a store owner has no store assigned.
	ErrNoStoreForOwner = errors.New("no store found for this owner")
	// ErrWrongPassword is returned when the supplied current password does not match.
	ErrWrongPassword = errors.New("current password is incorrect")
	// ErrInvalidRole is returned when a role string is not one of the known roles.
	ErrInvalidRole = errors.New("invalid role")
)

// ValidationError is a field-rule violation with its own user-facing message.
// It is always raised before any datastore write.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

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

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors collapse
// to a generic internal error so no datastore detail leaks to clients.
func MapErrorToHTTP(err error) *HTTPError {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return NewHTTPError(http.StatusBadRequest, validationErr.Message, "VALIDATION_ERROR")
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrEmailExists):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_EXISTS")
	case errors.Is(err, ErrStoreNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "STORE_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrInvalidRating):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_RATING")
	case errors.Is(err, ErrNoStoreForOwner):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NO_STORE_FOR_OWNER")
	case errors.Is(err, ErrWrongPassword):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "WRONG_PASSWORD")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
