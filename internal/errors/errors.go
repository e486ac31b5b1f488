package errors

import (
	"errors"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// Validation reports bad user input. The message is shown to the user as is.
func Validation(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusBadRequest}
}

func NotFound(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusNotFound}
}

// Forbidden never says why access was denied.
func Forbidden() error {
	return &ErrorWithStatusCode{Message: "Access denied", StatusCode: http.StatusForbidden}
}

func Unauthorized(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusUnauthorized}
}

// Integrity reports a write rejected by a database constraint, e.g. a duplicate username
// that slipped past the pre-check.
func Integrity(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusConflict}
}

// StatusCode returns the status carried by err, or 500 for anything else.
func StatusCode(err error) int {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

func hasStatus(err error, status int) bool {
	var e *ErrorWithStatusCode
	return errors.As(err, &e) && e.StatusCode == status
}

func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

func IsValidation(err error) bool {
	return hasStatus(err, http.StatusBadRequest)
}

func IsIntegrity(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}
