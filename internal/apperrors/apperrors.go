package apperrors

import (
	"errors"
	"net/http"
)

// Detail points at the field a validation issue refers to.
type Detail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a classified application error with a stable machine-readable
// code and the HTTP status it maps to.
type Error struct {
	Code       string
	Message    string
	StatusCode int
	Details    []Detail
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(message string, details ...Detail) *Error {
	return &Error{Code: "VALIDATION_ERROR", Message: message, StatusCode: http.StatusBadRequest, Details: details}
}

func Unauthorized(message string) *Error {
	return &Error{Code: "UNAUTHORIZED", Message: message, StatusCode: http.StatusUnauthorized}
}

func InvalidCredentials() *Error {
	return &Error{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
}

func Forbidden(message string) *Error {
	return &Error{Code: "FORBIDDEN", Message: message, StatusCode: http.StatusForbidden}
}

func NotFound(code, message string) *Error {
	return &Error{Code: code, Message: message, StatusCode: http.StatusNotFound}
}

func InvalidTaskState(message string) *Error {
	return &Error{Code: "INVALID_TASK_STATE", Message: message, StatusCode: http.StatusConflict}
}

func InvalidOfferState(message string) *Error {
	return &Error{Code: "INVALID_OFFER_STATE", Message: message, StatusCode: http.StatusConflict}
}

func InvalidOffer(message string) *Error {
	return &Error{Code: "INVALID_OFFER", Message: message, StatusCode: http.StatusConflict}
}

func TaskRequiresModification() *Error {
	return &Error{Code: "TASK_REQUIRES_MODIFICATION", Message: "Task is pending requester modifications", StatusCode: http.StatusConflict}
}

func Conflict(code, message string) *Error {
	return &Error{Code: code, Message: message, StatusCode: http.StatusConflict}
}

// StatusCode returns the HTTP status for err, or 500 for unclassified errors.
func StatusCode(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// Code returns the machine-readable code for err, or INTERNAL_SERVER_ERROR
// for unclassified errors.
func Code(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "INTERNAL_SERVER_ERROR"
}

// As unwraps err into an *Error if it is one.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
