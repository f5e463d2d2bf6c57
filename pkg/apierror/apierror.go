package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Codes returned in the "error.code" field of the API envelope.
const (
	CodeBadRequest           = "BAD_REQUEST"
	CodeValidation           = "VALIDATION_ERROR"
	CodeInvalidFilename      = "INVALID_FILENAME"
	CodePathTraversal        = "PATH_TRAVERSAL"
	CodeNotFound             = "NOT_FOUND"
	CodeConfirmationRequired = "CONFIRMATION_REQUIRED"
	CodePayloadTooLarge      = "PAYLOAD_TOO_LARGE"
	CodeRateLimited          = "RATE_LIMITED"
	CodeRequestTimeout       = "REQUEST_TIMEOUT"
	CodeUnavailable          = "UNAVAILABLE"
	CodeInternal             = "INTERNAL_ERROR"
)

// APIError is an error a handler can hand straight to the client.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code string, message string, details string, status int) *APIError {
	return &APIError{Code: code, Message: message, Details: details, HTTPStatus: status}
}

func BadRequest(message string, details string) *APIError {
	return New(CodeBadRequest, message, details, http.StatusBadRequest)
}

func InvalidFilename(message string, name string) *APIError {
	return New(CodeInvalidFilename, message, name, http.StatusBadRequest)
}

func PathTraversal(message string, name string) *APIError {
	return New(CodePathTraversal, message, name, http.StatusForbidden)
}

// HasCode reports whether err wraps an APIError carrying code.
func HasCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}
