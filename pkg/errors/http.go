package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError is an error that carries the status it should be rendered with.
type HTTPError struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// NewHTTPError builds an HTTPError whose code doubles as its HTTP status.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{Code: statusCode, Message: message, StatusCode: statusCode}
}

// ErrInternalServerError is what delivery layers return for unmapped errors.
var ErrInternalServerError = NewHTTPError(http.StatusInternalServerError, "internal server error")

// AsHTTPError unwraps err into an *HTTPError.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}
