package apierror

import "fmt"

type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
	cause      error
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

// Unwrap exposes the sentinel the error was built from, so callers can keep
// matching with errors.Is after the error has been given an HTTP shape.
func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func New(code string, message string, details string, status int) *APIError {
	return &APIError{Code: code, Message: message, Details: details, HTTPStatus: status}
}

func Wrap(cause error, code string, message string, status int) *APIError {
	return &APIError{Code: code, Message: message, HTTPStatus: status, cause: cause}
}
