// Package apierror provides the standardized error envelope for the API.
// All 4xx/5xx responses go through this package so that clients always see
// {"error": "..."} and never internal details (stack traces, SQL errors).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Error string `json:"error"`
}

func New(msg string) *APIError {
	return &APIError{Error: msg}
}
