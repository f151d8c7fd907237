package incydr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a single problem reported by the Incydr API.
type APIError struct {
	Type        string `json:"type,omitempty"        yaml:"type,omitempty"`
	BadProperty string `json:"badProperty,omitempty" yaml:"bad_property,omitempty"`
	BadValue    string `json:"badValue,omitempty"    yaml:"bad_value,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.BadProperty != "" {
		return fmt.Sprintf("%s: %s (property: %s)", e.Type, e.Description, e.BadProperty)
	}

	return fmt.Sprintf("%s: %s", e.Type, e.Description)
}

// ResponseError represents a non-2xx response from the API.
type ResponseError struct {
	StatusCode int        `json:"-"                  yaml:"-"`
	Problems   []APIError `json:"problems,omitempty" yaml:"problems,omitempty"`
	// Body holds the raw response body when it could not be parsed into Problems.
	Body string `json:"-" yaml:"-"`
}

// Error implements the error interface for ResponseError.
func (e *ResponseError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Problems[0].Error())
	}

	if len(e.Problems) > 1 {
		return fmt.Sprintf("HTTP %d: multiple problems: %v", e.StatusCode, e.Problems)
	}

	if e.Body != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
	}

	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// FirstProblem returns the first problem or nil.
func (e *ResponseError) FirstProblem() *APIError {
	if len(e.Problems) > 0 {
		return &e.Problems[0]
	}

	return nil
}

// ValidationError reports invalid input detected before any request is sent.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired           = errors.New("config is required")
	ErrAPIEndpointRequired      = errors.New("API endpoint is required")
	ErrNoCredentials            = errors.New("no credentials configured: provide an access token or an API client ID and secret")
	ErrStaticTokenCannotRefresh = errors.New("static token cannot be refreshed")
	ErrNoMoreItems              = errors.New("no more items")
	ErrNilQuery                 = errors.New("query is required")
	ErrNotAuthenticated         = errors.New("not authenticated")
)

// IsNotFound checks if the error is a 404 response.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is a 401 response.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is a 403 response.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsRateLimited checks if the error is a 429 response.
func IsRateLimited(err error) bool {
	return hasStatus(err, http.StatusTooManyRequests)
}

// IsValidation checks if the error is a pre-flight validation error.
func IsValidation(err error) bool {
	validationErr := &ValidationError{}

	return errors.As(err, &validationErr)
}

func hasStatus(err error, status int) bool {
	respErr := &ResponseError{}
	if errors.As(err, &respErr) {
		return respErr.StatusCode == status
	}

	return false
}

// ParseResponseError parses an error response body. The API reports problems
// either as a bare array or wrapped in a "problems" object; anything else is
// kept as the raw body.
func ParseResponseError(statusCode int, data []byte) *ResponseError {
	respErr := &ResponseError{StatusCode: statusCode}

	var problems []APIError
	if err := json.Unmarshal(data, &problems); err == nil && len(problems) > 0 {
		respErr.Problems = problems

		return respErr
	}

	err := json.Unmarshal(data, respErr)
	if err != nil || len(respErr.Problems) == 0 {
		respErr.Problems = nil
		respErr.Body = string(data)
	}

	return respErr
}
