package github

import (
	"errors"
	"fmt"
)

// ErrTimeout is returned when a single API call exceeds the configured timeout
var ErrTimeout = errors.New("GitHub API call timed out")

// APIError represents an HTTP error response (status >= 400) from the GitHub API
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// IsNotFound returns true if the error represents a 404 response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}
