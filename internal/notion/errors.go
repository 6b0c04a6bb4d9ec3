// Defines the Notion API error type.

package notion

import (
	"errors"
	"net/http"
)

// Error represents a Notion API error response.
type Error struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}

// IsNotFound reports whether err is an API error for a missing or unshared
// object.
func IsNotFound(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == "object_not_found" || apiErr.Status == http.StatusNotFound
}

// IsUnauthorized reports whether err is an API error for an invalid token.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == "unauthorized" || apiErr.Status == http.StatusUnauthorized
}
