package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned on 401, the bearer token is no longer accepted.
	ErrUnauthorized = errors.New("backend rejected the session token")

	// ErrInvalidCredentials is returned when the login endpoint refuses username or password.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrNotConfigured is returned while no base url is set.
	ErrNotConfigured = errors.New("backend base url is not configured")

	// ErrNoEndpoint is returned for a resource without a configured path.
	ErrNoEndpoint = errors.New("no backend endpoint for resource")

	// ErrEmptyID is returned when a record operation gets no id.
	ErrEmptyID = errors.New("record id can not be empty")
)

// StatusError is a non-2xx answer of the backend.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend %s %s: status %d", e.Method, e.Path, e.Code)
}
