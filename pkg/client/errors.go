package cubeclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidBaseURL is returned when a base URL option is invalid.
	ErrInvalidBaseURL = errors.New("cubeclient: invalid base URL")
	// ErrNilHTTPClient indicates a nil HTTP client was provided.
	ErrNilHTTPClient = errors.New("cubeclient: http client cannot be nil")
)

// APIError represents a cube service error payload or HTTP failure.
type APIError struct {
	Status int    `json:"status"`
	Key    string `json:"key"`
	Detail string `json:"detail"`
	Raw    []byte `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch {
	case e.Key != "" && e.Detail != "":
		return fmt.Sprintf("cubeclient: %s (%s)", e.Key, e.Detail)
	case e.Key != "":
		return fmt.Sprintf("cubeclient: %s", e.Key)
	case e.Detail != "":
		return fmt.Sprintf("cubeclient: %s", e.Detail)
	default:
		return fmt.Sprintf("cubeclient: api error status=%d", e.Status)
	}
}

// Temporary reports whether the error may be retried.
func (e *APIError) Temporary() bool {
	if e == nil {
		return false
	}
	return e.Status >= 500 && e.Status < 600
}

// IsAuthorization reports whether err is a service rejection of the
// caller's credentials. Blob-backed installations cannot distinguish
// forbidden from badly-formatted auth, so both 401 and 403 count.
func IsAuthorization(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
}

// IsNotFound reports whether err is a 404 for the requested resource.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusNotFound
}
