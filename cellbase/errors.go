package cellbase

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for errors.Is checks against *HTTPError.
var (
	// ErrNotFound matches 404 responses.
	ErrNotFound = errors.New("cellbase: resource not found")
	// ErrBadRequest matches 400 responses, usually an unknown option or malformed ID.
	ErrBadRequest = errors.New("cellbase: bad request")
	// ErrServer matches 5xx responses.
	ErrServer = errors.New("cellbase: server error")
)

// HTTPError is returned when the service answers with a non-2xx status.
// The body is kept unparsed.
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
	Body       []byte
}

func (e *HTTPError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	if len(e.Body) > 0 {
		body := e.Body
		if len(body) > 256 {
			body = body[:256]
		}
		return fmt.Sprintf("cellbase: GET %s: %s: %s", e.URL, status, body)
	}
	return fmt.Sprintf("cellbase: GET %s: %s", e.URL, status)
}

// Is implements errors.Is for sentinel error matching.
func (e *HTTPError) Is(target error) bool {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return target == ErrNotFound
	case e.StatusCode == http.StatusBadRequest:
		return target == ErrBadRequest
	case e.StatusCode >= 500:
		return target == ErrServer
	}
	return false
}

// TransportError represents a network-level failure.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("cellbase: GET %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
