package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport marks failures to complete a round trip: DNS, connection,
	// timeout, request construction, body read, or a non-2xx status.
	ErrTransport = errors.New("catalog transport failure")
	// ErrMalformedResponse marks payloads that are not valid JSON or are
	// missing a required field.
	ErrMalformedResponse = errors.New("catalog malformed response")
)

// StatusError reports a non-2xx HTTP status from the catalog. It matches
// ErrTransport under errors.Is.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e == nil {
		return "catalog status error"
	}
	return fmt.Sprintf("%s returned HTTP %d", e.Endpoint, e.StatusCode)
}

func (e *StatusError) Unwrap() error { return ErrTransport }

func transportError(endpoint string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrTransport, endpoint, err)
}

func malformed(endpoint, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformedResponse, endpoint, fmt.Sprintf(format, args...))
}
