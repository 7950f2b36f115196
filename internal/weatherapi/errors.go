package weatherapi

import (
	"fmt"
)

// The error kinds below, together with tempyrc.ConfigIOError, are the
// tool's whole failure vocabulary. Every one is terminal for the
// invocation: callers report it and exit, nothing is retried.

// InvalidArgumentError reports bad CLI or tempyrc input (unknown units,
// missing location) detected before any network traffic.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string { return e.Reason }

// NetworkError reports a transport-level failure reaching the API or proxy.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError reports a non-200 status from weatherapi.com or the proxy,
// carrying the upstream message when the body had one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API returned status %d", e.Status)
	}
	return fmt.Sprintf("API returned status %d: %s", e.Status, e.Message)
}

// ParseError reports a response body that does not match the expected
// forecast schema.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed API response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
