package clients

import "errors"

// Error taxonomy shared by the downstream service clients. Callers branch
// with errors.Is.
var (
	// ErrNotFound means the remote service answered 404 for the requested
	// resource.
	ErrNotFound = errors.New("resource not found")

	// ErrUnavailable covers every other failure mode: network faults,
	// timeouts and non-2xx responses.
	ErrUnavailable = errors.New("service unavailable")
)
