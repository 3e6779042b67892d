package agent

import "fmt"

// ConnectionError means the agent could not be reached at all. Fatal at
// session acquisition, never retried.
type ConnectionError struct {
	Endpoint string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("agent unreachable at %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// NegotiationError means the agent rejected the requested capabilities.
type NegotiationError struct {
	StatusCode int
	Message    string
}

func (e *NegotiationError) Error() string {
	return fmt.Sprintf("agent rejected session (status %d): %s", e.StatusCode, e.Message)
}

// TransportError is a per-command plumbing failure (network, timeout,
// malformed response). Driver-level command failures are not transport
// errors; those come back as failed responses.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("agent transport failure during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
