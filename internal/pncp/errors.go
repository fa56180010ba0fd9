package pncp

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// HTTPError is a non-2xx response from the consulta API. Detail carries a
// short excerpt of the body for diagnostics.
type HTTPError struct {
	Status int
	Detail string
	URL    string
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("HTTP %d - %s | %s", e.Status, e.Detail, e.URL)
	}
	return fmt.Sprintf("HTTP %d | %s", e.Status, e.URL)
}

// TimeoutError means a single request exceeded its configured budget. It is
// retryable and deliberately distinct from run cancellation.
type TimeoutError struct {
	URL   string
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("tempo limite excedido (%s) | %s", e.After, e.URL)
}

// DecodeError means the body was present but not valid JSON.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("resposta inválida (JSON) | %s", e.URL) }
func (e *DecodeError) Unwrap() error { return e.Err }

// IsCancelled reports whether err is the external abort of a run (user
// switched state, engine shutting down). Request timeouts are not
// cancellations.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled)
}

func httpStatus(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Status
	}
	return 0
}
