package api

import (
	"context"
	"encoding/json"
	"fmt"
)

// Envelope wraps every backend response: a domain failure travels as
// success=false plus a user-facing message, never as an error schema.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    *T     `json:"data,omitempty"`
}

// ErrorKind separates the failure classes callers must treat differently.
type ErrorKind int

const (
	// KindTransport covers network failures, timeouts and non-2xx statuses.
	KindTransport ErrorKind = iota
	// KindDomain is a well-formed response with success=false; Message is
	// user-facing and comes verbatim from the backend.
	KindDomain
	// KindDecode means the response body did not match the expected shape.
	KindDecode
)

// Error is the failure type returned by every client operation.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindDomain:
		return e.Message
	case KindDecode:
		return fmt.Sprintf("malformed response: %v", e.Err)
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return fmt.Sprintf("http %d %s", e.StatusCode, e.Message)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// IsDomain reports whether err is an envelope-level failure carrying a
// backend message.
func IsDomain(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Kind == KindDomain
}

// doEnvelope performs a request whose response is wrapped in the standard
// envelope and returns the decoded payload. A success=false envelope becomes
// a KindDomain error; an empty data field yields the zero value.
func doEnvelope[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var zero T

	raw, err := c.do(ctx, method, path, body)
	if err != nil {
		return zero, err
	}

	var env Envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, &Error{Kind: KindDecode, Err: err}
	}
	if !env.Success {
		return zero, &Error{Kind: KindDomain, Message: env.Message}
	}
	if env.Data == nil {
		return zero, nil
	}
	return *env.Data, nil
}
