package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the failure taxonomy shared by every operation.
// Callers branch with errors.Is; the REST layer maps them to status codes.
var (
	// ErrUnavailable means a required external client was never
	// initialized. Fails fast, never retried.
	ErrUnavailable = errors.New("client unavailable")

	// ErrUnauthorized is an authorization failure from the catalog. Under a
	// user token it triggers the one-shot downgrade to application
	// credentials; under application credentials it is terminal.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound means no matching entity exists upstream.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited is reported with the upstream status; backoff is left
	// to the caller.
	ErrRateLimited = errors.New("rate limited")

	// ErrTransport covers network failures, timeouts and unexpected
	// upstream statuses.
	ErrTransport = errors.New("transport failure")

	// ErrNoMatch is a derived business condition, e.g. no genre derivable
	// from a prompt or no artists inside a popularity band.
	ErrNoMatch = errors.New("no match")
)

// Error carries a short human-readable reason alongside one of the sentinel
// errors above. Nothing beyond the message is exposed to callers.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NoMatchf builds an ErrNoMatch with a formatted cause.
func NoMatchf(format string, args ...any) *Error {
	return &Error{Kind: ErrNoMatch, Message: fmt.Sprintf(format, args...)}
}

// Unavailablef builds an ErrUnavailable with a formatted cause.
func Unavailablef(format string, args ...any) *Error {
	return &Error{Kind: ErrUnavailable, Message: fmt.Sprintf(format, args...)}
}
