package api

import (
	"errors"
	"fmt"
)

// Kind classifies an API failure. The backend answers every error with the
// same `{detail}` body shape, so the kind is derived from the HTTP status
// (or from the transport layer when no response was received at all).
type Kind int

const (
	KindUnknown Kind = iota
	KindTransport
	KindValidation
	KindUnauthorized
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// fallbackMessage is used when an error response body cannot be parsed.
const fallbackMessage = "an error occurred"

// Error is the single error type surfaced by the client. Message is always
// human-readable: the backend's detail field when available, otherwise a
// generic fallback. StatusCode is 0 for transport failures.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	cause      error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newTransportError(err error) *Error {
	return &Error{
		Kind:    KindTransport,
		Message: fmt.Sprintf("request failed: %v", err),
		cause:   err,
	}
}

func newStatusError(status int, detail string) *Error {
	if detail == "" {
		detail = fallbackMessage
	}
	return &Error{Kind: kindForStatus(status), StatusCode: status, Message: detail}
}

func kindForStatus(status int) Kind {
	switch status {
	case 400, 422:
		return KindValidation
	case 401:
		return KindUnauthorized
	case 404:
		return KindNotFound
	default:
		return KindUnknown
	}
}

func errKind(err error) (Kind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return KindUnknown, false
}

// IsUnauthorized reports whether err is an API error caused by a missing,
// invalid or expired credential.
func IsUnauthorized(err error) bool {
	k, ok := errKind(err)
	return ok && k == KindUnauthorized
}

// IsNotFound reports whether err is an API error for an absent (or foreign)
// resource.
func IsNotFound(err error) bool {
	k, ok := errKind(err)
	return ok && k == KindNotFound
}

// IsValidation reports whether err is an API error for a rejected request
// body (duplicate email, missing field, ...).
func IsValidation(err error) bool {
	k, ok := errKind(err)
	return ok && k == KindValidation
}

// IsTransport reports whether err is an API error raised before any HTTP
// response was decoded: unreachable server, timeout, malformed body.
func IsTransport(err error) bool {
	k, ok := errKind(err)
	return ok && k == KindTransport
}
