package bank

import (
	"errors"
	"fmt"
)

// Kind defines the normalized failure taxonomy for downstream bank errors.
//
// The client classifies every failure at the transport-call boundary into one
// of these kinds, so callers make consistent decisions without inspecting raw
// error messages or HTTP details.
type Kind string

const (
	// KindUnavailable indicates the bank is down (503, 5xx, or open circuit).
	KindUnavailable Kind = "service_unavailable"

	// KindBadRequest indicates the bank rejected the wire payload (400).
	// Since requests are validated before they reach the client, this is an
	// integration fault, not a caller error.
	KindBadRequest Kind = "bad_request"

	// KindTimeout indicates no response arrived within the per-call deadline.
	KindTimeout Kind = "timeout"

	// KindMalformedResponse indicates the bank answered with a body or status
	// the wire contract does not allow.
	KindMalformedResponse Kind = "malformed_response"

	// KindConnection indicates a transport-level failure (connection refused,
	// DNS, reset). Surfaced to callers identically to KindUnavailable.
	KindConnection Kind = "connection_error"
)

// Error wraps downstream failures with normalized categorization.
type Error struct {
	Kind       Kind
	Message    string
	Underlying error
	Transient  bool // set from Kind; transient failures consume the retry budget
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("bank [%s]: %s: %v", e.Kind, e.Message, e.Underlying)
	}
	return fmt.Sprintf("bank [%s]: %s", e.Kind, e.Message)
}

// Unwrap supports error unwrapping.
func (e *Error) Unwrap() error {
	return e.Underlying
}

// NewError creates a normalized bank error with automatic retry classification.
// Unavailable and connection failures are transient; timeouts, bad requests,
// and contract mismatches are not.
func NewError(kind Kind, message string, underlying error) *Error {
	return &Error{
		Kind:       kind,
		Message:    message,
		Underlying: underlying,
		Transient:  kind == KindUnavailable || kind == KindConnection,
	}
}

// IsTransient checks whether an error is worth retrying.
func IsTransient(err error) bool {
	var be *Error
	if errors.As(err, &be) {
		return be.Transient
	}
	return false
}

// KindOf extracts the error kind from an error chain.
// Unclassified errors report KindMalformedResponse.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindMalformedResponse
}
