package pollapi

import (
	"errors"
	"fmt"
)

// FailureKind enumerates the ways an API call can fail.
type FailureKind string

const (
	KindUnauthorized      FailureKind = "unauthorized"
	KindNotFound          FailureKind = "not_found"
	KindValidationError   FailureKind = "validation_error"
	KindUnreachable       FailureKind = "unreachable"
	KindTimeout           FailureKind = "timeout"
	KindUnexpectedStatus  FailureKind = "unexpected_status"
	KindMalformedResponse FailureKind = "malformed_response"
)

// Failure is the typed error produced for any call that did not succeed.
// Status is zero when the failure happened before a status code existed
// (connection refused, timeout).
type Failure struct {
	Kind   FailureKind
	Detail string
	Status int
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Status > 0 {
		return fmt.Sprintf("%s (status %d): %s", f.Kind, f.Status, f.Detail)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Detail)
}

// KindOf extracts the failure kind carried by err, if any.
func KindOf(err error) (FailureKind, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind, true
	}
	return "", false
}

// IsKind reports whether err carries the given failure kind.
func IsKind(err error, kind FailureKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
