package auth

import (
	"errors"
	"fmt"
)

// FailureKind enumerates every way an authentication or authorization
// attempt can fail. The set is closed: callers switch on the kind, never
// on dynamic error types.
type FailureKind string

const (
	FailureInvalidCredentials FailureKind = "INVALID_CREDENTIALS"
	FailureAccountDisabled    FailureKind = "ACCOUNT_DISABLED"
	FailureMissingToken       FailureKind = "MISSING_TOKEN"
	FailureBadSignature       FailureKind = "BAD_SIGNATURE"
	FailureExpired            FailureKind = "EXPIRED"
	FailureSubjectNotFound    FailureKind = "SUBJECT_NOT_FOUND"
	FailureForbidden          FailureKind = "FORBIDDEN"
	FailureLookup             FailureKind = "LOOKUP_FAILURE"
	FailureInternal           FailureKind = "INTERNAL"
)

// Failure is the error type carried by every failed auth operation.
// It wraps the underlying cause, if any, for logging; the cause is never
// shown to callers of the HTTP API.
type Failure struct {
	Kind FailureKind
	Err  error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("auth: %s: %v", f.Kind, f.Err)
	}
	return fmt.Sprintf("auth: %s", f.Kind)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// NewFailure builds a Failure of the given kind.
func NewFailure(kind FailureKind) *Failure {
	return &Failure{Kind: kind}
}

// WrapFailure builds a Failure of the given kind retaining its cause.
func WrapFailure(kind FailureKind, err error) *Failure {
	return &Failure{Kind: kind, Err: err}
}

// KindOf extracts the failure kind from an error chain. Errors that are
// not a Failure report FailureInternal.
func KindOf(err error) FailureKind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return FailureInternal
}

// IsKind reports whether err carries the given failure kind.
func IsKind(err error, kind FailureKind) bool {
	var f *Failure
	return errors.As(err, &f) && f.Kind == kind
}
