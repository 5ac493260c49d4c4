// Package pipelineerr defines the error taxonomy shared across the pipeline:
// the artifact store, query synthesis engine, search executor, and stage
// orchestrator all return errors of this single typed shape so callers can
// branch on Kind rather than matching error strings.
package pipelineerr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error for caller-side branching.
type Kind string

const (
	KindValidation        Kind = "validation_error"
	KindNotFound          Kind = "not_found"
	KindPreconditionFailed Kind = "precondition_failed"
	KindProvider          Kind = "provider_error"
	KindRateLimited       Kind = "rate_limited"
	KindTimeout           Kind = "timeout"
	KindIO                Kind = "io_error"
	KindInternal          Kind = "internal"
)

// Error is the single error type returned across the pipeline's public API.
type Error struct {
	Kind Kind
	Msg  string
	Err  error

	// Populated for KindPreconditionFailed.
	RequiredArtifacts []string

	// Populated for KindProvider and KindRateLimited.
	ProviderName      string
	Retriable         bool
	RetryAfterSeconds int
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is supports errors.Is comparisons against a Kind-only sentinel built with New.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

func Validation(msg string) *Error {
	return New(KindValidation, msg)
}

func NotFound(msg string) *Error {
	return New(KindNotFound, msg)
}

func Precondition(msg string, required []string) *Error {
	return &Error{Kind: KindPreconditionFailed, Msg: msg, RequiredArtifacts: required}
}

func Provider(name string, retriable bool, cause error) *Error {
	return &Error{Kind: KindProvider, Msg: fmt.Sprintf("provider %q failed", name), Err: cause, ProviderName: name, Retriable: retriable}
}

func RateLimited(name string, retryAfterSeconds int) *Error {
	return &Error{Kind: KindRateLimited, Msg: fmt.Sprintf("provider %q rate limited", name), ProviderName: name, RetryAfterSeconds: retryAfterSeconds}
}

func Timeout(msg string, cause error) *Error {
	return Wrap(KindTimeout, msg, cause)
}

func IO(msg string, cause error) *Error {
	return Wrap(KindIO, msg, cause)
}

func Internal(msg string, cause error) *Error {
	return Wrap(KindInternal, msg, cause)
}

// OfKind reports whether err is a *Error of the given kind.
func OfKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
