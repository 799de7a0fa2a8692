package core

import (
	"errors"
	"fmt"
)

// ClientError is a format-string error constant used by the Jenkins
// client. It keeps the message in one place instead of rebuilding it
// at every call site.
type ClientError string

const (
	ErrFailedToParseURL   ClientError = "failed to parse URL: %s"
	ErrFailedToDoRequest  ClientError = "failed to do request: %s"
	ErrFailedToReadBody   ClientError = "failed to read response body: %s"
	ErrFailedToDecodeBody ClientError = "failed to decode response body: %s"
)

// WithArgs returns a new error with the given arguments.
func (e ClientError) WithArgs(args ...any) error {
	return fmt.Errorf(string(e), args...)
}

// Upstream error taxonomy. The Jenkins client wraps every failed call
// in exactly one of these so callers can branch with errors.Is without
// inspecting HTTP status codes.
var (
	ErrNotFound             = errors.New("not found")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrUpstreamUnavailable  = errors.New("upstream unavailable")
)

// ErrConfigResolution means the build server configuration referenced
// by a job no longer exists. A fan-out hitting this records the whole
// attempt as failed without any per-target calls.
var ErrConfigResolution = errors.New("build server configuration cannot be resolved")

// ValidationError reports bad input at the API boundary. It is
// surfaced to the caller with its message and is never treated as a
// system failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
