package entity

import (
	"errors"
	"fmt"
)

type FailureKind string

const (
	FailureConfiguration       FailureKind = "configuration_error"
	FailureQuotaExceeded       FailureKind = "quota_exceeded"
	FailureRateLimited         FailureKind = "rate_limited"
	FailureUpstreamUnreachable FailureKind = "upstream_unreachable"
	FailureUpstream            FailureKind = "upstream_error"
	FailureInternal            FailureKind = "internal_generation_error"
)

// ClassifiedFailure is the only error shape advanced generation returns.
// Message is safe to show to end users; the wrapped cause is for logs only.
type ClassifiedFailure struct {
	Kind       FailureKind `json:"kind"`
	Message    string      `json:"detail"`
	Retryable  bool        `json:"retryable"`
	StatusCode int         `json:"status_code,omitempty"`

	cause error
}

func NewFailure(kind FailureKind, message string, retryable bool, cause error) *ClassifiedFailure {
	return &ClassifiedFailure{
		Kind:      kind,
		Message:   message,
		Retryable: retryable,
		cause:     cause,
	}
}

func NewConfigurationFailure(message string) *ClassifiedFailure {
	return NewFailure(FailureConfiguration, message, false, nil)
}

func (f *ClassifiedFailure) WithStatus(code int) *ClassifiedFailure {
	f.StatusCode = code
	return f
}

func (f *ClassifiedFailure) Error() string {
	if f.cause != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.cause)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *ClassifiedFailure) Unwrap() error {
	return f.cause
}

// AsFailure extracts a ClassifiedFailure from an error chain.
func AsFailure(err error) (*ClassifiedFailure, bool) {
	var f *ClassifiedFailure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
