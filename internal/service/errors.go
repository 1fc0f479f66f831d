package service

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Sentinel errors for service layer
var (
	ErrValidation           = errors.New("validation error")
	ErrVerificationRejected = errors.New("verification rejected")
	ErrDeliveryRejected     = errors.New("delivery rejected")
)

// FailureKind classifies why a contact submission did not go through
type FailureKind string

const (
	KindVerificationMissing FailureKind = "VERIFICATION_MISSING"
	KindVerificationFailed  FailureKind = "VERIFICATION_FAILED"
	KindInvalidSubmission   FailureKind = "INVALID_SUBMISSION"
	KindDeliveryFailed      FailureKind = "DELIVERY_FAILED"
	KindUnexpected          FailureKind = "UNEXPECTED_ERROR"
)

// SubmissionError ties an underlying error to the step that produced it
type SubmissionError struct {
	Kind FailureKind
	Err  error
}

func (e *SubmissionError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

func fail(kind FailureKind, err error) error {
	return &SubmissionError{Kind: kind, Err: err}
}

// KindOf returns the failure kind carried by err. Unclassified errors are
// reported as KindUnexpected; nil has no kind.
func KindOf(err error) FailureKind {
	if err == nil {
		return ""
	}
	var se *SubmissionError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnexpected
}

// isTimeout covers both client-side deadlines and http.Client.Timeout
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
