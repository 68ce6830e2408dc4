package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidConfig    = errors.New("invalid config")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnreachable      = errors.New("instance unreachable")
	ErrIdentityMismatch = errors.New("software identity mismatch")
	ErrUnauthorized     = errors.New("credentials rejected")
	ErrInvalidRequest   = errors.New("invalid request")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound         ErrorKind = "not_found"
	KindInvalidConfig    ErrorKind = "invalid_config"
	KindInvalidInput     ErrorKind = "invalid_input"
	KindUnreachable      ErrorKind = "unreachable"
	KindIdentityMismatch ErrorKind = "identity_mismatch"
	KindUnauthorized     ErrorKind = "unauthorized"
	KindCanceled         ErrorKind = "canceled"
	KindExecution        ErrorKind = "execution"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op    string
	Kind  ErrorKind
	Stage Stage  // Optional: verification stage that failed
	Path  string // Optional: relevant file path
	Err   error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Stage != "" {
		base += fmt.Sprintf(" (stage=%s)", e.Stage)
	}
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// StageOf returns the verification stage recorded on err, if any.
func StageOf(err error) (Stage, bool) {
	var oe *OpError
	if errors.As(err, &oe) && oe.Stage != "" {
		return oe.Stage, true
	}
	return "", false
}
