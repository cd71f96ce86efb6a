package services

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by all report operations. Every one of these is
// recoverable at the caller; controllers translate them to HTTP codes.
var (
	// ErrNotFound the report or user id does not resolve
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized the actor's role lacks permission for the operation
	ErrUnauthorized = errors.New("unauthorized")
	// ErrLocked mutation attempted on a terminal report
	ErrLocked = errors.New("report is locked")
	// ErrInvalidState a precondition on status or assignment is not met
	ErrInvalidState = errors.New("invalid report state")
	// ErrDuplicateRequest a request id was already processed; the caller
	// should treat the original result as delivered
	ErrDuplicateRequest = errors.New("duplicate request")
)

// InvalidTransitionError reports an illegal status edge, identifying the
// current and requested status.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %q to %q", e.From, e.To)
}

// ValidationError missing or malformed caller input (empty note text,
// unknown priority, oversized message).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
