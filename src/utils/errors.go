package utils

import (
	"fmt"
	"time"
)

// The booking core never retries: every failure is terminal for the request
// and carries a specific, human-readable reason.

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type NotFoundError struct {
	Entity string
	ID     any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s [%v] not found", e.Entity, e.ID)
}

type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return e.Reason
}

// PolicyError rejects an otherwise-valid request on timing grounds and tells
// the caller how long they are still inside the window.
type PolicyError struct {
	Reason    string
	Remaining time.Duration
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("%s (%s before start)", e.Reason, e.Remaining.Round(time.Minute))
}
