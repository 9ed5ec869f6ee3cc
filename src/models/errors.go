package models

import (
	"errors"
	"fmt"
)

// Domain-level sentinel errors for business logic
// These errors should not contain HTTP-specific information

var (
	// ErrSessionNotFound indicates that a session with the given ID does not exist
	ErrSessionNotFound = errors.New("session not found")

	// ErrIdentityNotFound indicates that the identity is unknown to the directory
	// or has no presence entry
	ErrIdentityNotFound = errors.New("identity not found")

	// ErrAccountNotFound indicates that no ledger account exists for the identity
	ErrAccountNotFound = errors.New("ledger account not found")

	// ErrForbidden indicates that the caller is not a party to the session
	// (or not the target advisor of a pending request)
	ErrForbidden = errors.New("caller is not a party to this session")

	// ErrInvalidTransition indicates a session state machine violation
	ErrInvalidTransition = errors.New("invalid session state transition")

	// ErrSessionNotActive indicates that the session is not ACTIVE
	ErrSessionNotActive = errors.New("session is not active")

	// ErrAdvisorOffline indicates that the target advisor has no live connection
	ErrAdvisorOffline = errors.New("advisor is offline")

	// ErrAdvisorUnavailable indicates the advisor is online but has the
	// requested channel switched off
	ErrAdvisorUnavailable = errors.New("advisor is not available on this channel")

	// ErrNotAnAdvisor indicates the target identity is not a registered advisor
	ErrNotAnAdvisor = errors.New("identity is not a registered advisor")
)

// DuplicateSessionError is returned when a live session already exists for the
// (requester, advisor) pair. It carries the existing session id so the client
// can recover by resuming it.
type DuplicateSessionError struct {
	ExistingSessionID string
	Status            SessionStatus
}

func (e *DuplicateSessionError) Error() string {
	return fmt.Sprintf("a %s session already exists for this pair: %s", e.Status, e.ExistingSessionID)
}

// InsufficientBalanceError reports the minimum balance required to open a
// session against the requester's current balance.
type InsufficientBalanceError struct {
	Required int64
	Current  int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: required %d, current %d", e.Required, e.Current)
}

// AlreadyResolvedError is returned when Accept or Reject races a transition
// that already resolved the pending request. It is an idempotent outcome, not
// a caller fault.
type AlreadyResolvedError struct {
	Status SessionStatus
}

func (e *AlreadyResolvedError) Error() string {
	return fmt.Sprintf("session already resolved to %s", e.Status)
}

// AlreadyEndedError is returned when End races another End. It carries the
// billing outcome computed by the winning call so the second caller observes
// the same duration and amount.
type AlreadyEndedError struct {
	BilledDurationSeconds int64
	AmountDebited         int64
	EndedBy               string
}

func (e *AlreadyEndedError) Error() string {
	return fmt.Sprintf("session already ended (billed %ds, debited %d)", e.BilledDurationSeconds, e.AmountDebited)
}
