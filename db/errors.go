package db

import "errors"

// Sentinel errors surfaced by the repo. Controllers map these to HTTP codes;
// every one of them is recoverable by the caller.
var (
	// ErrNotFound: referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidProposal: ownership/availability/self-dealing precondition
	// violated at proposal time.
	ErrInvalidProposal = errors.New("invalid proposal")
	// ErrInvalidTransition: status change not permitted from the current state.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrConflict: optimistic check lost against a concurrent winner.
	ErrConflict = errors.New("conflict")
	// ErrAlreadyCompleted: repeat completion, soft no-op (balance untouched).
	ErrAlreadyCompleted = errors.New("exchange already completed")
	// ErrInvalidAmount: malformed points value.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidItem: required item attributes missing or blank.
	ErrInvalidItem = errors.New("invalid item")
	// ErrForbidden: the acting user is not allowed to drive this transition.
	ErrForbidden = errors.New("forbidden")
)
