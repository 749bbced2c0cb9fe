package models

import "errors"

// Domain-level sentinel errors for business logic
// These errors should not contain HTTP-specific information

var (
	// ErrNoActiveSession indicates an action that requires a tracked session
	ErrNoActiveSession = errors.New("no active session")

	// ErrSubmissionInFlight indicates another command is still awaiting the backend
	ErrSubmissionInFlight = errors.New("submission already in flight")

	// ErrMembershipChoiceRequired indicates rental selection is gated on an
	// explicit membership choice for non-members
	ErrMembershipChoiceRequired = errors.New("membership choice required")

	// ErrRentalNotAllowed indicates the rental type is not in this visit's catalog
	ErrRentalNotAllowed = errors.New("rental type not allowed for this visit")

	// ErrNoPendingProposal indicates a confirm with nothing proposed
	ErrNoPendingProposal = errors.New("no pending proposal")

	// ErrNotWaitlisted indicates a backup submission outside the waitlist sub-flow
	ErrNotWaitlisted = errors.New("not in the waitlist sub-flow")

	// ErrDisclaimerNotAcknowledged indicates the upgrade disclaimer gate was skipped
	ErrDisclaimerNotAcknowledged = errors.New("upgrade disclaimer not acknowledged")

	// ErrBackupUnavailable indicates the chosen backup type has no availability
	ErrBackupUnavailable = errors.New("backup rental type unavailable")

	// ErrSelectionLocked indicates the selection is already confirmed
	ErrSelectionLocked = errors.New("selection already confirmed")
)
