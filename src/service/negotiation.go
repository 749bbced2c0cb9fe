package service

import (
	"time"

	"github.com/joshuakessell/club-ops-deploy-sub001/src/models"
)

// Pure transitions for the selection negotiation machine:
// NONE -> PROPOSED -> CONFIRMED, with the waitlist sub-path tracked
// orthogonally. The reconciler applies server-originated transitions, the
// dispatcher applies optimistic customer ones; both go through these helpers
// so the invariants live in one place.

// ApplyProposal records a proposal from either actor. A confirmed selection
// is never regressed by a late proposal event.
func ApplyProposal(n *models.Negotiation, t models.RentalType, by models.Actor) {
	if n.SelectionConfirmed {
		return
	}
	n.ProposedRentalType = t
	n.ProposedBy = by
}

// ApplyLock confirms the selection from the register. When the event names a
// rental type it also replaces the proposal, so a lock can land before the
// kiosk saw the proposal it locks.
func ApplyLock(n *models.Negotiation, t models.RentalType) {
	if t != "" {
		n.ProposedRentalType = t
		if n.ProposedBy == "" {
			n.ProposedBy = models.ActorEmployee
		}
	}
	if !n.Proposed() {
		return
	}
	n.SelectionConfirmed = true
	n.SelectionConfirmedBy = models.ActorEmployee
}

// ApplyForce is the privileged employee override: it jumps straight to
// CONFIRMED, wins over any pending customer proposal and abandons the
// waitlist sub-flow.
func ApplyForce(n *models.Negotiation, t models.RentalType) {
	n.ProposedRentalType = t
	n.ProposedBy = models.ActorEmployee
	n.SelectionConfirmed = true
	n.SelectionConfirmedBy = models.ActorEmployee
	n.WaitlistDesiredType = ""
	n.WaitlistBackupType = ""
}

// ApplyAcknowledgement confirms a pending proposal with whichever actor
// acknowledged it. Without a proposal there is nothing to confirm.
func ApplyAcknowledgement(n *models.Negotiation, by models.Actor) bool {
	if !n.Proposed() || n.SelectionConfirmed {
		return false
	}
	n.SelectionConfirmed = true
	n.SelectionConfirmedBy = by
	return true
}

// SelectionEnabled reports whether the customer may interact with rental
// selection at all. Non-members (and expired members) must make an explicit
// membership choice first; there is no default.
func SelectionEnabled(s *models.Session, now time.Time) bool {
	if !s.Active() || s.PastDueBlocked {
		return false
	}
	switch ResolveSessionMembership(s, now) {
	case models.MembershipActive, models.MembershipPending:
		return true
	default:
		return s.MembershipChoice != ""
	}
}

// CanPropose is the local integrity gate run before any propose request
// leaves the kiosk.
func CanPropose(s *models.Session, n *models.Negotiation, t models.RentalType, now time.Time) error {
	if !s.Active() {
		return models.ErrNoActiveSession
	}
	if n.SelectionConfirmed {
		return models.ErrSelectionLocked
	}
	if !SelectionEnabled(s, now) {
		return models.ErrMembershipChoiceRequired
	}
	if len(s.AllowedRentals) > 0 && !s.AllowsRental(t) {
		return models.ErrRentalNotAllowed
	}
	return nil
}
