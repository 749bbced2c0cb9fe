package service

import (
	"errors"
	"testing"
	"time"

	"github.com/joshuakessell/club-ops-deploy-sub001/src/models"
)

func TestApplyProposal_DoesNotRegressConfirmed(t *testing.T) {
	n := models.Negotiation{
		ProposedRentalType:   "STANDARD_ROOM",
		ProposedBy:           models.ActorCustomer,
		SelectionConfirmed:   true,
		SelectionConfirmedBy: models.ActorEmployee,
	}

	ApplyProposal(&n, "LOCKER", models.ActorCustomer)

	if n.ProposedRentalType != "STANDARD_ROOM" || !n.SelectionConfirmed {
		t.Fatalf("late proposal regressed a confirmed selection: %+v", n)
	}
}

func TestApplyLock_ConfirmsAsEmployee(t *testing.T) {
	n := models.Negotiation{ProposedRentalType: "STANDARD_ROOM", ProposedBy: models.ActorCustomer}

	ApplyLock(&n, "")

	if !n.SelectionConfirmed || n.SelectionConfirmedBy != models.ActorEmployee {
		t.Fatalf("lock did not confirm as employee: %+v", n)
	}
}

func TestApplyLock_CarriesRentalTypeWhenNamed(t *testing.T) {
	var n models.Negotiation

	ApplyLock(&n, "DELUXE_ROOM")

	if n.ProposedRentalType != "DELUXE_ROOM" || !n.SelectionConfirmed {
		t.Fatalf("lock with a named type should set and confirm it: %+v", n)
	}
	if n.ProposedBy != models.ActorEmployee {
		t.Fatalf("lock without a prior proposal should attribute it to the employee, got %s", n.ProposedBy)
	}
}

func TestApplyLock_WithoutProposalIsNoop(t *testing.T) {
	var n models.Negotiation

	ApplyLock(&n, "")

	if n.SelectionConfirmed {
		t.Fatal("lock with nothing proposed must not confirm")
	}
}

func TestApplyForce_WinsAndClearsWaitlist(t *testing.T) {
	n := models.Negotiation{
		ProposedRentalType:  "LOCKER",
		ProposedBy:          models.ActorCustomer,
		WaitlistDesiredType: "DELUXE_ROOM",
		WaitlistBackupType:  "LOCKER",
	}

	ApplyForce(&n, "STANDARD_ROOM")

	if n.ProposedRentalType != "STANDARD_ROOM" || n.ProposedBy != models.ActorEmployee {
		t.Fatalf("force did not replace the pending proposal: %+v", n)
	}
	if !n.SelectionConfirmed || n.SelectionConfirmedBy != models.ActorEmployee {
		t.Fatalf("force did not confirm: %+v", n)
	}
	if n.WaitlistDesiredType != "" || n.WaitlistBackupType != "" {
		t.Fatalf("force did not abandon the waitlist sub-flow: %+v", n)
	}
}

func TestApplyAcknowledgement(t *testing.T) {
	var n models.Negotiation
	if ApplyAcknowledgement(&n, models.ActorCustomer) {
		t.Fatal("acknowledgement without a proposal must be a no-op")
	}

	n.ProposedRentalType = "LOCKER"
	n.ProposedBy = models.ActorCustomer
	if !ApplyAcknowledgement(&n, models.ActorCustomer) {
		t.Fatal("acknowledgement of a pending proposal should confirm")
	}
	if n.SelectionConfirmedBy != models.ActorCustomer {
		t.Fatalf("got confirmed-by %s, want CUSTOMER", n.SelectionConfirmedBy)
	}

	if ApplyAcknowledgement(&n, models.ActorEmployee) {
		t.Fatal("second acknowledgement must be a no-op")
	}
}

func TestSelectionEnabled_MembershipGating(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 2, 0)
	past := now.AddDate(0, -1, 0)

	active := activeSession()
	active.MembershipNumber = "M-1"
	active.MembershipValidUntil = &future
	if !SelectionEnabled(&active, now) {
		t.Fatal("active member should have selection enabled")
	}

	nonMember := activeSession()
	if SelectionEnabled(&nonMember, now) {
		t.Fatal("non-member without an explicit choice must not select")
	}
	nonMember.MembershipChoice = models.ChoiceOneTime
	if !SelectionEnabled(&nonMember, now) {
		t.Fatal("non-member with an explicit choice should select")
	}

	expired := activeSession()
	expired.MembershipNumber = "M-2"
	expired.MembershipValidUntil = &past
	if SelectionEnabled(&expired, now) {
		t.Fatal("expired member without an explicit choice must not select")
	}
	expired.MembershipChoice = models.ChoiceSixMonth
	if !SelectionEnabled(&expired, now) {
		t.Fatal("expired member with an explicit choice should select")
	}

	blocked := active
	blocked.PastDueBlocked = true
	if SelectionEnabled(&blocked, now) {
		t.Fatal("past-due block must disable selection")
	}
}

func TestCanPropose(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 2, 0)

	s := activeSession()
	s.MembershipNumber = "M-1"
	s.MembershipValidUntil = &future
	s.AllowedRentals = []models.RentalType{"STANDARD_ROOM", "LOCKER"}

	if err := CanPropose(&s, &models.Negotiation{}, "STANDARD_ROOM", now); err != nil {
		t.Fatalf("allowed proposal refused: %v", err)
	}
	if err := CanPropose(&s, &models.Negotiation{}, "DELUXE_ROOM", now); !errors.Is(err, models.ErrRentalNotAllowed) {
		t.Fatalf("got %v, want ErrRentalNotAllowed", err)
	}

	confirmed := models.Negotiation{ProposedRentalType: "LOCKER", SelectionConfirmed: true}
	if err := CanPropose(&s, &confirmed, "STANDARD_ROOM", now); !errors.Is(err, models.ErrSelectionLocked) {
		t.Fatalf("got %v, want ErrSelectionLocked", err)
	}

	blank := models.Session{}
	if err := CanPropose(&blank, &models.Negotiation{}, "LOCKER", now); !errors.Is(err, models.ErrNoActiveSession) {
		t.Fatalf("got %v, want ErrNoActiveSession", err)
	}

	nonMember := activeSession()
	if err := CanPropose(&nonMember, &models.Negotiation{}, "LOCKER", now); !errors.Is(err, models.ErrMembershipChoiceRequired) {
		t.Fatalf("got %v, want ErrMembershipChoiceRequired", err)
	}
}
