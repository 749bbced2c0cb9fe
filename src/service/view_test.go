package service

import (
	"testing"
	"time"

	"github.com/joshuakessell/club-ops-deploy-sub001/src/models"
)

func activeSession() models.Session {
	return models.Session{
		SessionID:               "sess-1",
		Status:                  models.StatusInProgress,
		CustomerPrimaryLanguage: models.LanguageEN,
	}
}

func TestDeriveView_Precedence(t *testing.T) {
	num := 42
	ack := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		session func() models.Session
		n       models.Negotiation
		want    models.View
	}{
		{
			"blank session is idle",
			func() models.Session { return models.Session{} },
			models.Negotiation{},
			models.ViewIdle,
		},
		{
			"active session with language lands on selection",
			activeSession,
			models.Negotiation{},
			models.ViewSelection,
		},
		{
			"missing language asks for language first",
			func() models.Session {
				s := activeSession()
				s.CustomerPrimaryLanguage = ""
				return s
			},
			models.Negotiation{},
			models.ViewLanguage,
		},
		{
			"past-due block shows selection in informational mode",
			func() models.Session {
				s := activeSession()
				s.PastDueBlocked = true
				return s
			},
			models.Negotiation{},
			models.ViewSelection,
		},
		{
			"past-due block still asks for language first",
			func() models.Session {
				s := activeSession()
				s.CustomerPrimaryLanguage = ""
				s.PastDueBlocked = true
				return s
			},
			models.Negotiation{},
			models.ViewLanguage,
		},
		{
			"confirmed selection without a due payment stays on selection",
			activeSession,
			models.Negotiation{ProposedRentalType: "STANDARD_ROOM", SelectionConfirmed: true},
			models.ViewSelection,
		},
		{
			"paid unsigned checkin shows agreement",
			func() models.Session {
				s := activeSession()
				s.PaymentStatus = models.PaymentPaid
				s.Mode = models.ModeCheckin
				return s
			},
			models.Negotiation{},
			models.ViewAgreement,
		},
		{
			"bypass pending wins over the agreement screen",
			func() models.Session {
				s := activeSession()
				s.PaymentStatus = models.PaymentPaid
				s.Mode = models.ModeCheckin
				s.AgreementBypassPending = true
				return s
			},
			models.Negotiation{},
			models.ViewAgreementBypass,
		},
		{
			"assignment shows completion even without language",
			func() models.Session {
				s := activeSession()
				s.CustomerPrimaryLanguage = ""
				s.AssignedResourceType = models.ResourceRoom
				s.AssignedResourceNumber = &num
				return s
			},
			models.Negotiation{},
			models.ViewComplete,
		},
		{
			"kiosk acknowledgement pins idle over everything",
			func() models.Session {
				s := activeSession()
				s.AssignedResourceType = models.ResourceRoom
				s.AssignedResourceNumber = &num
				s.KioskAcknowledgedAt = &ack
				return s
			},
			models.Negotiation{},
			models.ViewIdle,
		},
		{
			"id scan issue pins idle",
			func() models.Session {
				s := activeSession()
				s.IDScanIssue = models.IDScanExpired
				return s
			},
			models.Negotiation{},
			models.ViewIdle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.session()
			got, _ := DeriveView(&s, &tt.n)
			if got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDeriveView_PaymentRequiresDueStatus(t *testing.T) {
	s := activeSession()
	s.PaymentStatus = models.PaymentDue
	n := models.Negotiation{ProposedRentalType: "STANDARD_ROOM", SelectionConfirmed: true}

	view, reset := DeriveView(&s, &n)
	if view != models.ViewPayment || reset {
		t.Fatalf("got view=%s reset=%v, want payment false", view, reset)
	}
}

// COMPLETED without an assignment means the visit ended some other way; the
// mirror must be torn down. With an assignment still showing, completion wins
// and nothing resets.
func TestDeriveView_CompletedStatus(t *testing.T) {
	s := activeSession()
	s.Status = models.StatusCompleted
	n := models.Negotiation{}

	view, reset := DeriveView(&s, &n)
	if view != models.ViewIdle || !reset {
		t.Fatalf("got view=%s reset=%v, want idle true", view, reset)
	}

	num := 7
	s.AssignedResourceType = models.ResourceLocker
	s.AssignedResourceNumber = &num
	view, reset = DeriveView(&s, &n)
	if view != models.ViewComplete || reset {
		t.Fatalf("with assignment: got view=%s reset=%v, want complete false", view, reset)
	}
}
