package service

import (
	"fmt"
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/joshuakessell/club-ops-deploy-sub001/src/clock"
	"github.com/joshuakessell/club-ops-deploy-sub001/src/models"
	"github.com/joshuakessell/club-ops-deploy-sub001/src/schemas"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestReconciler(t *testing.T) (*Reconciler, *State) {
	t.Helper()
	state := NewState(clock.Fixed{T: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)})
	return NewReconciler(state, testLogger()), state
}

func sessionUpdated(payload string) []byte {
	return []byte(fmt.Sprintf(`{"type":"SESSION_UPDATED","payload":%s}`, payload))
}

func TestReconciler_SnapshotEstablishesSession(t *testing.T) {
	r, state := newTestReconciler(t)

	r.HandleMessage(sessionUpdated(`{
		"session_id": "sess-1",
		"status": "IN_PROGRESS",
		"customer_name": "Alex",
		"customer_primary_language": "EN",
		"allowed_rentals": ["STANDARD_ROOM", "LOCKER"]
	}`))

	current := state.Current()
	if current.Session.SessionID != "sess-1" || current.Session.CustomerName != "Alex" {
		t.Fatalf("snapshot not merged: %+v", current.Session)
	}
	if current.View != models.ViewSelection {
		t.Fatalf("got view %s, want selection", current.View)
	}
	if len(current.Session.AllowedRentals) != 2 {
		t.Fatalf("allowed rentals not merged: %+v", current.Session.AllowedRentals)
	}
}

func TestReconciler_SnapshotIdempotent(t *testing.T) {
	r, state := newTestReconciler(t)

	msg := sessionUpdated(`{"session_id":"sess-1","customer_name":"Alex","customer_primary_language":"ES"}`)
	r.HandleMessage(msg)
	first := state.Current()

	r.HandleMessage(msg)
	second := state.Current()

	if !reflect.DeepEqual(first.Session, second.Session) {
		t.Fatalf("same snapshot twice changed state:\nfirst:  %+v\nsecond: %+v", first.Session, second.Session)
	}
	if first.View != second.View {
		t.Fatalf("view changed on replay: %s -> %s", first.View, second.View)
	}
}

func TestReconciler_AbsentLeavesNullClears(t *testing.T) {
	r, state := newTestReconciler(t)

	r.HandleMessage(sessionUpdated(`{"session_id":"sess-1","customer_name":"Alex","customer_primary_language":"EN","past_due_balance":12.5}`))

	// Terse update without those keys: nothing is lost.
	r.HandleMessage(sessionUpdated(`{"session_id":"sess-1","payment_status":"DUE"}`))
	current := state.Current()
	if current.Session.CustomerName != "Alex" || current.Session.PastDueBalance == nil {
		t.Fatalf("absent keys erased fields: %+v", current.Session)
	}
	if current.Session.PaymentStatus != models.PaymentDue {
		t.Fatalf("present key not merged: %+v", current.Session)
	}

	// Explicit nulls clear.
	r.HandleMessage(sessionUpdated(`{"session_id":"sess-1","customer_name":null,"past_due_balance":null}`))
	current = state.Current()
	if current.Session.CustomerName != "" || current.Session.PastDueBalance != nil {
		t.Fatalf("null keys not cleared: %+v", current.Session)
	}
}

func TestReconciler_SessionChangeResetsNegotiationState(t *testing.T) {
	r, state := newTestReconciler(t)

	r.HandleMessage(sessionUpdated(`{"session_id":"sess-1","customer_primary_language":"EN","membership_choice":"ONE_TIME"}`))
	r.HandleMessage([]byte(`{"type":"SELECTION_PROPOSED","payload":{"session_id":"sess-1","rental_type":"LOCKER","proposed_by":"CUSTOMER"}}`))

	r.HandleMessage(sessionUpdated(`{"session_id":"sess-2","customer_primary_language":"EN"}`))

	current := state.Current()
	if current.Session.SessionID != "sess-2" {
		t.Fatalf("new session not tracked: %+v", current.Session)
	}
	if current.Session.MembershipChoice != "" {
		t.Fatal("membership choice survived a session change")
	}
	if current.Negotiation.Proposed() {
		t.Fatal("negotiation survived a session change")
	}
}

func TestReconciler_NullSessionIDResets(t *testing.T) {
	r, state := newTestReconciler(t)

	r.HandleMessage(sessionUpdated(`{"session_id":"sess-1","customer_primary_language":"EN"}`))
	r.HandleMessage(sessionUpdated(`{"session_id":null}`))

	current := state.Current()
	if current.Session.Active() || current.View != models.ViewIdle {
		t.Fatalf("null session_id did not reset: %+v", current)
	}
}

func TestReconciler_CompletedStatusResets(t *testing.T) {
	r, state := newTestReconciler(t)

	r.HandleMessage(sessionUpdated(`{"session_id":"sess-1","customer_primary_language":"EN"}`))
	r.HandleMessage(sessionUpdated(`{"session_id":"sess-1","status":"COMPLETED"}`))

	current := state.Current()
	if current.Session.Active() || current.View != models.ViewIdle {
		t.Fatalf("COMPLETED did not reset the mirror: %+v", current)
	}
}

func TestReconciler_StalePointEventDiscarded(t *testing.T) {
	r, state := newTestReconciler(t)

	r.HandleMessage(sessionUpdated(`{"session_id":"sess-2","customer_primary_language":"EN"}`))
	r.HandleMessage([]byte(`{"type":"SELECTION_PROPOSED","payload":{"session_id":"sess-1","rental_type":"LOCKER","proposed_by":"CUSTOMER"}}`))

	if state.Current().Negotiation.Proposed() {
		t.Fatal("point event for a superseded session was applied")
	}
}

func TestReconciler_ForcedSelectionWinsAndClearsWaitlist(t *testing.T) {
	r, state := newTestReconciler(t)

	r.HandleMessage(sessionUpdated(`{"session_id":"sess-1","customer_primary_language":"EN","waitlist_desired_type":"DELUXE_ROOM"}`))
	r.HandleMessage([]byte(`{"type":"SELECTION_PROPOSED","payload":{"session_id":"sess-1","rental_type":"LOCKER","proposed_by":"CUSTOMER"}}`))
	r.HandleMessage([]byte(`{"type":"SELECTION_FORCED","payload":{"session_id":"sess-1","rental_type":"STANDARD_ROOM"}}`))

	n := state.Current().Negotiation
	if n.ProposedRentalType != "STANDARD_ROOM" || !n.SelectionConfirmed || n.SelectionConfirmedBy != models.ActorEmployee {
		t.Fatalf("force not applied: %+v", n)
	}
	if n.Waitlisted() {
		t.Fatalf("force did not clear the waitlist: %+v", n)
	}
}

func TestReconciler_HighlightAndConfirmationRequired(t *testing.T) {
	r, state := newTestReconciler(t)

	r.HandleMessage(sessionUpdated(`{"session_id":"sess-1","customer_primary_language":"EN"}`))
	r.HandleMessage([]byte(`{"type":"CHECKIN_OPTION_HIGHLIGHTED","payload":{"session_id":"sess-1","rental_type":"LOCKER"}}`))
	r.HandleMessage([]byte(`{"type":"CUSTOMER_CONFIRMATION_REQUIRED","payload":{"session_id":"sess-1"}}`))

	current := state.Current()
	if current.Highlighted != "LOCKER" {
		t.Fatalf("highlight not applied: %q", current.Highlighted)
	}
	if !current.ConfirmationRequired {
		t.Fatal("confirmation-required not applied")
	}
}

func TestReconciler_AssignmentShowsCompletion(t *testing.T) {
	r, state := newTestReconciler(t)

	r.HandleMessage(sessionUpdated(`{"session_id":"sess-1","customer_primary_language":"EN"}`))
	r.HandleMessage([]byte(`{"type":"ASSIGNMENT_CREATED","payload":{"session_id":"sess-1","resource_type":"room","resource_number":42,"checkout_at":"2025-03-10T20:00:00Z"}}`))

	current := state.Current()
	if current.Session.AssignedResourceType != models.ResourceRoom || current.Session.AssignedResourceNumber == nil {
		t.Fatalf("assignment not merged: %+v", current.Session)
	}
	if *current.Session.AssignedResourceNumber != 42 {
		t.Fatalf("got resource number %d, want 42", *current.Session.AssignedResourceNumber)
	}
	if current.View != models.ViewComplete {
		t.Fatalf("got view %s, want complete", current.View)
	}
}

func TestReconciler_AssignmentNumberZero(t *testing.T) {
	r, state := newTestReconciler(t)

	r.HandleMessage(sessionUpdated(`{"session_id":"sess-1","customer_primary_language":"EN"}`))
	r.HandleMessage([]byte(`{"type":"ASSIGNMENT_CREATED","payload":{"session_id":"sess-1","resource_type":"locker","resource_number":0}}`))

	current := state.Current()
	if current.Session.AssignedResourceNumber == nil || *current.Session.AssignedResourceNumber != 0 {
		t.Fatalf("assignment numbered 0 was dropped: %+v", current.Session)
	}
	if current.View != models.ViewComplete {
		t.Fatalf("got view %s, want complete", current.View)
	}
}

func TestReconciler_AssignmentWithoutNumberDropped(t *testing.T) {
	r, state := newTestReconciler(t)

	r.HandleMessage(sessionUpdated(`{"session_id":"sess-1","customer_primary_language":"EN"}`))
	r.HandleMessage([]byte(`{"type":"ASSIGNMENT_CREATED","payload":{"session_id":"sess-1","resource_type":"room"}}`))

	if state.Current().Session.AssignedResourceType != "" {
		t.Fatal("assignment missing its number must be dropped whole")
	}
}

func TestReconciler_InventoryUpdate(t *testing.T) {
	r, state := newTestReconciler(t)

	r.HandleMessage([]byte(`{"type":"INVENTORY_UPDATED","payload":{"rooms":{"STANDARD_ROOM":3,"DELUXE_ROOM":0},"lockers":12}}`))

	inv := state.Current().Inventory
	if inv.Available("STANDARD_ROOM") != 3 || inv.Available("DELUXE_ROOM") != 0 || inv.Lockers != 12 {
		t.Fatalf("inventory not applied: %+v", inv)
	}
	if inv.Available("CABIN") != 0 {
		t.Fatal("unknown rental type should report zero availability")
	}
}

// A sold-out club legitimately publishes an empty rooms map; the refresh must
// still land instead of being dropped as invalid.
func TestReconciler_InventoryUpdateEmptyRooms(t *testing.T) {
	r, state := newTestReconciler(t)

	r.HandleMessage([]byte(`{"type":"INVENTORY_UPDATED","payload":{"rooms":{},"lockers":4}}`))
	if inv := state.Current().Inventory; inv.Lockers != 4 {
		t.Fatalf("empty rooms map dropped the refresh: %+v", inv)
	}

	r.HandleMessage([]byte(`{"type":"INVENTORY_UPDATED","payload":{"lockers":0}}`))
	inv := state.Current().Inventory
	if inv.Lockers != 0 || inv.Available("STANDARD_ROOM") != 0 {
		t.Fatalf("rooms-less refresh not applied: %+v", inv)
	}
}

func TestReconciler_MalformedMessagesDropped(t *testing.T) {
	r, state := newTestReconciler(t)
	r.HandleMessage(sessionUpdated(`{"session_id":"sess-1","customer_primary_language":"EN"}`))
	before := state.Current()

	r.HandleMessage([]byte(`not json at all`))
	r.HandleMessage([]byte(`{"payload":{}}`))
	r.HandleMessage([]byte(`{"type":"SELECTION_PROPOSED","payload":{"session_id":"sess-1","rental_type":"LOCKER","proposed_by":"NEITHER"}}`))
	r.HandleMessage([]byte(`{"type":"SOME_FUTURE_TYPE","payload":{}}`))

	after := state.Current()
	if before.Session.SessionID != after.Session.SessionID || after.Negotiation.Proposed() || before.View != after.View {
		t.Fatalf("malformed input mutated state: %+v", after)
	}
}

func TestReconciler_UnparseableDateSkippedRestMerged(t *testing.T) {
	r, state := newTestReconciler(t)

	r.HandleMessage(sessionUpdated(`{"session_id":"sess-1","customer_primary_language":"EN","membership_valid_until":"not-a-date","membership_number":"M-9"}`))

	current := state.Current()
	if current.Session.MembershipNumber != "M-9" {
		t.Fatal("valid keys dropped along with the bad date")
	}
	if current.Session.MembershipValidUntil != nil {
		t.Fatal("unparseable date should be skipped, not stored")
	}
}

func TestReconciler_MembershipDateFormats(t *testing.T) {
	r, state := newTestReconciler(t)

	r.HandleMessage(sessionUpdated(`{"session_id":"sess-1","membership_valid_until":"2025-06-30"}`))
	got := state.Current().Session.MembershipValidUntil
	if got == nil || !got.Equal(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("calendar date not parsed: %v", got)
	}

	r.HandleMessage(sessionUpdated(`{"session_id":"sess-1","checkout_at":"2025-03-10T20:00:00Z"}`))
	at := state.Current().Session.CheckoutAt
	if at == nil || !at.Equal(time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)) {
		t.Fatalf("RFC3339 timestamp not parsed: %v", at)
	}
}

func TestReconciler_LanguageRememberedAcrossReset(t *testing.T) {
	r, state := newTestReconciler(t)

	r.HandleMessage(sessionUpdated(`{"session_id":"sess-1","customer_primary_language":"ES"}`))

	// Transient gap: polling says no session, then the same session comes back
	// in a terse snapshot without the language key.
	r.ApplyPolledSnapshot(nil, false)
	if state.Current().Session.Active() {
		t.Fatal("inactive poll answer did not reset")
	}

	r.HandleMessage(sessionUpdated(`{"session_id":"sess-1","status":"IN_PROGRESS"}`))
	current := state.Current()
	if current.Session.CustomerPrimaryLanguage != models.LanguageES {
		t.Fatalf("remembered language not reapplied: %+v", current.Session)
	}
	if current.View == models.ViewLanguage {
		t.Fatal("customer asked for language twice in one visit")
	}
}

func TestReconciler_PolledSnapshotMergesLikePush(t *testing.T) {
	r, state := newTestReconciler(t)

	snap := &schemas.SessionSnapshot{}
	snap.SessionID.Present, snap.SessionID.Value = true, "sess-1"
	snap.CustomerPrimaryLanguage.Present, snap.CustomerPrimaryLanguage.Value = true, "EN"
	r.ApplyPolledSnapshot(snap, true)

	current := state.Current()
	if current.Session.SessionID != "sess-1" || current.View != models.ViewSelection {
		t.Fatalf("polled snapshot not merged: %+v", current)
	}
}
