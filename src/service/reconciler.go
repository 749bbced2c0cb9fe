package service

import (
	"encoding/json"
	"time"

	"github.com/joshuakessell/club-ops-deploy-sub001/src/models"
	"github.com/joshuakessell/club-ops-deploy-sub001/src/schemas"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// Reconciler applies inbound push/poll messages to the kiosk state. Parsing
// is fail-soft: a malformed or schema-invalid payload is dropped without
// mutating anything. Each message routes to exactly one handler by type;
// unknown types are ignored so the backend can ship new ones first.
type Reconciler struct {
	state    *State
	validate *validator.Validate
	logger   *logrus.Logger
}

func NewReconciler(state *State, log *logrus.Logger) *Reconciler {
	return &Reconciler{
		state:    state,
		validate: validator.New(),
		logger:   log,
	}
}

// HandleMessage routes one raw push-channel message.
func (r *Reconciler) HandleMessage(body []byte) {
	var envelope schemas.Envelope
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Type == "" {
		r.logger.WithField("error", errString(err)).Warn("Dropping malformed push message")
		return
	}

	switch envelope.Type {
	case schemas.MessageSessionUpdated:
		r.handleSessionUpdated(envelope.Payload)
	case schemas.MessageSelectionProposed:
		r.handleProposal(envelope.Payload)
	case schemas.MessageSelectionLocked:
		r.handleLock(envelope.Payload)
	case schemas.MessageSelectionForced:
		r.handleForce(envelope.Payload)
	case schemas.MessageSelectionAcknowledged:
		r.handleAcknowledgement(envelope.Payload)
	case schemas.MessageCheckinOptionHighlighted:
		r.handleHighlight(envelope.Payload)
	case schemas.MessageCustomerConfirmationRequired:
		r.handleConfirmationRequired(envelope.Payload)
	case schemas.MessageAssignmentCreated:
		r.handleAssignment(envelope.Payload)
	case schemas.MessageInventoryUpdated:
		r.handleInventory(envelope.Payload)
	default:
		r.logger.WithField("type", envelope.Type).Debug("Ignoring unknown push message type")
	}
}

// ApplyPolledSnapshot feeds a polling result through the same merge path as
// push updates. A missing session is the authoritative destruction signal.
func (r *Reconciler) ApplyPolledSnapshot(snap *schemas.SessionSnapshot, active bool) {
	if !active {
		if r.state.ResetIfActive() {
			r.logger.Info("Polling reported no active session, cleared kiosk state")
		}
		return
	}
	r.applySnapshot(snap)
}

func (r *Reconciler) handleSessionUpdated(payload json.RawMessage) {
	var snap schemas.SessionSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		r.logger.WithField("error", err.Error()).Warn("Dropping malformed session snapshot")
		return
	}
	r.applySnapshot(&snap)
}

// applySnapshot merges a snapshot into the mirror. A snapshot naming a
// different session first clears the aggregate, which also satisfies the
// invariant that membershipChoice resets whenever the sessionId changes.
// Merging is key-by-key for present keys only, so the same snapshot applied
// twice is a no-op the second time.
func (r *Reconciler) applySnapshot(snap *schemas.SessionSnapshot) {
	var remembered models.Language
	if snap.SessionID.Set() {
		remembered = r.state.RememberedLanguage(snap.SessionID.Value)
	}

	view := r.state.Update(func(agg *Aggregate) {
		if snap.SessionID.Set() && snap.SessionID.Value != agg.Session.SessionID {
			*agg = Aggregate{}
		}
		if snap.SessionID.Cleared() {
			*agg = Aggregate{}
			return
		}

		r.mergeSession(&agg.Session, snap)
		mergeNegotiation(&agg.Negotiation, snap)

		if agg.Session.Active() && agg.Session.CustomerPrimaryLanguage == "" && remembered != "" {
			agg.Session.CustomerPrimaryLanguage = remembered
		}
	})

	r.logger.WithFields(logrus.Fields{
		"view": view,
	}).Debug("Merged session snapshot")
}

func (r *Reconciler) mergeSession(s *models.Session, snap *schemas.SessionSnapshot) {
	mergeString(&s.SessionID, snap.SessionID)
	if snap.Status.Present {
		s.Status = models.SessionStatus(stringOrEmpty(snap.Status))
	}
	mergeString(&s.CustomerName, snap.CustomerName)
	mergeString(&s.MembershipNumber, snap.MembershipNumber)
	r.mergeTime(&s.MembershipValidUntil, snap.MembershipValidUntil, "membership_valid_until")
	if snap.MembershipPurchaseIntent.Present {
		s.MembershipPurchaseIntent = models.PurchaseIntent(stringOrEmpty(snap.MembershipPurchaseIntent))
	}
	if snap.MembershipChoice.Present {
		s.MembershipChoice = models.MembershipChoice(stringOrEmpty(snap.MembershipChoice))
	}
	if snap.AllowedRentals.Present {
		s.AllowedRentals = nil
		for _, t := range snap.AllowedRentals.Value {
			s.AllowedRentals = append(s.AllowedRentals, models.RentalType(t))
		}
	}
	if snap.CustomerPrimaryLanguage.Present {
		s.CustomerPrimaryLanguage = models.Language(stringOrEmpty(snap.CustomerPrimaryLanguage))
	}
	if snap.PastDueBlocked.Present {
		s.PastDueBlocked = snap.PastDueBlocked.Value && !snap.PastDueBlocked.Null
	}
	mergeNumber(&s.PastDueBalance, snap.PastDueBalance)
	if snap.Mode.Present {
		s.Mode = models.Mode(stringOrEmpty(snap.Mode))
	}
	if snap.PaymentStatus.Present {
		s.PaymentStatus = models.PaymentStatus(stringOrEmpty(snap.PaymentStatus))
	}
	mergeNumber(&s.PaymentTotal, snap.PaymentTotal)
	if snap.PaymentLineItems.Present {
		s.PaymentLineItems = nil
		for _, item := range snap.PaymentLineItems.Value {
			s.PaymentLineItems = append(s.PaymentLineItems, models.LineItem{Label: item.Label, Amount: item.Amount})
		}
	}
	mergeString(&s.PaymentFailureReason, snap.PaymentFailureReason)
	if snap.AgreementSigned.Present {
		s.AgreementSigned = snap.AgreementSigned.Value && !snap.AgreementSigned.Null
	}
	if snap.AgreementBypassPending.Present {
		s.AgreementBypassPending = snap.AgreementBypassPending.Value && !snap.AgreementBypassPending.Null
	}
	if snap.AssignedResourceType.Present {
		s.AssignedResourceType = models.ResourceType(stringOrEmpty(snap.AssignedResourceType))
	}
	if snap.AssignedResourceNumber.Present {
		if snap.AssignedResourceNumber.Null {
			s.AssignedResourceNumber = nil
		} else {
			n := snap.AssignedResourceNumber.Value
			s.AssignedResourceNumber = &n
		}
	}
	r.mergeTime(&s.CheckoutAt, snap.CheckoutAt, "checkout_at")
	r.mergeTime(&s.KioskAcknowledgedAt, snap.KioskAcknowledgedAt, "kiosk_acknowledged_at")
	if snap.IDScanIssue.Present {
		s.IDScanIssue = models.IDScanIssue(stringOrEmpty(snap.IDScanIssue))
	}
}

func mergeNegotiation(n *models.Negotiation, snap *schemas.SessionSnapshot) {
	if snap.ProposedRentalType.Present {
		n.ProposedRentalType = models.RentalType(stringOrEmpty(snap.ProposedRentalType))
	}
	if snap.ProposedBy.Present {
		n.ProposedBy = models.Actor(stringOrEmpty(snap.ProposedBy))
	}
	if snap.SelectionConfirmed.Present {
		n.SelectionConfirmed = snap.SelectionConfirmed.Value && !snap.SelectionConfirmed.Null
	}
	if snap.SelectionConfirmedBy.Present {
		n.SelectionConfirmedBy = models.Actor(stringOrEmpty(snap.SelectionConfirmedBy))
	}
	if snap.WaitlistDesiredType.Present {
		n.WaitlistDesiredType = models.RentalType(stringOrEmpty(snap.WaitlistDesiredType))
	}
	if snap.WaitlistBackupType.Present {
		n.WaitlistBackupType = models.RentalType(stringOrEmpty(snap.WaitlistBackupType))
	}
}

// --- point events, filtered on the tracked session ---

func (r *Reconciler) handleProposal(payload json.RawMessage) {
	var event schemas.ProposalEvent
	if !r.decodePointEvent(payload, &event, "proposal") {
		return
	}
	if !r.sessionMatches(event.SessionID, "proposal") {
		return
	}
	r.state.Update(func(agg *Aggregate) {
		ApplyProposal(&agg.Negotiation, models.RentalType(event.RentalType), models.Actor(event.ProposedBy))
	})
}

func (r *Reconciler) handleLock(payload json.RawMessage) {
	var event schemas.LockEvent
	if !r.decodePointEvent(payload, &event, "lock") {
		return
	}
	if !r.sessionMatches(event.SessionID, "lock") {
		return
	}
	r.state.Update(func(agg *Aggregate) {
		ApplyLock(&agg.Negotiation, models.RentalType(event.RentalType))
	})
}

func (r *Reconciler) handleForce(payload json.RawMessage) {
	var event schemas.ForceEvent
	if !r.decodePointEvent(payload, &event, "force") {
		return
	}
	if !r.sessionMatches(event.SessionID, "force") {
		return
	}
	r.state.Update(func(agg *Aggregate) {
		ApplyForce(&agg.Negotiation, models.RentalType(event.RentalType))
	})
}

func (r *Reconciler) handleAcknowledgement(payload json.RawMessage) {
	var event schemas.AcknowledgementEvent
	if !r.decodePointEvent(payload, &event, "acknowledgement") {
		return
	}
	if !r.sessionMatches(event.SessionID, "acknowledgement") {
		return
	}
	r.state.Update(func(agg *Aggregate) {
		ApplyAcknowledgement(&agg.Negotiation, models.Actor(event.AcknowledgedBy))
	})
}

func (r *Reconciler) handleHighlight(payload json.RawMessage) {
	var event schemas.HighlightEvent
	if !r.decodePointEvent(payload, &event, "highlight") {
		return
	}
	if !r.sessionMatches(event.SessionID, "highlight") {
		return
	}
	r.state.Update(func(agg *Aggregate) {
		agg.Highlighted = models.RentalType(event.RentalType)
	})
}

func (r *Reconciler) handleConfirmationRequired(payload json.RawMessage) {
	var event schemas.ConfirmationRequiredEvent
	if !r.decodePointEvent(payload, &event, "confirmation-required") {
		return
	}
	if !r.sessionMatches(event.SessionID, "confirmation-required") {
		return
	}
	r.state.Update(func(agg *Aggregate) {
		agg.ConfirmationRequired = true
	})
}

func (r *Reconciler) handleAssignment(payload json.RawMessage) {
	var event schemas.AssignmentEvent
	if !r.decodePointEvent(payload, &event, "assignment") {
		return
	}
	if !r.sessionMatches(event.SessionID, "assignment") {
		return
	}
	r.state.Update(func(agg *Aggregate) {
		agg.Session.AssignedResourceType = models.ResourceType(event.ResourceType)
		n := *event.ResourceNumber
		agg.Session.AssignedResourceNumber = &n
		if event.CheckoutAt != "" {
			if at, err := time.Parse(time.RFC3339, event.CheckoutAt); err == nil {
				agg.Session.CheckoutAt = &at
			}
		}
	})
}

func (r *Reconciler) handleInventory(payload json.RawMessage) {
	var event schemas.InventoryEvent
	if !r.decodePointEvent(payload, &event, "inventory") {
		return
	}
	r.state.SetInventory(inventoryFromCounts(event.Rooms, event.Lockers, r.state.Now()))
}

// --- helpers ---

func (r *Reconciler) decodePointEvent(payload json.RawMessage, out any, kind string) bool {
	if err := json.Unmarshal(payload, out); err != nil {
		r.logger.WithFields(logrus.Fields{
			"kind":  kind,
			"error": err.Error(),
		}).Warn("Dropping malformed point event")
		return false
	}
	if err := r.validate.Struct(out); err != nil {
		r.logger.WithFields(logrus.Fields{
			"kind":  kind,
			"error": err.Error(),
		}).Warn("Dropping schema-invalid point event")
		return false
	}
	return true
}

// sessionMatches discards point events for a superseded session; applying
// them would corrupt the negotiation for the current one.
func (r *Reconciler) sessionMatches(sessionID, kind string) bool {
	current := r.state.Current().Session.SessionID
	if current == "" || sessionID != current {
		r.logger.WithFields(logrus.Fields{
			"kind":    kind,
			"event":   sessionID,
			"current": current,
		}).Debug("Discarding stale point event")
		return false
	}
	return true
}

func inventoryFromCounts(rooms map[string]int, lockers int, now time.Time) models.Inventory {
	inv := models.Inventory{
		Rooms:     make(map[models.RentalType]int, len(rooms)),
		Lockers:   lockers,
		UpdatedAt: now,
	}
	for t, count := range rooms {
		inv.Rooms[models.RentalType(t)] = count
	}
	return inv
}

func (r *Reconciler) mergeTime(dst **time.Time, f schemas.Field[string], key string) {
	if !f.Present {
		return
	}
	if f.Null || f.Value == "" {
		*dst = nil
		return
	}
	parsed, err := parseServerTime(f.Value)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"key":   key,
			"value": f.Value,
		}).Warn("Skipping unparseable timestamp field")
		return
	}
	*dst = &parsed
}

// parseServerTime accepts the backend's two formats: a calendar date for
// membership expiry and RFC3339 for real timestamps.
func parseServerTime(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func mergeString[T ~string](dst *T, f schemas.Field[string]) {
	if !f.Present {
		return
	}
	if f.Null {
		*dst = ""
		return
	}
	*dst = T(f.Value)
}

func mergeNumber(dst **float64, f schemas.Field[float64]) {
	if !f.Present {
		return
	}
	if f.Null {
		*dst = nil
		return
	}
	v := f.Value
	*dst = &v
}

func stringOrEmpty(f schemas.Field[string]) string {
	if f.Null {
		return ""
	}
	return f.Value
}

func errString(err error) string {
	if err == nil {
		return "missing type tag"
	}
	return err.Error()
}
