package service

import (
	"context"
	"errors"
	"sync"

	"github.com/joshuakessell/club-ops-deploy-sub001/src/backend"
	"github.com/joshuakessell/club-ops-deploy-sub001/src/models"
	"github.com/joshuakessell/club-ops-deploy-sub001/src/schemas"

	"github.com/sirupsen/logrus"
)

// Commands is the slice of the backend client the dispatcher needs.
type Commands interface {
	ProposeSelection(ctx context.Context, req schemas.ProposeSelectionRequest) error
	ConfirmSelection(ctx context.Context, req schemas.ConfirmSelectionRequest) error
	SetLanguage(ctx context.Context, req schemas.SetLanguageRequest) error
	SetMembershipChoice(ctx context.Context, req schemas.MembershipChoiceRequest) error
	SetPurchaseIntent(ctx context.Context, req schemas.PurchaseIntentRequest) error
	CustomerConfirm(ctx context.Context) error
	SignAgreement(ctx context.Context) error
	KioskAck(ctx context.Context) error
	Reset(ctx context.Context) error
	SetWaitlistDesired(ctx context.Context, req schemas.WaitlistDesiredRequest) error
}

// Dispatcher issues state-changing requests to the backend. One command at a
// time: while a request is in flight every other command is refused so a
// double tap cannot double-submit. Optimistic updates touch at most one or
// two fields and are applied only when the session they were issued for is
// still the tracked one, so a late response cannot fight the next
// authoritative snapshot.
type Dispatcher struct {
	state   *State
	backend Commands
	logger  *logrus.Logger

	mu         sync.Mutex
	submitting bool
}

func NewDispatcher(state *State, commands Commands, log *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		state:   state,
		backend: commands,
		logger:  log,
	}
}

// Submitting reports whether a command is currently awaiting the backend.
// The renderer disables inputs while true.
func (d *Dispatcher) Submitting() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.submitting
}

func (d *Dispatcher) begin() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.submitting {
		return models.ErrSubmissionInFlight
	}
	d.submitting = true
	return nil
}

func (d *Dispatcher) end() {
	d.mu.Lock()
	d.submitting = false
	d.mu.Unlock()
}

// SetLanguage records the customer's language choice.
func (d *Dispatcher) SetLanguage(ctx context.Context, lang models.Language) error {
	if lang != models.LanguageEN && lang != models.LanguageES {
		return errors.New("unsupported language")
	}
	if err := d.begin(); err != nil {
		return err
	}
	defer d.end()

	sessionID, err := d.requireSession()
	if err != nil {
		return err
	}

	if err := d.backend.SetLanguage(ctx, schemas.SetLanguageRequest{Language: string(lang)}); err != nil {
		return d.correctFlow(err)
	}
	d.applyIfCurrent(sessionID, func(agg *Aggregate) {
		agg.Session.CustomerPrimaryLanguage = lang
	})
	return nil
}

// ProposeSelection proposes a rental type on the customer's behalf. When the
// desired type has zero known availability the kiosk enters the waitlist
// sub-flow instead of submitting an unfulfillable proposal; the returned
// bool reports that path.
func (d *Dispatcher) ProposeSelection(ctx context.Context, t models.RentalType) (waitlisted bool, err error) {
	if err := d.begin(); err != nil {
		return false, err
	}
	defer d.end()

	current := d.state.Current()
	if err := CanPropose(&current.Session, &current.Negotiation, t, d.state.Now()); err != nil {
		return false, err
	}

	if current.Inventory.Available(t) == 0 {
		if err := d.backend.SetWaitlistDesired(ctx, schemas.WaitlistDesiredRequest{RentalType: string(t)}); err != nil {
			return false, d.correctFlow(err)
		}
		d.applyIfCurrent(current.Session.SessionID, func(agg *Aggregate) {
			agg.Negotiation.WaitlistDesiredType = t
		})
		return true, nil
	}

	req := schemas.ProposeSelectionRequest{
		RentalType: string(t),
		ProposedBy: string(models.ActorCustomer),
	}
	if err := d.backend.ProposeSelection(ctx, req); err != nil {
		return false, d.correctFlow(err)
	}
	d.applyIfCurrent(current.Session.SessionID, func(agg *Aggregate) {
		ApplyProposal(&agg.Negotiation, t, models.ActorCustomer)
	})
	return false, nil
}

// SubmitWaitlistBackup proposes the backup type chosen inside the waitlist
// sub-flow. Submission is gated on the upgrade-disclaimer acknowledgement
// and on the backup actually having availability.
func (d *Dispatcher) SubmitWaitlistBackup(ctx context.Context, backup models.RentalType, disclaimerAcknowledged bool) error {
	if err := d.begin(); err != nil {
		return err
	}
	defer d.end()

	current := d.state.Current()
	if !current.Session.Active() {
		return models.ErrNoActiveSession
	}
	if !current.Negotiation.Waitlisted() {
		return models.ErrNotWaitlisted
	}
	if !disclaimerAcknowledged {
		return models.ErrDisclaimerNotAcknowledged
	}
	if current.Inventory.Available(backup) == 0 {
		return models.ErrBackupUnavailable
	}
	if len(current.Session.AllowedRentals) > 0 && !current.Session.AllowsRental(backup) {
		return models.ErrRentalNotAllowed
	}

	req := schemas.ProposeSelectionRequest{
		RentalType: string(backup),
		ProposedBy: string(models.ActorCustomer),
		BackupFor:  string(current.Negotiation.WaitlistDesiredType),
	}
	if err := d.backend.ProposeSelection(ctx, req); err != nil {
		return d.correctFlow(err)
	}
	d.applyIfCurrent(current.Session.SessionID, func(agg *Aggregate) {
		agg.Negotiation.WaitlistBackupType = backup
		ApplyProposal(&agg.Negotiation, backup, models.ActorCustomer)
	})
	return nil
}

// ConfirmSelection finalizes the pending proposal from the customer side.
func (d *Dispatcher) ConfirmSelection(ctx context.Context) error {
	if err := d.begin(); err != nil {
		return err
	}
	defer d.end()

	current := d.state.Current()
	if !current.Session.Active() {
		return models.ErrNoActiveSession
	}
	if !current.Negotiation.Proposed() {
		return models.ErrNoPendingProposal
	}
	if current.Negotiation.SelectionConfirmed {
		return models.ErrSelectionLocked
	}

	req := schemas.ConfirmSelectionRequest{ConfirmedBy: string(models.ActorCustomer)}
	if err := d.backend.ConfirmSelection(ctx, req); err != nil {
		return d.correctFlow(err)
	}
	d.applyIfCurrent(current.Session.SessionID, func(agg *Aggregate) {
		ApplyAcknowledgement(&agg.Negotiation, models.ActorCustomer)
	})
	return nil
}

// SetMembershipChoice records the explicit membership choice. The two
// options are mutually exclusive with the purchase intent they imply:
// ONE_TIME cancels any outstanding six-month intent, SIX_MONTH registers a
// purchase (or renewal, for an expired member).
func (d *Dispatcher) SetMembershipChoice(ctx context.Context, choice models.MembershipChoice) error {
	if choice != models.ChoiceOneTime && choice != models.ChoiceSixMonth {
		return errors.New("unsupported membership choice")
	}
	if err := d.begin(); err != nil {
		return err
	}
	defer d.end()

	current := d.state.Current()
	if !current.Session.Active() {
		return models.ErrNoActiveSession
	}

	if err := d.backend.SetMembershipChoice(ctx, schemas.MembershipChoiceRequest{Choice: string(choice)}); err != nil {
		return d.correctFlow(err)
	}

	intent := models.IntentNone
	if choice == models.ChoiceSixMonth {
		intent = models.IntentPurchase
		if ResolveMembershipStatus(current.Session.MembershipNumber, current.Session.MembershipValidUntil, "", d.state.Now()) == models.MembershipExpired {
			intent = models.IntentRenew
		}
	}
	needsIntentUpdate := choice == models.ChoiceSixMonth ||
		(current.Session.MembershipPurchaseIntent != "" && current.Session.MembershipPurchaseIntent != models.IntentNone)
	if needsIntentUpdate {
		if err := d.backend.SetPurchaseIntent(ctx, schemas.PurchaseIntentRequest{Intent: string(intent)}); err != nil {
			return d.correctFlow(err)
		}
	}

	d.applyIfCurrent(current.Session.SessionID, func(agg *Aggregate) {
		agg.Session.MembershipChoice = choice
		if needsIntentUpdate {
			agg.Session.MembershipPurchaseIntent = intent
		}
	})
	return nil
}

// CustomerConfirm answers a CUSTOMER_CONFIRMATION_REQUIRED prompt.
func (d *Dispatcher) CustomerConfirm(ctx context.Context) error {
	if err := d.begin(); err != nil {
		return err
	}
	defer d.end()

	sessionID, err := d.requireSession()
	if err != nil {
		return err
	}
	if err := d.backend.CustomerConfirm(ctx); err != nil {
		return d.correctFlow(err)
	}
	d.applyIfCurrent(sessionID, func(agg *Aggregate) {
		agg.ConfirmationRequired = false
	})
	return nil
}

// SignAgreement reports a completed signature capture.
func (d *Dispatcher) SignAgreement(ctx context.Context) error {
	if err := d.begin(); err != nil {
		return err
	}
	defer d.end()

	sessionID, err := d.requireSession()
	if err != nil {
		return err
	}
	if err := d.backend.SignAgreement(ctx); err != nil {
		return d.correctFlow(err)
	}
	d.applyIfCurrent(sessionID, func(agg *Aggregate) {
		agg.Session.AgreementSigned = true
	})
	return nil
}

// AcknowledgeComplete dismisses the completion screen. The session is not
// destroyed; the kiosk returns to locked-idle until the server completes it.
func (d *Dispatcher) AcknowledgeComplete(ctx context.Context) error {
	if err := d.begin(); err != nil {
		return err
	}
	defer d.end()

	sessionID, err := d.requireSession()
	if err != nil {
		return err
	}
	if err := d.backend.KioskAck(ctx); err != nil {
		return d.correctFlow(err)
	}
	now := d.state.Now()
	d.applyIfCurrent(sessionID, func(agg *Aggregate) {
		agg.Session.KioskAcknowledgedAt = &now
	})
	return nil
}

// ResetLane asks the backend to clear the lane and mirrors the reset locally.
func (d *Dispatcher) ResetLane(ctx context.Context) error {
	if err := d.begin(); err != nil {
		return err
	}
	defer d.end()

	if err := d.backend.Reset(ctx); err != nil {
		return d.correctFlow(err)
	}
	d.state.ResetIfActive()
	return nil
}

func (d *Dispatcher) requireSession() (string, error) {
	current := d.state.Current()
	if !current.Session.Active() {
		return "", models.ErrNoActiveSession
	}
	return current.Session.SessionID, nil
}

// applyIfCurrent applies an optimistic update only when the session the
// command was issued for is still tracked; a response that arrives after the
// session changed is ignored rather than cancelled.
func (d *Dispatcher) applyIfCurrent(sessionID string, fn func(agg *Aggregate)) {
	d.state.Update(func(agg *Aggregate) {
		if agg.Session.SessionID != sessionID {
			return
		}
		fn(agg)
	})
}

// correctFlow turns the one specially-recognized rejection into a flow
// correction: LANGUAGE_REQUIRED redirects to the language view before any
// error surfaces.
func (d *Dispatcher) correctFlow(err error) error {
	if errors.Is(err, backend.ErrLanguageRequired) {
		view := d.state.RequireLanguage()
		d.logger.WithField("view", view).Info("Redirecting to language selection per backend")
	}
	return err
}
