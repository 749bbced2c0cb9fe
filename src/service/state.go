package service

import (
	"sync"
	"time"

	"github.com/joshuakessell/club-ops-deploy-sub001/src/clock"
	"github.com/joshuakessell/club-ops-deploy-sub001/src/models"
)

// Aggregate is everything the reconciler and dispatcher may mutate: the
// session mirror, the negotiation, and the session-scoped UI flags. Keeping
// the flags in the same aggregate as the fields that justify them removes
// ordering bugs between dependent mutations.
type Aggregate struct {
	Session              models.Session
	Negotiation          models.Negotiation
	Highlighted          models.RentalType
	ConfirmationRequired bool
}

// StateView is a consistent read of the whole kiosk state, safe to hand to
// the render layer.
type StateView struct {
	Session              models.Session
	Negotiation          models.Negotiation
	Inventory            models.Inventory
	View                 models.View
	Highlighted          models.RentalType
	ConfirmationRequired bool
}

// State owns the aggregate and the derived view. Every mutation funnels
// through Update, which rederives the view and enforces the lifecycle rules
// (COMPLETED resets the mirror, the chosen language is remembered per
// session). Mutators never run concurrently with each other.
type State struct {
	mu sync.Mutex

	clock clock.Clock

	agg       Aggregate
	inventory models.Inventory
	view      models.View

	// languageBySession keeps the chosen language sticky for a session even
	// when a terse snapshot omits it.
	languageBySession map[string]models.Language
}

func NewState(clk clock.Clock) *State {
	return &State{
		clock:             clk,
		view:              models.ViewIdle,
		languageBySession: make(map[string]models.Language),
	}
}

// Update is the single reducer entry point. fn mutates the aggregate under
// the lock; afterwards the view is rederived and the COMPLETED reset rule is
// applied. Returns the resulting view.
func (s *State) Update(fn func(agg *Aggregate)) models.View {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.agg)

	if lang := s.agg.Session.CustomerPrimaryLanguage; lang != "" && s.agg.Session.Active() {
		s.languageBySession[s.agg.Session.SessionID] = lang
	}

	view, reset := DeriveView(&s.agg.Session, &s.agg.Negotiation)
	if reset {
		s.agg = Aggregate{}
	}
	s.view = view
	return view
}

// Current returns a copied, consistent view of the aggregate and inventory.
func (s *State) Current() StateView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return StateView{
		Session:              copySession(s.agg.Session),
		Negotiation:          s.agg.Negotiation,
		Inventory:            copyInventory(s.inventory),
		View:                 s.view,
		Highlighted:          s.agg.Highlighted,
		ConfirmationRequired: s.agg.ConfirmationRequired,
	}
}

// View returns the currently derived view.
func (s *State) View() models.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Now returns one stable instant for a derivation pass.
func (s *State) Now() time.Time {
	return s.clock.Now()
}

// SetInventory replaces the advisory availability snapshot.
func (s *State) SetInventory(inv models.Inventory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventory = inv
}

// RememberedLanguage returns the language previously chosen for a session.
func (s *State) RememberedLanguage(sessionID string) models.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.languageBySession[sessionID]
}

// RequireLanguage clears the mirrored language and forgets the remembered
// one, so the derived view falls back to language selection. Used when the
// backend rejects a command with LANGUAGE_REQUIRED.
func (s *State) RequireLanguage() models.View {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.languageBySession, s.agg.Session.SessionID)
	s.agg.Session.CustomerPrimaryLanguage = ""

	view, reset := DeriveView(&s.agg.Session, &s.agg.Negotiation)
	if reset {
		s.agg = Aggregate{}
	}
	s.view = view
	return view
}

// ResetIfActive clears the mirror back to a blank session and idle view.
// Returns false when there was nothing to clear, so a repeated "no active
// session" poll answer cannot produce a second reset transition.
func (s *State) ResetIfActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.agg.Session.Active() && s.view == models.ViewIdle && !s.agg.Negotiation.Proposed() &&
		s.agg.Highlighted == "" && !s.agg.ConfirmationRequired {
		return false
	}
	s.agg = Aggregate{}
	s.view = models.ViewIdle
	return true
}

func copySession(in models.Session) models.Session {
	out := in
	if in.AllowedRentals != nil {
		out.AllowedRentals = append([]models.RentalType(nil), in.AllowedRentals...)
	}
	if in.PaymentLineItems != nil {
		out.PaymentLineItems = append([]models.LineItem(nil), in.PaymentLineItems...)
	}
	return out
}

func copyInventory(in models.Inventory) models.Inventory {
	out := in
	if in.Rooms != nil {
		out.Rooms = make(map[models.RentalType]int, len(in.Rooms))
		for k, v := range in.Rooms {
			out.Rooms[k] = v
		}
	}
	return out
}
