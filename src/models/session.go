package models

import "time"

// SessionStatus represents the server-side status of a check-in session
type SessionStatus string

const (
	StatusInProgress SessionStatus = "IN_PROGRESS"
	StatusCompleted  SessionStatus = "COMPLETED"
)

// RentalType identifies one rental category from the visit catalog.
// The catalog itself is server-defined; the kiosk treats values as opaque
// except for the locker rental, which maps to the locker inventory pool.
type RentalType string

// RentalLocker is the one catalog value with dedicated inventory accounting.
const RentalLocker RentalType = "LOCKER"

// ResourceType is the kind of resource assigned at checkout.
type ResourceType string

const (
	ResourceRoom   ResourceType = "room"
	ResourceLocker ResourceType = "locker"
)

// Language is the customer's primary language for the visit.
type Language string

const (
	LanguageEN Language = "EN"
	LanguageES Language = "ES"
)

// PurchaseIntent marks an in-flight membership purchase or renewal.
type PurchaseIntent string

const (
	IntentPurchase PurchaseIntent = "PURCHASE"
	IntentRenew    PurchaseIntent = "RENEW"
	IntentNone     PurchaseIntent = "NONE"
)

// MembershipChoice is the customer's explicit membership selection.
type MembershipChoice string

const (
	ChoiceOneTime  MembershipChoice = "ONE_TIME"
	ChoiceSixMonth MembershipChoice = "SIX_MONTH"
)

// MembershipStatus is derived, never stored server-side.
type MembershipStatus string

const (
	MembershipNonMember MembershipStatus = "NON_MEMBER"
	MembershipPending   MembershipStatus = "PENDING"
	MembershipActive    MembershipStatus = "ACTIVE"
	MembershipExpired   MembershipStatus = "EXPIRED"
)

// Mode governs whether an agreement step is required after payment.
type Mode string

const (
	ModeCheckin Mode = "CHECKIN"
	ModeRenewal Mode = "RENEWAL"
)

// PaymentStatus is the state of the visit's payment.
type PaymentStatus string

const (
	PaymentDue  PaymentStatus = "DUE"
	PaymentPaid PaymentStatus = "PAID"
)

// IDScanIssue blocks the kiosk when the front desk flags the customer's ID.
type IDScanIssue string

const (
	IDScanExpired  IDScanIssue = "ID_EXPIRED"
	IDScanUnderage IDScanIssue = "UNDERAGE"
)

// LineItem is one entry on the payment summary.
type LineItem struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Session is the kiosk's mirror of the server-authoritative session record.
// Empty string / nil means "not set"; the server is the source of truth and
// the mirror is only ever written by the reconciler and by narrow optimistic
// updates from the action dispatcher.
type Session struct {
	SessionID                string           `json:"session_id,omitempty"`
	Status                   SessionStatus    `json:"status,omitempty"`
	CustomerName             string           `json:"customer_name,omitempty"`
	MembershipNumber         string           `json:"membership_number,omitempty"`
	MembershipValidUntil     *time.Time       `json:"membership_valid_until,omitempty"`
	MembershipPurchaseIntent PurchaseIntent   `json:"membership_purchase_intent,omitempty"`
	MembershipChoice         MembershipChoice `json:"membership_choice,omitempty"`
	AllowedRentals           []RentalType     `json:"allowed_rentals,omitempty"`
	CustomerPrimaryLanguage  Language         `json:"customer_primary_language,omitempty"`
	PastDueBlocked           bool             `json:"past_due_blocked,omitempty"`
	PastDueBalance           *float64         `json:"past_due_balance,omitempty"`
	Mode                     Mode             `json:"mode,omitempty"`
	PaymentStatus            PaymentStatus    `json:"payment_status,omitempty"`
	PaymentTotal             *float64         `json:"payment_total,omitempty"`
	PaymentLineItems         []LineItem       `json:"payment_line_items,omitempty"`
	PaymentFailureReason     string           `json:"-"`
	AgreementSigned          bool             `json:"agreement_signed,omitempty"`
	AgreementBypassPending   bool             `json:"agreement_bypass_pending,omitempty"`
	AssignedResourceType     ResourceType     `json:"assigned_resource_type,omitempty"`
	AssignedResourceNumber   *int             `json:"assigned_resource_number,omitempty"`
	CheckoutAt               *time.Time       `json:"checkout_at,omitempty"`
	KioskAcknowledgedAt      *time.Time       `json:"kiosk_acknowledged_at,omitempty"`
	IDScanIssue              IDScanIssue      `json:"id_scan_issue,omitempty"`
}

// Active reports whether a session is currently tracked.
func (s Session) Active() bool {
	return s.SessionID != ""
}

// AllowsRental reports whether the rental type is in this visit's catalog.
func (s Session) AllowsRental(t RentalType) bool {
	for _, allowed := range s.AllowedRentals {
		if allowed == t {
			return true
		}
	}
	return false
}
