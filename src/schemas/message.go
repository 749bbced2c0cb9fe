package schemas

import "encoding/json"

// MessageType tags every push-channel message.
type MessageType string

const (
	MessageSessionUpdated               MessageType = "SESSION_UPDATED"
	MessageSelectionProposed            MessageType = "SELECTION_PROPOSED"
	MessageSelectionLocked              MessageType = "SELECTION_LOCKED"
	MessageSelectionForced              MessageType = "SELECTION_FORCED"
	MessageSelectionAcknowledged        MessageType = "SELECTION_ACKNOWLEDGED"
	MessageCheckinOptionHighlighted     MessageType = "CHECKIN_OPTION_HIGHLIGHTED"
	MessageCustomerConfirmationRequired MessageType = "CUSTOMER_CONFIRMATION_REQUIRED"
	MessageAssignmentCreated            MessageType = "ASSIGNMENT_CREATED"
	MessageInventoryUpdated             MessageType = "INVENTORY_UPDATED"
)

// Envelope is the wire shape of every push message.
type Envelope struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// SessionSnapshot is a full or partial-but-authoritative dump of session
// fields. Every key is optional: absent means unchanged, null means cleared.
// Timestamps and the membership expiry date travel as strings and are parsed
// during the merge so a bad value can be skipped without dropping the rest
// of the snapshot.
type SessionSnapshot struct {
	SessionID                Field[string]     `json:"session_id"`
	Status                   Field[string]     `json:"status"`
	CustomerName             Field[string]     `json:"customer_name"`
	MembershipNumber         Field[string]     `json:"membership_number"`
	MembershipValidUntil     Field[string]     `json:"membership_valid_until"`
	MembershipPurchaseIntent Field[string]     `json:"membership_purchase_intent"`
	MembershipChoice         Field[string]     `json:"membership_choice"`
	AllowedRentals           Field[[]string]   `json:"allowed_rentals"`
	CustomerPrimaryLanguage  Field[string]     `json:"customer_primary_language"`
	PastDueBlocked           Field[bool]       `json:"past_due_blocked"`
	PastDueBalance           Field[float64]    `json:"past_due_balance"`
	Mode                     Field[string]     `json:"mode"`
	PaymentStatus            Field[string]     `json:"payment_status"`
	PaymentTotal             Field[float64]    `json:"payment_total"`
	PaymentLineItems         Field[[]LineItem] `json:"payment_line_items"`
	PaymentFailureReason     Field[string]     `json:"payment_failure_reason"`
	AgreementSigned          Field[bool]       `json:"agreement_signed"`
	AgreementBypassPending   Field[bool]       `json:"agreement_bypass_pending"`
	AssignedResourceType     Field[string]     `json:"assigned_resource_type"`
	AssignedResourceNumber   Field[int]        `json:"assigned_resource_number"`
	CheckoutAt               Field[string]     `json:"checkout_at"`
	KioskAcknowledgedAt      Field[string]     `json:"kiosk_acknowledged_at"`
	IDScanIssue              Field[string]     `json:"id_scan_issue"`

	// Negotiation side-channel, copied only when present.
	ProposedRentalType   Field[string] `json:"proposed_rental_type"`
	ProposedBy           Field[string] `json:"proposed_by"`
	SelectionConfirmed   Field[bool]   `json:"selection_confirmed"`
	SelectionConfirmedBy Field[string] `json:"selection_confirmed_by"`
	WaitlistDesiredType  Field[string] `json:"waitlist_desired_type"`
	WaitlistBackupType   Field[string] `json:"waitlist_backup_type"`
}

// LineItem mirrors models.LineItem on the wire.
type LineItem struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// SnapshotResponse is the body of GET /lanes/{lane}/session-snapshot.
// A null session is the authoritative "no active session" signal.
type SnapshotResponse struct {
	Session *SessionSnapshot `json:"session"`
}

// ProposalEvent announces a rental proposal from either actor.
type ProposalEvent struct {
	SessionID  string `json:"session_id" validate:"required"`
	RentalType string `json:"rental_type" validate:"required"`
	ProposedBy string `json:"proposed_by" validate:"required,oneof=CUSTOMER EMPLOYEE"`
}

// LockEvent confirms the pending selection from the register.
type LockEvent struct {
	SessionID  string `json:"session_id" validate:"required"`
	RentalType string `json:"rental_type"`
}

// ForceEvent is the employee override: jumps straight to confirmed.
type ForceEvent struct {
	SessionID  string `json:"session_id" validate:"required"`
	RentalType string `json:"rental_type" validate:"required"`
}

// AcknowledgementEvent confirms the customer's pending proposal.
type AcknowledgementEvent struct {
	SessionID      string `json:"session_id" validate:"required"`
	AcknowledgedBy string `json:"acknowledged_by" validate:"required,oneof=CUSTOMER EMPLOYEE"`
}

// HighlightEvent is a register hint to visually highlight one option.
type HighlightEvent struct {
	SessionID  string `json:"session_id" validate:"required"`
	RentalType string `json:"rental_type" validate:"required"`
}

// ConfirmationRequiredEvent asks the kiosk to collect a customer confirmation.
type ConfirmationRequiredEvent struct {
	SessionID string `json:"session_id" validate:"required"`
}

// AssignmentEvent announces the room/locker assignment at checkout.
// ResourceNumber is a pointer so that resource 0 passes the required check.
type AssignmentEvent struct {
	SessionID      string `json:"session_id" validate:"required"`
	ResourceType   string `json:"resource_type" validate:"required,oneof=room locker"`
	ResourceNumber *int   `json:"resource_number" validate:"required"`
	CheckoutAt     string `json:"checkout_at"`
}

// InventoryEvent refreshes the advisory availability snapshot. An empty or
// missing rooms map is valid: everything may simply be taken.
type InventoryEvent struct {
	Rooms   map[string]int `json:"rooms"`
	Lockers int            `json:"lockers"`
}
