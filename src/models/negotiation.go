package models

// Actor identifies which side of the lane performed a negotiation verb.
type Actor string

const (
	ActorCustomer Actor = "CUSTOMER"
	ActorEmployee Actor = "EMPLOYEE"
)

// Negotiation tracks the rental selection handshake between the customer and
// the employee register: NONE -> PROPOSED -> CONFIRMED, with an orthogonal
// waitlist sub-path when the desired type has no availability.
type Negotiation struct {
	ProposedRentalType   RentalType `json:"proposed_rental_type,omitempty"`
	ProposedBy           Actor      `json:"proposed_by,omitempty"`
	SelectionConfirmed   bool       `json:"selection_confirmed,omitempty"`
	SelectionConfirmedBy Actor      `json:"selection_confirmed_by,omitempty"`
	WaitlistDesiredType  RentalType `json:"waitlist_desired_type,omitempty"`
	WaitlistBackupType   RentalType `json:"waitlist_backup_type,omitempty"`
}

// Proposed reports whether a proposal is pending or confirmed.
func (n Negotiation) Proposed() bool {
	return n.ProposedRentalType != ""
}

// Waitlisted reports whether the customer is in the waitlist sub-flow.
func (n Negotiation) Waitlisted() bool {
	return n.WaitlistDesiredType != ""
}
