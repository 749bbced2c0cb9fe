package schemas

import "github.com/joshuakessell/club-ops-deploy-sub001/src/models"

// AttendantNotice is the only payment-failure text the customer surface may
// show. The actual decline reason stays inside the agent.
const AttendantNotice = "Please see an attendant."

// StateResponse is the sole render input: the derived view plus the
// redacted session mirror. models.Session never serializes the decline
// reason; a generic notice flag stands in for it.
type StateResponse struct {
	View                 models.View             `json:"view"`
	Session              models.Session          `json:"session"`
	Negotiation          models.Negotiation      `json:"negotiation"`
	Inventory            models.Inventory        `json:"inventory"`
	MembershipStatus     models.MembershipStatus `json:"membership_status"`
	SelectionEnabled     bool                    `json:"selection_enabled"`
	ConfirmationRequired bool                    `json:"confirmation_required"`
	HighlightedRental    models.RentalType       `json:"highlighted_rental_type,omitempty"`
	PaymentNotice        string                  `json:"payment_notice,omitempty"`
	Submitting           bool                    `json:"submitting"`
}

// --- local UI action bodies ---

type ProposeActionRequest struct {
	RentalType string `json:"rental_type" binding:"required"`
}

type ProposeActionResponse struct {
	Waitlisted bool `json:"waitlisted"`
}

type LanguageActionRequest struct {
	Language string `json:"language" binding:"required,oneof=EN ES"`
}

type MembershipChoiceActionRequest struct {
	Choice string `json:"choice" binding:"required,oneof=ONE_TIME SIX_MONTH"`
}

type WaitlistBackupActionRequest struct {
	RentalType             string `json:"rental_type" binding:"required"`
	DisclaimerAcknowledged bool   `json:"disclaimer_acknowledged"`
}

type ActionResponse struct {
	Status string `json:"status"`
}
