package schemas

// Bodies for the backend command endpoints. All are POSTed with the
// shared-secret kiosk header; the lane is carried in the path.

type ProposeSelectionRequest struct {
	RentalType string `json:"rental_type"`
	ProposedBy string `json:"proposed_by"`
	// BackupFor is set when this proposal is the waitlist backup for an
	// unavailable desired type.
	BackupFor string `json:"backup_for,omitempty"`
}

type ConfirmSelectionRequest struct {
	ConfirmedBy string `json:"confirmed_by"`
}

type SetLanguageRequest struct {
	Language string `json:"language"`
}

type MembershipChoiceRequest struct {
	Choice string `json:"choice"`
}

type PurchaseIntentRequest struct {
	Intent string `json:"intent"`
}

type WaitlistDesiredRequest struct {
	RentalType string `json:"rental_type"`
}

// WaitlistInfo is the body of GET /lanes/{lane}/waitlist-info: current
// availability plus the lane's waitlist position, if any.
type WaitlistInfo struct {
	Rooms    map[string]int `json:"rooms"`
	Lockers  int            `json:"lockers"`
	Position *int           `json:"position,omitempty"`
}
