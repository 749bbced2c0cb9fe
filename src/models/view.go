package models

// View is the screen the renderer must show. It is always derived from the
// session mirror, never mutated independently.
type View string

const (
	ViewIdle            View = "idle"
	ViewLanguage        View = "language"
	ViewSelection       View = "selection"
	ViewPayment         View = "payment"
	ViewAgreement       View = "agreement"
	ViewAgreementBypass View = "agreement-bypass"
	ViewComplete        View = "complete"
)
