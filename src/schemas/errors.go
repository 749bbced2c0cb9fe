package schemas

// Machine-readable error codes shared with the backend. The kiosk treats
// LANGUAGE_REQUIRED as a flow correction, not an error message.
const (
	CodeLanguageRequired = "LANGUAGE_REQUIRED"
)
