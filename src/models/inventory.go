package models

import "time"

// Inventory is the advisory availability snapshot. It gates what the kiosk
// offers but is never authoritative for negotiation correctness; a stale
// count must not corrupt the selection state.
type Inventory struct {
	Rooms     map[RentalType]int `json:"rooms"`
	Lockers   int                `json:"lockers"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// Available returns the known availability for a rental type. The locker
// rental draws from the locker pool unless the backend reports it per-type.
// Unknown types report zero, which routes the customer through the waitlist
// sub-flow rather than allowing an unverifiable proposal.
func (i *Inventory) Available(t RentalType) int {
	if n, ok := i.Rooms[t]; ok {
		return n
	}
	if t == RentalLocker {
		return i.Lockers
	}
	return 0
}
