package service

import (
	"time"

	"github.com/joshuakessell/club-ops-deploy-sub001/src/models"
)

// ResolveMembershipStatus derives the customer's membership standing from
// the session mirror. A purchase or renewal in flight is PENDING and must be
// shown distinctly from a paid, active membership. Expiry is a calendar-date
// comparison, valid-through inclusive. Pure: callers pass one stable now per
// pass so the result cannot flicker at a minute boundary mid-render.
func ResolveMembershipStatus(number string, validUntil *time.Time, intent models.PurchaseIntent, now time.Time) models.MembershipStatus {
	if intent != "" && intent != models.IntentNone {
		return models.MembershipPending
	}
	if number == "" {
		return models.MembershipNonMember
	}
	if validUntil == nil {
		return models.MembershipExpired
	}
	today := dateOf(now)
	expiry := dateOf(*validUntil)
	if today.After(expiry) {
		return models.MembershipExpired
	}
	return models.MembershipActive
}

// ResolveSessionMembership is the session-shaped convenience wrapper.
func ResolveSessionMembership(s *models.Session, now time.Time) models.MembershipStatus {
	return ResolveMembershipStatus(s.MembershipNumber, s.MembershipValidUntil, s.MembershipPurchaseIntent, now)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
