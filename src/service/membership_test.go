package service

import (
	"testing"
	"time"

	"github.com/joshuakessell/club-ops-deploy-sub001/src/models"
)

func TestResolveMembershipStatus(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	past := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	future := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		number     string
		validUntil *time.Time
		intent     models.PurchaseIntent
		want       models.MembershipStatus
	}{
		{"no membership number", "", nil, "", models.MembershipNonMember},
		{"number without expiry", "M-100", nil, "", models.MembershipExpired},
		{"expired yesterday", "M-100", &past, "", models.MembershipExpired},
		{"valid until next month", "M-100", &future, "", models.MembershipActive},
		{"purchase in flight", "", nil, models.IntentPurchase, models.MembershipPending},
		{"renewal in flight beats expiry", "M-100", &past, models.IntentRenew, models.MembershipPending},
		{"explicit NONE intent is no intent", "M-100", &future, models.IntentNone, models.MembershipActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveMembershipStatus(tt.number, tt.validUntil, tt.intent, now)
			if got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

// Expiry is valid-through inclusive: a membership expiring today is still
// active for the whole day, regardless of the time of day on either side.
func TestResolveMembershipStatus_ExpiryDayInclusive(t *testing.T) {
	expiry := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	lateSameDay := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	if got := ResolveMembershipStatus("M-1", &expiry, "", lateSameDay); got != models.MembershipActive {
		t.Fatalf("on expiry day: got %s, want ACTIVE", got)
	}

	nextMorning := time.Date(2025, 3, 11, 0, 1, 0, 0, time.UTC)
	if got := ResolveMembershipStatus("M-1", &expiry, "", nextMorning); got != models.MembershipExpired {
		t.Fatalf("day after expiry: got %s, want EXPIRED", got)
	}
}
