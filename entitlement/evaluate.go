package entitlement

import "github.com/facture-ma/dashkit/clock"

// The renewal nag starts this many days before expiry.
const warningDays = 5

// Evaluate derives entitlement state from a subscription snapshot.
//
// A missing or zero expiry date degrades to "no entitlement" with a nil
// DaysRemaining rather than failing: a bad date must never crash a screen.
// Expired is reported for any tier whose expiry has passed; Warning holds
// only while the entitlement is still active and within the nag window.
func Evaluate(sub SubscriptionSnapshot, clk clock.Clock) State {
	now := clk.Now()

	st := State{ActivationPending: sub.ActivationPending}
	if sub.ExpiresAt == nil || sub.ExpiresAt.IsZero() {
		return st
	}

	days := clock.DaysUntil(now, *sub.ExpiresAt)
	st.DaysRemaining = &days
	st.Expired = days <= 0
	st.Active = sub.Tier == TierPro && sub.ExpiresAt.After(now)
	st.Warning = st.Active && days >= 1 && days <= warningDays
	return st
}
