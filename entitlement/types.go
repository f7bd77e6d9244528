// Package entitlement derives premium-capability state from a company's
// subscription record. It is the single authority for "is pro active";
// every surface (account screen, sidebar, project dashboard) consumes its
// result instead of re-deriving the rule.
package entitlement

import "time"

// Tier is a company's subscription tier.
type Tier string

const (
	TierFree Tier = "free"
	TierPro  Tier = "pro"
)

// SubscriptionSnapshot is an immutable point-in-time copy of a company's
// subscription record, supplied by the data layer per evaluation. A pro
// tier alone grants nothing; entitlement additionally requires an expiry
// date strictly in the future.
type SubscriptionSnapshot struct {
	Tier              Tier       `json:"tier"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	ActivationPending bool       `json:"activation_pending"`
}

// State is derived fresh on every evaluation and never persisted.
//
// Active and ActivationPending are both reported raw; precedence between
// them (active > pending > free) is the caller's composition concern.
type State struct {
	Active            bool `json:"active"`
	DaysRemaining     *int `json:"days_remaining,omitempty"`
	Expired           bool `json:"expired"`
	Warning           bool `json:"warning"`
	ActivationPending bool `json:"activation_pending"`
}
